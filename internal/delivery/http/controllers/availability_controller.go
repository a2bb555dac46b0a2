package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"freebusy/internal/delivery/http/helpers"
	"freebusy/internal/delivery/http/middleware"
	"freebusy/internal/domain"
	"freebusy/internal/services"
)

// AvailabilityDefaults are applied when the corresponding query parameters
// are absent. Both window bounds are configurable because different call
// sites legitimately want different day windows.
type AvailabilityDefaults struct {
	DayStartHour int
	DayEndHour   int
}

type AvailabilityController struct {
	Logger   *slog.Logger
	Events   domain.EventService
	Sync     domain.CalendarSyncService
	Defaults AvailabilityDefaults
}

func NewAvailabilityController(logger *slog.Logger, events domain.EventService, sync domain.CalendarSyncService, defaults AvailabilityDefaults) *AvailabilityController {
	return &AvailabilityController{
		Logger:   logger,
		Events:   events,
		Sync:     sync,
		Defaults: defaults,
	}
}

// AvailabilityResponse is the response body for GET /events/{eventID}/availability.
type AvailabilityResponse struct {
	Date  string            `json:"date"`
	Slots []domain.TimeSlot `json:"slots"`
}

// GetAvailability godoc
// @Summary Compute the availability grid for a day
// @Description Returns the slot grid for the given date with per-participant statuses and aggregate classification. slot_minutes defaults to the event duration; day_start and day_end default to the configured window.
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param date query string true "Day, formatted YYYY-MM-DD"
// @Param slot_minutes query int false "Slot duration in minutes"
// @Param day_start query int false "First hour of the grid (local)"
// @Param day_end query int false "Hour the grid ends at (local)"
// @Success 200 {object} helpers.APIResponse "data contains date and slots"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/availability [get]
func (c *AvailabilityController) GetAvailability(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}

	dateStr := r.URL.Query().Get("date")
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "date must be formatted YYYY-MM-DD")
		return
	}

	doc, err := c.Events.GetEvent(r.Context(), eventID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	params := services.AvailabilityParams{
		Date:         date,
		SlotMinutes:  queryInt(r, "slot_minutes", doc.Event.DurationMinutes),
		DayStartHour: queryInt(r, "day_start", c.Defaults.DayStartHour),
		DayEndHour:   queryInt(r, "day_end", c.Defaults.DayEndHour),
		Now:          time.Now(),
	}
	if params.SlotMinutes <= 0 || params.DayEndHour <= params.DayStartHour {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid slot or day window parameters")
		return
	}

	slots := services.ComputeAvailability(doc, params)
	if slots == nil {
		slots = []domain.TimeSlot{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AvailabilityResponse{Date: dateStr, Slots: slots})
}

// SyncCalendarRequest is the request body for POST /events/{eventID}/participants/me/calendar/sync.
// Token is the stored OAuth token JSON for the participant's calendar account.
type SyncCalendarRequest struct {
	Token json.RawMessage `json:"token"`
}

// Validate implements Validator.
func (s SyncCalendarRequest) Validate() []string {
	var errs []string
	if len(s.Token) == 0 {
		errs = append(errs, "token is required")
	}
	return errs
}

// SyncCalendar godoc
// @Summary Sync the authenticated participant's calendar
// @Description Fetches the participant's calendar, redacts events to busy intervals, and replaces the participant's schedule blocks. On success the participant is marked calendar-connected.
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param credential body SyncCalendarRequest true "Stored OAuth token"
// @Success 200 {object} helpers.APIResponse "data contains the participant's new block list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants/me/calendar/sync [post]
func (c *AvailabilityController) SyncCalendar(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ParticipantFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SyncCalendarRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Sync.SyncParticipantCalendar(r.Context(), scope.EventID, scope.ParticipantID, domain.CalendarCredential(req.Token)); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	blocks, err := c.Events.ScheduleForParticipant(r.Context(), scope.EventID, scope.ParticipantID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, blocks)
}

func queryInt(r *http.Request, name string, fallback int) int {
	if s := r.URL.Query().Get(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return fallback
}

func (c *AvailabilityController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
