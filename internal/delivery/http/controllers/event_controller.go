package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"freebusy/internal/delivery/http/helpers"
	"freebusy/internal/delivery/http/middleware"
	"freebusy/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	OrganizerName   string `json:"organizer_name"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	if c.DurationMinutes <= 0 {
		errs = append(errs, "duration_minutes must be positive")
	}
	if c.OrganizerName == "" {
		errs = append(errs, "organizer_name is required")
	}
	return errs
}

// CreateEventResponse is the response body for POST /events: the event, the
// organizer's participant record, and the organizer's bearer token.
type CreateEventResponse struct {
	Event       *domain.Event       `json:"event"`
	Participant *domain.Participant `json:"participant"`
	Token       string              `json:"token"`
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  CreateEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create a scheduling event
// @Description Create a scheduling event and join it as the organizer. Returns the event, the organizer's participant record, and a bearer token scoped to that participant.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event metadata"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains event, participant, and token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := domain.NewEvent(req.Title, req.Description, req.DurationMinutes, req.OrganizerName, time.Now())
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	participant, token, err := c.Service.JoinEvent(r.Context(), event.ID, req.OrganizerName)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateEventResponse{
		Event:       event,
		Participant: participant,
		Token:       token,
	})
}

// GetEventSuccessResponse is the success response envelope for GET /events/{eventID} (200).
type GetEventSuccessResponse struct {
	Data  *domain.EventDocument `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// GetEvent godoc
// @Summary Get an event document
// @Description Returns the replicated event document: metadata, participants, and redacted schedule blocks. Requires a participant token for the event.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.GetEventSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	doc, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, doc)
}

// JoinEventRequest is the request body for POST /events/{eventID}/participants.
type JoinEventRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (j JoinEventRequest) Validate() []string {
	var errs []string
	if j.Name == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// JoinEventResponse is the response body for POST /events/{eventID}/participants.
type JoinEventResponse struct {
	Participant *domain.Participant `json:"participant"`
	Token       string              `json:"token"`
}

// JoinEvent godoc
// @Summary Join an event
// @Description Join an event as a new participant. Public: invitees hold only the event link. Returns the participant and a bearer token for subsequent calls.
// @Tags participants
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param participant body JoinEventRequest true "Display name"
// @Success 201 {object} helpers.APIResponse "data contains participant and token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants [post]
func (c *EventController) JoinEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req JoinEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	participant, token, err := c.Service.JoinEvent(r.Context(), eventID, req.Name)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, JoinEventResponse{
		Participant: participant,
		Token:       token,
	})
}

// UpdateParticipantRequest is the request body for PATCH /events/{eventID}/participants/me.
// All fields optional; omitted fields are unchanged.
type UpdateParticipantRequest struct {
	Name *string `json:"name"`
}

// Validate implements Validator.
func (u UpdateParticipantRequest) Validate() []string {
	var errs []string
	if u.Name != nil && *u.Name == "" {
		errs = append(errs, "name must not be empty")
	}
	return errs
}

// UpdateMe godoc
// @Summary Update the authenticated participant
// @Description Updates the caller's own participant record. Only the name can be changed through the API; calendar_connected flips via the sync endpoint.
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param patch body UpdateParticipantRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated participant"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants/me [patch]
func (c *EventController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ParticipantFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req UpdateParticipantRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	participant, err := c.Service.UpdateParticipant(r.Context(), scope.EventID, scope.ParticipantID, domain.ParticipantPatch{
		Name: req.Name,
	})
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	if participant == nil {
		// The participant is not visible on this replica yet.
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "participant not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participant)
}

// GetMySchedule godoc
// @Summary Get the authenticated participant's schedule blocks
// @Description Returns the redacted blocks owned by the caller, selected by composite-key prefix.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the block list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants/me/schedule [get]
func (c *EventController) GetMySchedule(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ParticipantFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	blocks, err := c.Service.ScheduleForParticipant(r.Context(), scope.EventID, scope.ParticipantID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, blocks)
}

// SendInvitationsRequest is the request body for POST /events/{eventID}/invitations.
type SendInvitationsRequest struct {
	Emails []string `json:"emails"`
}

// Validate implements Validator.
func (s SendInvitationsRequest) Validate() []string {
	var errs []string
	if len(s.Emails) == 0 {
		errs = append(errs, "emails is required")
	}
	for _, email := range s.Emails {
		if email != "" && !emailRegex.MatchString(email) {
			errs = append(errs, "invalid email: "+email)
		}
	}
	return errs
}

// SendInvitationsResponse is the response body for POST /events/{eventID}/invitations.
type SendInvitationsResponse struct {
	Sent   int      `json:"sent"`
	Failed []string `json:"failed"`
}

// SendInvitations godoc
// @Summary Send event invitations
// @Description Sends an invitation email per address with the event link. Failures are reported per address, not as a whole-request error.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param invitations body SendInvitationsRequest true "Addresses to invite"
// @Success 200 {object} helpers.APIResponse "data contains sent count and failed addresses"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitations [post]
func (c *EventController) SendInvitations(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ParticipantFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SendInvitationsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	sent, failed, err := c.Service.SendInvitations(r.Context(), scope.EventID, req.Emails)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	if failed == nil {
		failed = []string{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SendInvitationsResponse{Sent: sent, Failed: failed})
}

func (c *EventController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
