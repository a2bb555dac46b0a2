package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freebusy/internal/domain"
)

// fakeSyncService implements domain.CalendarSyncService.
type fakeSyncService struct {
	err   error
	calls []string
}

func (f *fakeSyncService) SyncParticipantCalendar(ctx context.Context, eventID, participantID string, credential domain.CalendarCredential) error {
	f.calls = append(f.calls, participantID)
	return f.err
}

func seedAvailabilityEvent(t *testing.T, svc *fakeEventService) {
	t.Helper()
	require.NoError(t, svc.CreateEvent(context.Background(), &domain.Event{ID: "ev-1", Title: "Offsite", DurationMinutes: 30}))
	doc := svc.docs["ev-1"]
	doc.Participants["p-1"] = domain.Participant{ID: "p-1", Name: "Alice", CalendarConnected: true}
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)
	doc.ScheduleBlocks["p-1-b1"] = domain.ScheduleBlock{
		StartTime: day.Add(10 * time.Hour),
		EndTime:   day.Add(11 * time.Hour),
	}
}

func TestAvailabilityController_GetAvailability(t *testing.T) {
	svc := newFakeEventService()
	seedAvailabilityEvent(t, svc)
	c := NewAvailabilityController(testLogger(), svc, &fakeSyncService{}, AvailabilityDefaults{DayStartHour: 9, DayEndHour: 23})

	t.Run("grid with defaults", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/events/ev-1/availability?date=2026-09-01", nil)
		req.SetPathValue("eventID", "ev-1")
		rec := httptest.NewRecorder()
		c.GetAvailability(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp AvailabilityResponse
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec)["data"], &resp))
		assert.Equal(t, "2026-09-01", resp.Date)
		// 9:00 to 23:00 at the event's 30 minute duration.
		assert.Len(t, resp.Slots, 28)
	})

	t.Run("query overrides", func(t *testing.T) {
		url := "/events/ev-1/availability?date=2026-09-01&slot_minutes=60&day_start=10&day_end=14"
		req := httptest.NewRequest(http.MethodGet, url, nil)
		req.SetPathValue("eventID", "ev-1")
		rec := httptest.NewRecorder()
		c.GetAvailability(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp AvailabilityResponse
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec)["data"], &resp))
		assert.Len(t, resp.Slots, 4)
	})

	t.Run("bad date", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/events/ev-1/availability?date=september", nil)
		req.SetPathValue("eventID", "ev-1")
		rec := httptest.NewRecorder()
		c.GetAvailability(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("inverted day window", func(t *testing.T) {
		url := "/events/ev-1/availability?date=2026-09-01&day_start=18&day_end=9"
		req := httptest.NewRequest(http.MethodGet, url, nil)
		req.SetPathValue("eventID", "ev-1")
		rec := httptest.NewRecorder()
		c.GetAvailability(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown event", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/events/nope/availability?date=2026-09-01", nil)
		req.SetPathValue("eventID", "nope")
		rec := httptest.NewRecorder()
		c.GetAvailability(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAvailabilityController_SyncCalendar(t *testing.T) {
	newRequest := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/events/ev-1/participants/me/calendar/sync", bytes.NewBufferString(body))
		req.SetPathValue("eventID", "ev-1")
		return withScope(req, "p-1", "ev-1")
	}

	t.Run("success returns block list", func(t *testing.T) {
		svc := newFakeEventService()
		seedAvailabilityEvent(t, svc)
		sync := &fakeSyncService{}
		c := NewAvailabilityController(testLogger(), svc, sync, AvailabilityDefaults{DayStartHour: 9, DayEndHour: 23})

		rec := httptest.NewRecorder()
		c.SyncCalendar(rec, newRequest(`{"token":{"access_token":"abc"}}`))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"p-1"}, sync.calls)
	})

	t.Run("missing token", func(t *testing.T) {
		c := NewAvailabilityController(testLogger(), newFakeEventService(), &fakeSyncService{}, AvailabilityDefaults{})
		rec := httptest.NewRecorder()
		c.SyncCalendar(rec, newRequest(`{}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("sync failure surfaces", func(t *testing.T) {
		sync := &fakeSyncService{err: fmt.Errorf("fetch calendar events: boom")}
		c := NewAvailabilityController(testLogger(), newFakeEventService(), sync, AvailabilityDefaults{})
		rec := httptest.NewRecorder()
		c.SyncCalendar(rec, newRequest(`{"token":{"access_token":"abc"}}`))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("no auth scope", func(t *testing.T) {
		c := NewAvailabilityController(testLogger(), newFakeEventService(), &fakeSyncService{}, AvailabilityDefaults{})
		req := httptest.NewRequest(http.MethodPost, "/events/ev-1/participants/me/calendar/sync", bytes.NewBufferString(`{"token":{}}`))
		rec := httptest.NewRecorder()
		c.SyncCalendar(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
