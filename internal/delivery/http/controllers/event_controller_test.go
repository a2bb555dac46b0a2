package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freebusy/internal/delivery/http/middleware"
	"freebusy/internal/domain"
)

// fakeEventService implements domain.EventService for controller tests.
type fakeEventService struct {
	docs        map[string]*domain.EventDocument
	createErr   error
	updateCalls []domain.ParticipantPatch
}

func newFakeEventService() *fakeEventService {
	return &fakeEventService{docs: make(map[string]*domain.EventDocument)}
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	if event.ID == "" {
		event.ID = "ev-1"
	}
	f.docs[event.ID] = &domain.EventDocument{
		Event:          *event,
		Participants:   map[string]domain.Participant{},
		ScheduleBlocks: map[string]domain.ScheduleBlock{},
	}
	return nil
}

func (f *fakeEventService) GetEvent(ctx context.Context, eventID string) (*domain.EventDocument, error) {
	doc, ok := f.docs[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (f *fakeEventService) JoinEvent(ctx context.Context, eventID, name string) (*domain.Participant, string, error) {
	doc, ok := f.docs[eventID]
	if !ok {
		return nil, "", domain.ErrNotFound
	}
	p := domain.Participant{
		ID:       "p-1",
		Name:     name,
		JoinedAt: time.Now(),
		Color:    domain.ColorForJoinOrder(len(doc.Participants)),
	}
	doc.Participants[p.ID] = p
	return &p, "token-" + p.ID, nil
}

func (f *fakeEventService) UpdateParticipant(ctx context.Context, eventID, participantID string, patch domain.ParticipantPatch) (*domain.Participant, error) {
	f.updateCalls = append(f.updateCalls, patch)
	doc, ok := f.docs[eventID]
	if !ok {
		return nil, nil
	}
	p, ok := doc.Participants[participantID]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.CalendarConnected != nil {
		p.CalendarConnected = *patch.CalendarConnected
	}
	doc.Participants[participantID] = p
	return &p, nil
}

func (f *fakeEventService) ReplaceParticipantBlocks(ctx context.Context, eventID, participantID string, blocks []domain.ScheduleBlock) error {
	return nil
}

func (f *fakeEventService) ScheduleForParticipant(ctx context.Context, eventID, participantID string) ([]domain.ScheduleBlock, error) {
	if _, ok := f.docs[eventID]; !ok {
		return nil, domain.ErrNotFound
	}
	return []domain.ScheduleBlock{}, nil
}

func (f *fakeEventService) SendInvitations(ctx context.Context, eventID string, emails []string) (int, []string, error) {
	if _, ok := f.docs[eventID]; !ok {
		return 0, nil, domain.ErrNotFound
	}
	return len(emails), nil, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func withScope(r *http.Request, participantID, eventID string) *http.Request {
	return r.WithContext(middleware.SetParticipant(r.Context(), middleware.ParticipantScope{
		ParticipantID: participantID,
		EventID:       eventID,
	}))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Error json.RawMessage `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return map[string]json.RawMessage{"data": envelope.Data, "error": envelope.Error}
}

func TestEventController_CreateEvent(t *testing.T) {
	svc := newFakeEventService()
	c := NewEventController(testLogger(), svc)

	t.Run("success", func(t *testing.T) {
		body := `{"title":"Offsite","duration_minutes":60,"organizer_name":"Dana"}`
		req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		c.CreateEvent(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp CreateEventResponse
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec)["data"], &resp))
		assert.Equal(t, "Offsite", resp.Event.Title)
		assert.Equal(t, "Dana", resp.Participant.Name)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("missing fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(`{"title":"x"}`))
		rec := httptest.NewRecorder()
		c.CreateEvent(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown body field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(`{"title":"x","bogus":1}`))
		rec := httptest.NewRecorder()
		c.CreateEvent(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEventController_GetEvent(t *testing.T) {
	svc := newFakeEventService()
	require.NoError(t, svc.CreateEvent(context.Background(), &domain.Event{ID: "ev-1", Title: "Offsite", DurationMinutes: 60}))
	c := NewEventController(testLogger(), svc)

	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/events/ev-1", nil)
		req.SetPathValue("eventID", "ev-1")
		rec := httptest.NewRecorder()
		c.GetEvent(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/events/nope", nil)
		req.SetPathValue("eventID", "nope")
		rec := httptest.NewRecorder()
		c.GetEvent(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestEventController_JoinEvent(t *testing.T) {
	svc := newFakeEventService()
	require.NoError(t, svc.CreateEvent(context.Background(), &domain.Event{ID: "ev-1", Title: "Offsite", DurationMinutes: 60}))
	c := NewEventController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/events/ev-1/participants", bytes.NewBufferString(`{"name":"Alice"}`))
	req.SetPathValue("eventID", "ev-1")
	rec := httptest.NewRecorder()
	c.JoinEvent(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp JoinEventResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec)["data"], &resp))
	assert.Equal(t, "Alice", resp.Participant.Name)
	assert.Equal(t, "token-p-1", resp.Token)
}

func TestEventController_UpdateMe(t *testing.T) {
	svc := newFakeEventService()
	require.NoError(t, svc.CreateEvent(context.Background(), &domain.Event{ID: "ev-1", Title: "Offsite", DurationMinutes: 60}))
	_, _, err := svc.JoinEvent(context.Background(), "ev-1", "Alice")
	require.NoError(t, err)
	c := NewEventController(testLogger(), svc)

	t.Run("no auth scope", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/events/ev-1/participants/me", bytes.NewBufferString(`{"name":"A"}`))
		rec := httptest.NewRecorder()
		c.UpdateMe(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("renames", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/events/ev-1/participants/me", bytes.NewBufferString(`{"name":"Alice B."}`))
		req = withScope(req, "p-1", "ev-1")
		rec := httptest.NewRecorder()
		c.UpdateMe(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var p domain.Participant
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec)["data"], &p))
		assert.Equal(t, "Alice B.", p.Name)
	})

	t.Run("participant not visible yet", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/events/ev-1/participants/me", bytes.NewBufferString(`{"name":"X"}`))
		req = withScope(req, "ghost", "ev-1")
		rec := httptest.NewRecorder()
		c.UpdateMe(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestEventController_SendInvitations(t *testing.T) {
	svc := newFakeEventService()
	require.NoError(t, svc.CreateEvent(context.Background(), &domain.Event{ID: "ev-1", Title: "Offsite", DurationMinutes: 60}))
	c := NewEventController(testLogger(), svc)

	t.Run("success", func(t *testing.T) {
		body := `{"emails":["a@example.com","b@example.com"]}`
		req := httptest.NewRequest(http.MethodPost, "/events/ev-1/invitations", bytes.NewBufferString(body))
		req = withScope(req, "p-1", "ev-1")
		rec := httptest.NewRecorder()
		c.SendInvitations(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp SendInvitationsResponse
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec)["data"], &resp))
		assert.Equal(t, 2, resp.Sent)
		assert.Empty(t, resp.Failed)
	})

	t.Run("invalid email", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/events/ev-1/invitations", bytes.NewBufferString(`{"emails":["nope"]}`))
		req = withScope(req, "p-1", "ev-1")
		rec := httptest.NewRecorder()
		c.SendInvitations(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
