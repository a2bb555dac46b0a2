package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freebusy/internal/docstore"
	"freebusy/internal/domain"
)

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(participantID, eventID string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("token-%s-%s", eventID, participantID), nil
}

// fakeEmailService records invitations and can fail per address.
type fakeEmailService struct {
	sent    []*domain.EventInvitationEmailData
	failFor map[string]bool
}

func newFakeEmailService() *fakeEmailService {
	return &fakeEmailService{failFor: make(map[string]bool)}
}

func (f *fakeEmailService) SendEventInvitation(ctx context.Context, data *domain.EventInvitationEmailData) error {
	if f.failFor[data.Email] {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, data)
	return nil
}

func newTestEventService(t *testing.T) (domain.EventService, *docstore.MemoryStore, *fakeEmailService) {
	t.Helper()
	store := docstore.NewMemoryStore("test-replica", nil)
	emails := newFakeEmailService()
	svc := NewEventService(store, emails, &fakeTokenIssuer{}, time.Hour, "https://freebusy.example", 5*time.Second)
	return svc, store, emails
}

func createTestEvent(t *testing.T, svc domain.EventService) *domain.Event {
	t.Helper()
	event := domain.NewEvent("Team offsite", "planning day", 60, "Dana", time.Now())
	require.NoError(t, svc.CreateEvent(context.Background(), event))
	return event
}

func TestEventService_CreateEvent(t *testing.T) {
	svc, _, _ := newTestEventService(t)
	ctx := context.Background()

	t.Run("validation", func(t *testing.T) {
		err := svc.CreateEvent(ctx, &domain.Event{DurationMinutes: 30})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		err = svc.CreateEvent(ctx, &domain.Event{Title: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("creates and is idempotent", func(t *testing.T) {
		event := createTestEvent(t, svc)
		assert.NotEmpty(t, event.ID)

		// Republication with identical metadata, as a late-joining client does.
		require.NoError(t, svc.CreateEvent(ctx, event))

		doc, err := svc.GetEvent(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, "Team offsite", doc.Event.Title)
		assert.Equal(t, 60, doc.Event.DurationMinutes)
		assert.Equal(t, "Dana", doc.Event.OrganizerName)
	})
}

func TestEventService_GetEvent_NotFound(t *testing.T) {
	svc, _, _ := newTestEventService(t)
	_, err := svc.GetEvent(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventService_JoinEvent(t *testing.T) {
	svc, _, _ := newTestEventService(t)
	ctx := context.Background()
	event := createTestEvent(t, svc)

	t.Run("unknown event", func(t *testing.T) {
		_, _, err := svc.JoinEvent(ctx, "missing", "Alice")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("empty name", func(t *testing.T) {
		_, _, err := svc.JoinEvent(ctx, event.ID, "  ")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("join assigns color by order and issues token", func(t *testing.T) {
		p1, token1, err := svc.JoinEvent(ctx, event.ID, "Alice")
		require.NoError(t, err)
		p2, token2, err := svc.JoinEvent(ctx, event.ID, "Bob")
		require.NoError(t, err)

		assert.NotEqual(t, p1.ID, p2.ID)
		assert.Equal(t, domain.ParticipantPalette[0], p1.Color)
		assert.Equal(t, domain.ParticipantPalette[1], p2.Color)
		assert.False(t, p1.CalendarConnected)
		assert.Equal(t, fmt.Sprintf("token-%s-%s", event.ID, p1.ID), token1)
		assert.NotEqual(t, token1, token2)

		doc, err := svc.GetEvent(ctx, event.ID)
		require.NoError(t, err)
		assert.Len(t, doc.Participants, 2)
	})
}

func TestEventService_UpdateParticipant(t *testing.T) {
	svc, _, _ := newTestEventService(t)
	ctx := context.Background()
	event := createTestEvent(t, svc)
	p, _, err := svc.JoinEvent(ctx, event.ID, "Alice")
	require.NoError(t, err)

	t.Run("missing participant is a silent no-op", func(t *testing.T) {
		name := "Ghost"
		updated, err := svc.UpdateParticipant(ctx, event.ID, "nope", domain.ParticipantPatch{Name: &name})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("patches fields", func(t *testing.T) {
		name := "Alice B."
		connected := true
		updated, err := svc.UpdateParticipant(ctx, event.ID, p.ID, domain.ParticipantPatch{
			Name:              &name,
			CalendarConnected: &connected,
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Alice B.", updated.Name)
		assert.True(t, updated.CalendarConnected)
		// Untouched fields survive.
		assert.Equal(t, p.Color, updated.Color)
	})
}

func TestEventService_ReplaceParticipantBlocks_Idempotent(t *testing.T) {
	svc, _, _ := newTestEventService(t)
	ctx := context.Background()
	event := createTestEvent(t, svc)
	p, _, err := svc.JoinEvent(ctx, event.ID, "Alice")
	require.NoError(t, err)

	blocks := []domain.ScheduleBlock{
		{
			StartTime:  time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC),
			LastSyncAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			StartTime:  time.Date(2024, 3, 2, 14, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC),
			LastSyncAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		},
	}

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.ReplaceParticipantBlocks(ctx, event.ID, p.ID, blocks))

		owned, err := svc.ScheduleForParticipant(ctx, event.ID, p.ID)
		require.NoError(t, err)
		assert.Len(t, owned, len(blocks), "replacement %d", i)
		assert.ElementsMatch(t, blocks, owned)
	}
}

func TestEventService_ReplaceParticipantBlocks_Isolation(t *testing.T) {
	svc, _, _ := newTestEventService(t)
	ctx := context.Background()
	event := createTestEvent(t, svc)
	p1, _, err := svc.JoinEvent(ctx, event.ID, "Alice")
	require.NoError(t, err)
	p2, _, err := svc.JoinEvent(ctx, event.ID, "Bob")
	require.NoError(t, err)

	blocksP2 := []domain.ScheduleBlock{
		{
			StartTime: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		},
	}
	require.NoError(t, svc.ReplaceParticipantBlocks(ctx, event.ID, p2.ID, blocksP2))

	// Replacing p1's blocks repeatedly never alters p2's entries.
	for i := 0; i < 2; i++ {
		require.NoError(t, svc.ReplaceParticipantBlocks(ctx, event.ID, p1.ID, []domain.ScheduleBlock{
			{
				StartTime: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC),
			},
		}))
		owned, err := svc.ScheduleForParticipant(ctx, event.ID, p2.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, blocksP2, owned)
	}
}

func TestEventService_ScheduleForParticipant_PrefixFiltering(t *testing.T) {
	svc, store, _ := newTestEventService(t)
	ctx := context.Background()
	event := createTestEvent(t, svc)

	b1 := domain.ScheduleBlock{StartTime: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), EndTime: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	b2 := domain.ScheduleBlock{StartTime: time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC), EndTime: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	b3 := domain.ScheduleBlock{StartTime: time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC), EndTime: time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)}

	_, err := store.Update(ctx, event.ID, func(doc *domain.EventDocument) error {
		doc.ScheduleBlocks["p1-abc"] = b1
		doc.ScheduleBlocks["p1-def"] = b2
		doc.ScheduleBlocks["p2-xyz"] = b3
		return nil
	})
	require.NoError(t, err)

	owned, err := svc.ScheduleForParticipant(ctx, event.ID, "p1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.ScheduleBlock{b1, b2}, owned)

	// "p1" must not match keys of a participant id that merely shares the
	// string as a proper prefix.
	owned, err = svc.ScheduleForParticipant(ctx, event.ID, "p")
	require.NoError(t, err)
	assert.Empty(t, owned)
}

func TestEventService_SendInvitations(t *testing.T) {
	svc, _, emails := newTestEventService(t)
	ctx := context.Background()
	event := createTestEvent(t, svc)

	t.Run("unknown event", func(t *testing.T) {
		_, _, err := svc.SendInvitations(ctx, "missing", []string{"a@example.com"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("per-address failure accounting", func(t *testing.T) {
		emails.failFor["bad@example.com"] = true
		sent, failed, err := svc.SendInvitations(ctx, event.ID, []string{
			"  Good@Example.com ",
			"bad@example.com",
			"",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Equal(t, []string{"bad@example.com"}, failed)

		require.Len(t, emails.sent, 1)
		data := emails.sent[0]
		assert.Equal(t, "good@example.com", data.Email)
		assert.Equal(t, "Team offsite", data.EventTitle)
		assert.Equal(t, "Dana", data.OrganizerName)
		assert.True(t, strings.HasPrefix(data.EventURL, "https://freebusy.example/events/"))
	})
}
