package services

import (
	"context"
	"fmt"
	"time"

	"freebusy/internal/domain"
)

type calendarSyncService struct {
	events         domain.EventService
	source         domain.CalendarSource
	syncWindowDays int
	contextTimeout time.Duration
}

// NewCalendarSyncService returns the sync orchestrator: fetch raw events,
// redact them, replace the participant's block set, mark the participant
// connected. syncWindowDays bounds how far ahead a sync looks.
func NewCalendarSyncService(events domain.EventService, source domain.CalendarSource, syncWindowDays int, timeout time.Duration) domain.CalendarSyncService {
	return &calendarSyncService{
		events:         events,
		source:         source,
		syncWindowDays: syncWindowDays,
		contextTimeout: timeout,
	}
}

func (s *calendarSyncService) SyncParticipantCalendar(ctx context.Context, eventID, participantID string, credential domain.CalendarCredential) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := time.Now()
	timeMax := now.AddDate(0, 0, s.syncWindowDays)

	raw, err := s.source.FetchEvents(ctx, credential, now, timeMax)
	if err != nil {
		// Propagated as-is: the participant stays disconnected and keeps
		// contributing "unknown" to every slot. Retry is the caller's call.
		return fmt.Errorf("fetch calendar events: %w", err)
	}

	blocks := TransformEvents(raw, now)
	if err := s.events.ReplaceParticipantBlocks(ctx, eventID, participantID, blocks); err != nil {
		return err
	}

	connected := true
	if _, err := s.events.UpdateParticipant(ctx, eventID, participantID, domain.ParticipantPatch{CalendarConnected: &connected}); err != nil {
		return err
	}
	return nil
}
