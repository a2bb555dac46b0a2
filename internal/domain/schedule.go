package domain

import (
	"context"
	"time"
)

// ScheduleBlock is a privacy-redacted busy interval [StartTime, EndTime).
// It deliberately carries no title, location, or attendee data; only temporal
// occupancy survives ingestion. LastSyncAt identifies the sync pass that
// produced the block: all blocks from one pass share the same value.
// swagger:model ScheduleBlock
type ScheduleBlock struct {
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	LastSyncAt time.Time `json:"last_sync_at"`
}

// Overlaps reports whether the block intersects [start, end) under the
// half-open interval rule: a block that ends exactly at start does not overlap.
func (b ScheduleBlock) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// RawEventTime is a provider event boundary: either a date-time or an
// all-day date, matching the Google Calendar wire shape.
type RawEventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

// Resolve returns the boundary as a time.Time, preferring DateTime over Date.
// ok is false when neither form parses.
func (t RawEventTime) Resolve() (time.Time, bool) {
	if t.DateTime != "" {
		if v, err := time.Parse(time.RFC3339, t.DateTime); err == nil {
			return v, true
		}
	}
	if t.Date != "" {
		if v, err := time.Parse("2006-01-02", t.Date); err == nil {
			return v, true
		}
	}
	return time.Time{}, false
}

// RawCalendarEvent is a calendar provider event as consumed by the schedule
// block transform. Descriptive fields are intentionally absent.
type RawCalendarEvent struct {
	ID     string       `json:"id"`
	Start  RawEventTime `json:"start"`
	End    RawEventTime `json:"end"`
	Status string       `json:"status,omitempty"`
}

// CalendarCredential is an opaque stored OAuth token, typically the JSON
// produced by the provider's token exchange. Acquisition and refresh of the
// token are outside this service.
type CalendarCredential []byte

// CalendarSource is the calendar ingestion collaborator.
type CalendarSource interface {
	// FetchEvents returns the raw events between timeMin and timeMax for the
	// calendar identified by the credential.
	FetchEvents(ctx context.Context, credential CalendarCredential, timeMin, timeMax time.Time) ([]RawCalendarEvent, error)
}

// CalendarSyncService ingests a participant's calendar into the event
// document as redacted schedule blocks.
type CalendarSyncService interface {
	// SyncParticipantCalendar fetches, redacts, and replaces the
	// participant's blocks, then marks the participant calendar-connected.
	// A fetch failure propagates and leaves the participant disconnected.
	SyncParticipantCalendar(ctx context.Context, eventID, participantID string, credential CalendarCredential) error
}
