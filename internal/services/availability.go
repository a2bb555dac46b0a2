package services

import (
	"strings"
	"time"

	"freebusy/internal/domain"
)

// AvailabilityParams frames one availability computation. DayStartHour and
// DayEndHour are local hours of day bounding the slot grid; both are
// parameters rather than constants because callers legitimately want
// different windows.
type AvailabilityParams struct {
	// Date selects the day; its location defines "local" for the grid.
	Date         time.Time
	SlotMinutes  int
	DayStartHour int
	DayEndHour   int
	// Now anchors the past-slot rule.
	Now time.Time
}

// ComputeAvailability derives the slot grid for one day and, per slot, each
// participant's status plus the aggregate classification.
//
// Rules, in order:
//   - a slot whose end is at or before Now is past: every status is unknown,
//     because a past interval can no longer be meaningfully available or not;
//   - a participant that has never synced a calendar contributes unknown;
//   - otherwise the participant is busy iff any of their blocks overlaps the
//     half-open slot interval, else available.
//
// A day with zero connected participants yields an all-unknown grid, never
// an error.
func ComputeAvailability(doc *domain.EventDocument, p AvailabilityParams) []domain.TimeSlot {
	if p.SlotMinutes <= 0 || p.DayEndHour <= p.DayStartHour {
		return nil
	}
	loc := p.Date.Location()
	year, month, day := p.Date.Date()
	dayStart := time.Date(year, month, day, p.DayStartHour, 0, 0, 0, loc)
	dayEnd := time.Date(year, month, day, p.DayEndHour, 0, 0, 0, loc)
	step := time.Duration(p.SlotMinutes) * time.Minute

	var slots []domain.TimeSlot
	for start := dayStart; !start.Add(step).After(dayEnd); start = start.Add(step) {
		end := start.Add(step)
		slot := domain.TimeSlot{
			Start:    start,
			End:      end,
			IsPast:   !end.After(p.Now),
			Statuses: make(map[string]domain.ParticipantStatus, len(doc.Participants)),
		}
		for id, participant := range doc.Participants {
			slot.Statuses[id] = participantStatus(doc, participant, slot)
		}
		slot.Class = Classify(doc, slot)
		slots = append(slots, slot)
	}
	return slots
}

func participantStatus(doc *domain.EventDocument, p domain.Participant, slot domain.TimeSlot) domain.ParticipantStatus {
	if slot.IsPast {
		return domain.StatusUnknown
	}
	if !p.CalendarConnected {
		return domain.StatusUnknown
	}
	for key, block := range doc.ScheduleBlocks {
		if !ownedBy(key, p.ID) {
			continue
		}
		if block.Overlaps(slot.Start, slot.End) {
			return domain.StatusBusy
		}
	}
	return domain.StatusAvailable
}

// Classify reduces a slot's statuses across participants. Success requires
// unanimous availability among calendar-connected participants; disconnected
// participants contribute no information and never block all_available on
// their own. Any busy connected participant means has_conflict.
func Classify(doc *domain.EventDocument, slot domain.TimeSlot) domain.SlotClass {
	connected := 0
	available := 0
	for id, p := range doc.Participants {
		if !p.CalendarConnected {
			continue
		}
		connected++
		switch slot.Statuses[id] {
		case domain.StatusBusy:
			return domain.SlotHasConflict
		case domain.StatusAvailable:
			available++
		}
	}
	if connected > 0 && available == connected {
		return domain.SlotAllAvailable
	}
	return domain.SlotUnknown
}

// ownedBy reports whether a composite block key belongs to the participant.
// Only the "{participantID}-" prefix is meaningful; the suffix is random.
func ownedBy(blockKey, participantID string) bool {
	return strings.HasPrefix(blockKey, participantID+"-")
}
