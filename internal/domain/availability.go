package domain

import "time"

// ParticipantStatus is a participant's availability within one slot.
type ParticipantStatus string

const (
	// StatusUnknown means the slot is past, or the participant has never
	// completed a calendar sync; no information is contributed.
	StatusUnknown ParticipantStatus = "unknown"
	StatusAvailable ParticipantStatus = "available"
	StatusBusy      ParticipantStatus = "busy"
)

// SlotClass is the aggregate classification of a slot across participants.
type SlotClass string

const (
	// SlotAllAvailable: every calendar-connected participant is available.
	SlotAllAvailable SlotClass = "all_available"
	// SlotHasConflict: at least one connected participant is busy.
	SlotHasConflict SlotClass = "has_conflict"
	// SlotUnknown: no connected participant contributes information
	// (past slot, or nobody has synced a calendar).
	SlotUnknown SlotClass = "unknown"
)

// TimeSlot is one half-open interval [Start, End) of the availability grid
// with each participant's status and the aggregate classification.
// swagger:model TimeSlot
type TimeSlot struct {
	Start    time.Time                    `json:"start"`
	End      time.Time                    `json:"end"`
	IsPast   bool                         `json:"is_past"`
	Statuses map[string]ParticipantStatus `json:"statuses"`
	Class    SlotClass                    `json:"class"`
}
