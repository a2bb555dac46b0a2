package domain

import "time"

// Participant is one user attached to a scheduling event.
// swagger:model Participant
type Participant struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	JoinedAt          time.Time `json:"joined_at"`
	CalendarConnected bool      `json:"calendar_connected"`
	Color             string    `json:"color"`
}

// ParticipantPalette is the fixed set of display colors. A joining
// participant is assigned palette[count mod len] where count is the local
// participant count at join time; two replicas joining concurrently may pick
// the same color, which is cosmetic only.
var ParticipantPalette = []string{
	"#3b82f6", // blue
	"#ef4444", // red
	"#22c55e", // green
	"#f59e0b", // amber
	"#8b5cf6", // violet
	"#ec4899", // pink
	"#14b8a6", // teal
	"#f97316", // orange
}

// ColorForJoinOrder returns the palette color for the nth joiner.
func ColorForJoinOrder(count int) string {
	if count < 0 {
		count = 0
	}
	return ParticipantPalette[count%len(ParticipantPalette)]
}
