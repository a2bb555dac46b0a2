package domain

import (
	"context"
	"time"
)

// Event holds the metadata of a scheduling event. Fields are written once at
// creation; a late-joining replica may republish identical metadata, which
// resolves as a no-op under last-writer-wins merge.
// swagger:model Event
type Event struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	OrganizerName   string    `json:"organizer_name"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewEvent returns a new Event with the given fields. ID is generated by the
// service when empty.
func NewEvent(title, description string, durationMinutes int, organizerName string, createdAt time.Time) *Event {
	return &Event{
		Title:           title,
		Description:     description,
		DurationMinutes: durationMinutes,
		OrganizerName:   organizerName,
		CreatedAt:       createdAt,
	}
}

// EventDocument is the replicated document shared by all participants of one
// event: metadata, the participant map, and the privacy-redacted schedule
// blocks keyed by "{participantID}-{suffix}".
// swagger:model EventDocument
type EventDocument struct {
	Event          Event                    `json:"event"`
	Participants   map[string]Participant   `json:"participants"`
	ScheduleBlocks map[string]ScheduleBlock `json:"schedule_blocks"`
}

// Clone returns a deep copy of the document. Map values are plain structs,
// so copying the maps is sufficient.
func (d *EventDocument) Clone() *EventDocument {
	out := &EventDocument{
		Event:          d.Event,
		Participants:   make(map[string]Participant, len(d.Participants)),
		ScheduleBlocks: make(map[string]ScheduleBlock, len(d.ScheduleBlocks)),
	}
	for id, p := range d.Participants {
		out.Participants[id] = p
	}
	for key, b := range d.ScheduleBlocks {
		out.ScheduleBlocks[key] = b
	}
	return out
}

// EventDocumentStore is the replicated document store collaborator. Documents
// are addressed by event ID (path "event/{eventID}" on the wire). The store
// guarantees a replica sees its own prior writes; cross-replica consistency is
// eventual, via CRDT merge.
type EventDocumentStore interface {
	// Get returns the current local state of the document, or ErrNotFound.
	Get(ctx context.Context, eventID string) (*EventDocument, error)
	// Update applies mutate to the document (creating it if absent) as a
	// single locally-atomic operation and returns the resulting state.
	Update(ctx context.Context, eventID string, mutate func(*EventDocument) error) (*EventDocument, error)
	// Subscribe delivers document states after each local update or remote
	// merge until ctx is done or the returned cancel func is called.
	// Deliveries are coalescing: a slow consumer observes the latest state.
	Subscribe(ctx context.Context, eventID string) (<-chan *EventDocument, func(), error)
}

// DocumentSnapshotRepository persists document snapshots for durability across
// restarts. Clock is the store's logical clock at snapshot time.
type DocumentSnapshotRepository interface {
	Save(ctx context.Context, path string, snapshot []byte, clock int64) error
	// Load returns the stored snapshot and clock, or ErrNotFound.
	Load(ctx context.Context, path string) ([]byte, int64, error)
}

// ParticipantPatch is a partial update of a Participant. Nil fields are
// left unchanged.
type ParticipantPatch struct {
	Name              *string
	CalendarConnected *bool
}

// EventService defines operations on scheduling events and their replicated
// documents.
type EventService interface {
	// CreateEvent writes event metadata into the document. Safe to call
	// repeatedly with identical metadata.
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, eventID string) (*EventDocument, error)
	// JoinEvent adds a participant and returns it together with a bearer
	// token scoped to that participant and event.
	JoinEvent(ctx context.Context, eventID, name string) (*Participant, string, error)
	// UpdateParticipant applies the patch. A missing participant is a silent
	// no-op (returns nil, nil): replication can deliver updates before the
	// corresponding join has been observed.
	UpdateParticipant(ctx context.Context, eventID, participantID string, patch ParticipantPatch) (*Participant, error)
	// ReplaceParticipantBlocks swaps the participant's entire block set.
	// Other participants' blocks are never touched.
	ReplaceParticipantBlocks(ctx context.Context, eventID, participantID string, blocks []ScheduleBlock) error
	// ScheduleForParticipant returns the blocks owned by the participant,
	// selected by composite-key prefix.
	ScheduleForParticipant(ctx context.Context, eventID, participantID string) ([]ScheduleBlock, error)
	// SendInvitations emails an invitation per address. Returns the number
	// sent and the addresses that failed.
	SendInvitations(ctx context.Context, eventID string, emails []string) (sent int, failed []string, err error)
}
