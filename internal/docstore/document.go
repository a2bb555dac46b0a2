package docstore

import (
	"encoding/json"
	"fmt"

	"freebusy/internal/domain"
)

// Scalar field names of the event metadata.
const (
	fieldID              = "id"
	fieldTitle           = "title"
	fieldDescription     = "description"
	fieldDurationMinutes = "duration_minutes"
	fieldOrganizerName   = "organizer_name"
	fieldCreatedAt       = "created_at"
)

// document is the wire and merge representation of one replicated event
// document: LWW registers for the metadata scalars, union-merged register
// maps for participants and schedule blocks.
type document struct {
	Fields       map[string]register `json:"fields"`
	Participants map[string]register `json:"participants"`
	Blocks       map[string]register `json:"blocks"`
}

func newDocument() *document {
	return &document{
		Fields:       make(map[string]register),
		Participants: make(map[string]register),
		Blocks:       make(map[string]register),
	}
}

// merge folds other into d. Scalars and map entries resolve per-register;
// entries only present in other are taken as-is (union).
func (d *document) merge(other *document) {
	mergeRegisters(d.Fields, other.Fields)
	mergeRegisters(d.Participants, other.Participants)
	mergeRegisters(d.Blocks, other.Blocks)
}

func mergeRegisters(dst, src map[string]register) {
	for key, incoming := range src {
		current, ok := dst[key]
		if !ok || incoming.newerThan(current) {
			dst[key] = incoming
		}
	}
}

// maxClock returns the highest register clock in the document, used to keep
// the local Lamport clock ahead of everything already merged.
func (d *document) maxClock() int64 {
	var max int64
	for _, m := range []map[string]register{d.Fields, d.Participants, d.Blocks} {
		for _, r := range m {
			if r.Clock > max {
				max = r.Clock
			}
		}
	}
	return max
}

// empty reports whether the document carries no live state at all.
func (d *document) empty() bool {
	return len(d.Fields) == 0 && len(d.Participants) == 0 && len(d.Blocks) == 0
}

// decode materializes the document into the domain view, skipping tombstones.
func (d *document) decode() (*domain.EventDocument, error) {
	out := &domain.EventDocument{
		Participants:   make(map[string]domain.Participant),
		ScheduleBlocks: make(map[string]domain.ScheduleBlock),
	}
	for name, r := range d.Fields {
		if r.Deleted {
			continue
		}
		var err error
		switch name {
		case fieldID:
			err = json.Unmarshal(r.Value, &out.Event.ID)
		case fieldTitle:
			err = json.Unmarshal(r.Value, &out.Event.Title)
		case fieldDescription:
			err = json.Unmarshal(r.Value, &out.Event.Description)
		case fieldDurationMinutes:
			err = json.Unmarshal(r.Value, &out.Event.DurationMinutes)
		case fieldOrganizerName:
			err = json.Unmarshal(r.Value, &out.Event.OrganizerName)
		case fieldCreatedAt:
			err = json.Unmarshal(r.Value, &out.Event.CreatedAt)
		default:
			// Unknown fields from newer replicas are ignored, not dropped:
			// they stay in the register map and keep replicating.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("decode field %s: %w", name, err)
		}
	}
	for id, r := range d.Participants {
		if r.Deleted {
			continue
		}
		var p domain.Participant
		if err := json.Unmarshal(r.Value, &p); err != nil {
			return nil, fmt.Errorf("decode participant %s: %w", id, err)
		}
		out.Participants[id] = p
	}
	for key, r := range d.Blocks {
		if r.Deleted {
			continue
		}
		var b domain.ScheduleBlock
		if err := json.Unmarshal(r.Value, &b); err != nil {
			return nil, fmt.Errorf("decode schedule block %s: %w", key, err)
		}
		out.ScheduleBlocks[key] = b
	}
	return out, nil
}

// applyChanges stamps every difference between before and after into the
// document with the given clock and replica. The whole mutation shares one
// clock value, so a concurrent mutation from another replica resolves
// entirely to one side instead of interleaving partial deletes and inserts.
func (d *document) applyChanges(before, after *domain.EventDocument, clock int64, replica string) error {
	scalars := []struct {
		name     string
		old, new interface{}
		changed  bool
	}{
		{fieldID, before.Event.ID, after.Event.ID, before.Event.ID != after.Event.ID},
		{fieldTitle, before.Event.Title, after.Event.Title, before.Event.Title != after.Event.Title},
		{fieldDescription, before.Event.Description, after.Event.Description, before.Event.Description != after.Event.Description},
		{fieldDurationMinutes, before.Event.DurationMinutes, after.Event.DurationMinutes, before.Event.DurationMinutes != after.Event.DurationMinutes},
		{fieldOrganizerName, before.Event.OrganizerName, after.Event.OrganizerName, before.Event.OrganizerName != after.Event.OrganizerName},
		{fieldCreatedAt, before.Event.CreatedAt, after.Event.CreatedAt, !before.Event.CreatedAt.Equal(after.Event.CreatedAt)},
	}
	for _, s := range scalars {
		if !s.changed {
			continue
		}
		raw, err := json.Marshal(s.new)
		if err != nil {
			return fmt.Errorf("encode field %s: %w", s.name, err)
		}
		d.Fields[s.name] = register{Value: raw, Clock: clock, Replica: replica}
	}

	for id, p := range after.Participants {
		if old, ok := before.Participants[id]; ok && old == p {
			continue
		}
		raw, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode participant %s: %w", id, err)
		}
		d.Participants[id] = register{Value: raw, Clock: clock, Replica: replica}
	}
	for id := range before.Participants {
		if _, ok := after.Participants[id]; !ok {
			d.Participants[id] = register{Clock: clock, Replica: replica, Deleted: true}
		}
	}

	for key, b := range after.ScheduleBlocks {
		if old, ok := before.ScheduleBlocks[key]; ok && sameBlock(old, b) {
			continue
		}
		raw, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("encode schedule block %s: %w", key, err)
		}
		d.Blocks[key] = register{Value: raw, Clock: clock, Replica: replica}
	}
	for key := range before.ScheduleBlocks {
		if _, ok := after.ScheduleBlocks[key]; !ok {
			d.Blocks[key] = register{Clock: clock, Replica: replica, Deleted: true}
		}
	}
	return nil
}

func sameBlock(a, b domain.ScheduleBlock) bool {
	return a.StartTime.Equal(b.StartTime) && a.EndTime.Equal(b.EndTime) && a.LastSyncAt.Equal(b.LastSyncAt)
}
