package services

import (
	"time"

	"freebusy/internal/domain"
)

// TransformEvents redacts raw provider events into schedule blocks. Events
// with no ID, a cancelled status, or no resolvable start or end are skipped
// silently: the transform is best-effort privacy-safe extraction, not strict
// validation, and skipped rows must not leak through an error channel.
//
// Every block of one call carries the same LastSyncAt so consumers can tell
// which blocks came from the same sync pass. Pure over its inputs.
func TransformEvents(raw []domain.RawCalendarEvent, now time.Time) []domain.ScheduleBlock {
	blocks := make([]domain.ScheduleBlock, 0, len(raw))
	for _, ev := range raw {
		if ev.ID == "" || ev.Status == "cancelled" {
			continue
		}
		start, ok := ev.Start.Resolve()
		if !ok {
			continue
		}
		end, ok := ev.End.Resolve()
		if !ok {
			continue
		}
		blocks = append(blocks, domain.ScheduleBlock{
			StartTime:  start,
			EndTime:    end,
			LastSyncAt: now,
		})
	}
	return blocks
}
