package docstore

import "encoding/json"

// register is a last-writer-wins cell. A write wins if its clock is higher;
// equal clocks tie-break on replica ID so that every replica resolves the
// conflict the same way. Deletions are kept as tombstones so a removal can
// win over a concurrent stale write.
type register struct {
	Value   json.RawMessage `json:"value,omitempty"`
	Clock   int64           `json:"clock"`
	Replica string          `json:"replica"`
	Deleted bool            `json:"deleted,omitempty"`
}

// newerThan reports whether r wins over other under LWW.
func (r register) newerThan(other register) bool {
	if r.Clock != other.Clock {
		return r.Clock > other.Clock
	}
	return r.Replica > other.Replica
}
