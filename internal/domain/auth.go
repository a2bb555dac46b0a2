package domain

import "time"

// TokenIssuer issues bearer tokens scoped to one participant of one event.
type TokenIssuer interface {
	Issue(participantID, eventID string, expiry time.Duration) (string, error)
}

// TokenVerifier validates a bearer token and returns its participant and
// event IDs.
type TokenVerifier interface {
	Verify(token string) (participantID, eventID string, err error)
}
