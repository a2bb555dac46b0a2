package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "freebusy/internal/delivery/http/helpers"
	"freebusy/internal/domain"
)

type contextKey string

const participantKey contextKey = "participant"

// ParticipantScope identifies the authenticated participant and the event
// their token is scoped to.
type ParticipantScope struct {
	ParticipantID string
	EventID       string
}

// SetParticipant returns a context with the participant scope set. Used by auth middleware.
func SetParticipant(ctx context.Context, scope ParticipantScope) context.Context {
	return context.WithValue(ctx, participantKey, scope)
}

// ParticipantFromContext returns the authenticated participant scope from the context, if present.
func ParticipantFromContext(ctx context.Context) (ParticipantScope, bool) {
	scope, ok := ctx.Value(participantKey).(ParticipantScope)
	return scope, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the
// participant scope in the request context. A token scoped to a different
// event than the {eventID} path segment is rejected with 403.
// If the token is missing or invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			participantID, eventID, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			if pathEventID := r.PathValue("eventID"); pathEventID != "" && pathEventID != eventID {
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "token not valid for this event")
				return
			}
			r = r.WithContext(SetParticipant(r.Context(), ParticipantScope{
				ParticipantID: participantID,
				EventID:       eventID,
			}))
			next(w, r)
		}
	}
}
