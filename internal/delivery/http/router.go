package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"freebusy/internal/delivery/http/controllers"
	"freebusy/internal/delivery/http/middleware"
	"freebusy/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Creating and joining events are public: invitees hold only the event link.
// Everything else requires a participant token scoped to the event.
func NewRouter(logger *slog.Logger,
	eventController *controllers.EventController,
	availabilityController *controllers.AvailabilityController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	// Public
	mux.HandleFunc("POST /events", eventController.CreateEvent)
	mux.HandleFunc("POST /events/{eventID}/participants", eventController.JoinEvent)

	// Participant-scoped
	mux.HandleFunc("GET /events/{eventID}", requireAuth(eventController.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}/participants/me", requireAuth(eventController.UpdateMe))
	mux.HandleFunc("GET /events/{eventID}/participants/me/schedule", requireAuth(eventController.GetMySchedule))
	mux.HandleFunc("POST /events/{eventID}/participants/me/calendar/sync", requireAuth(availabilityController.SyncCalendar))
	mux.HandleFunc("GET /events/{eventID}/availability", requireAuth(availabilityController.GetAvailability))
	mux.HandleFunc("POST /events/{eventID}/invitations", requireAuth(eventController.SendInvitations))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
