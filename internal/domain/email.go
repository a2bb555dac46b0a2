package domain

import "context"

// Mailer sends a single email. Implementations decide the transport.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders a named template into subject, html, and text.
type EmailTemplateRenderer interface {
	Render(templateName string, data interface{}) (subject, htmlBody, textBody string, err error)
}

// EventInvitationEmailData is the template data for an event invitation.
type EventInvitationEmailData struct {
	Email           string
	OrganizerName   string
	EventTitle      string
	DurationMinutes int
	EventURL        string
}

// EmailService defines the emails this application sends.
type EmailService interface {
	SendEventInvitation(ctx context.Context, data *EventInvitationEmailData) error
}
