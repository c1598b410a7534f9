package domain

import "context"

// AdminService defines moderation and reporting operations. Callers are
// expected to have verified the admin role at the transport boundary.
type AdminService interface {
	// GetEventsByType classifies all events against the current time with no
	// approval restriction (admin view).
	GetEventsByType(ctx context.Context, eventType string) (*Result, error)
	// UpdateStatusEvent toggles the owner-facing active flag on an event.
	UpdateStatusEvent(ctx context.Context, id int64, status bool) (*Result, error)
	// GetUserCreationStats returns per-month signup counts for the trailing
	// months window, oldest bucket first.
	GetUserCreationStats(ctx context.Context, months int) (*Result, error)
	// GetEventTypeDistribution returns per-event-type counts and percentages
	// over the trailing months window.
	GetEventTypeDistribution(ctx context.Context, months int) (*Result, error)
}

// EmailService sends transactional mail. Delivery failures are logged by
// callers, never surfaced to API clients.
type EmailService interface {
	SendWelcomeMessage(ctx context.Context, data *WelcomeEmailData) error
	SendPasswordReset(ctx context.Context, data *PasswordResetEmailData) error
}

// Mailer delivers a rendered message to a recipient.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders a named template into subject, html and
// text bodies.
type EmailTemplateRenderer interface {
	Render(templateName string, data interface{}) (subject, htmlBody, textBody string, err error)
}

// WelcomeEmailData feeds the signup confirmation template.
type WelcomeEmailData struct {
	Email string
	Name  string
}

// PasswordResetEmailData feeds the password-reset template. ResetLink is the
// deep link carrying the reset token.
type PasswordResetEmailData struct {
	Email     string
	ResetLink string
}
