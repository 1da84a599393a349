package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RegistrationEmailData holds data for the registration confirmation and
// waiting-list notice emails.
type RegistrationEmailData struct {
	Email         string
	Name          string
	EventTitle    string
	Seats         int
	TotalPrice    float64
	OnWaitingList bool
}

// OrganizerNotificationData holds data for the organizer notification email.
type OrganizerNotificationData struct {
	OrganizerEmail string
	EventTitle     string
	AttendeeName   string
	Seats          int
	OnWaitingList  bool
}

// EmailService defines the contract for sending domain-level emails. The
// registration service only calls it after the registration is persisted.
type EmailService interface {
	SendRegistrationConfirmation(ctx context.Context, data *RegistrationEmailData) error
	SendOrganizerNotification(ctx context.Context, data *OrganizerNotificationData) error
}
