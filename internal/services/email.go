package services

import (
	"context"
	"fmt"
	"log/slog"

	"seminarbooking/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and
// template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendRegistrationConfirmation sends the attendee either the registration
// confirmation or, for waiting-list placements, the waiting-list notice.
func (s *emailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	if data == nil {
		return fmt.Errorf("registration email data is nil")
	}
	templateName := "registration_confirmation"
	if data.OnWaitingList {
		templateName = "waiting_list_notice"
	}
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send registration email: %w", err)
	}
	s.logger.InfoContext(ctx, "registration email sent", "to", data.Email, "template", templateName)
	return nil
}

// SendOrganizerNotification notifies the organizer of a new registration.
func (s *emailService) SendOrganizerNotification(ctx context.Context, data *domain.OrganizerNotificationData) error {
	if data == nil {
		return fmt.Errorf("organizer notification data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("organizer_notification", data)
	if err != nil {
		return fmt.Errorf("failed to render organizer_notification template: %w", err)
	}
	if err := s.mailer.Send(data.OrganizerEmail, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send organizer notification: %w", err)
	}
	s.logger.InfoContext(ctx, "organizer notification sent", "to", data.OrganizerEmail)
	return nil
}
