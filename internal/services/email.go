package services

import (
	"context"
	"fmt"

	"ytlivescheduler/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendScheduleDigest sends the post-submission summary using the
// "schedule_digest" template.
func (s *emailService) SendScheduleDigest(ctx context.Context, data *domain.ScheduleDigestEmailData) error {
	if data == nil {
		return fmt.Errorf("schedule digest data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("schedule_digest", data)
	if err != nil {
		return fmt.Errorf("failed to render schedule_digest template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send schedule digest: %w", err)
	}
	return nil
}
