package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ScheduleDigestEmailData holds data for the post-submission digest email.
type ScheduleDigestEmailData struct {
	Email          string
	Name           string
	VideoTitle     string
	ScheduledTimes []time.Time
	Timezone       string
	SuccessCount   int
	ErrorCount     int
	Errors         []string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendScheduleDigest(ctx context.Context, data *ScheduleDigestEmailData) error
}
