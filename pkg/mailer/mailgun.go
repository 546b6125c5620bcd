package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Sender delivers a rendered email.
type Sender interface {
	Send(ctx context.Context, job EmailJob) error
}

// Mailgun wraps Mailgun client configuration.
type Mailgun struct {
	Sender string
	client *mg.MailgunImpl
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Sender: sender, client: mg.NewMailgun(domain, apiKey)}
}

// Send sends an email via Mailgun. The HTML body is attached when present.
func (m *Mailgun) Send(ctx context.Context, job EmailJob) error {
	msg := m.client.NewMessage(m.Sender, job.Subject, job.Text, job.To)
	if job.HTML != "" {
		msg.SetHtml(job.HTML)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return err
}

var _ Sender = (*Mailgun)(nil)
