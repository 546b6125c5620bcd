package mailer

import (
	tpl "github.com/oksasatya/users-auth-api/pkg/mailer/templates"
)

// EmailJob is a rendered email ready to hand to a provider.
// HTML is optional; Text is the fallback body.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// NewWelcomeJob renders the welcome template for a freshly registered user.
func NewWelcomeJob(appName, name, email string) (EmailJob, error) {
	subject, text, html, err := tpl.Render(tpl.Welcome, tpl.NewWelcomeData(appName, name, email))
	if err != nil {
		return EmailJob{}, err
	}
	return EmailJob{To: email, Subject: subject, Text: text, HTML: html}, nil
}
