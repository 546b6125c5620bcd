package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/users-auth-api/internal/domain/event"
	"github.com/oksasatya/users-auth-api/pkg/helpers"
	"github.com/oksasatya/users-auth-api/pkg/mailer"
)

// Outcome tells the consumer how to settle a delivery.
type Outcome int

const (
	Ack     Outcome = iota // handled or intentionally skipped
	Drop                   // malformed; nack without requeue
	Requeue                // transient failure; nack with requeue
)

// ErrMalformed marks a delivery that can never be processed.
var ErrMalformed = errors.New("malformed user event")

// Welcome sends a welcome email for every user.registered event and
// acknowledges all other event types untouched.
type Welcome struct {
	AppName string
	Sender  mailer.Sender
	Logger  *logrus.Logger
}

func NewWelcome(appName string, sender mailer.Sender, logger *logrus.Logger) *Welcome {
	return &Welcome{AppName: appName, Sender: sender, Logger: logger}
}

func (w *Welcome) Handle(ctx context.Context, body []byte) (Outcome, error) {
	var ev event.UserEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return Drop, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if ev.Type != event.UserRegistered {
		return Ack, nil
	}
	if ev.Email == "" {
		return Drop, fmt.Errorf("%w: event %s has no email", ErrMalformed, ev.ID)
	}

	job, err := mailer.NewWelcomeJob(w.AppName, ev.Name, ev.Email)
	if err != nil {
		return Drop, fmt.Errorf("render welcome: %w", err)
	}
	if err := w.Sender.Send(ctx, job); err != nil {
		return Requeue, fmt.Errorf("send welcome: %w", err)
	}
	helpers.LogInfo(w.Logger, "welcome email sent", logrus.Fields{"event_id": ev.ID, "user_id": ev.UserID})
	return Ack, nil
}
