package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/users-auth-api/internal/domain/entity"
	"github.com/oksasatya/users-auth-api/internal/domain/event"
)

// Publisher delivers user lifecycle events. A nil Publisher disables publishing.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// publish is best effort: failures are logged and never returned.
func publish(ctx context.Context, p Publisher, logger *logrus.Logger, typ event.Type, u entity.User) {
	if p == nil {
		return
	}
	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := p.PublishJSON(c, event.NewUserEvent(typ, u)); err != nil && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{"event": typ, "user_id": u.ID}).Warn("publish user event failed")
	}
}
