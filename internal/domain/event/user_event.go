package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/users-auth-api/internal/domain/entity"
)

// Type names a user lifecycle transition.
type Type string

const (
	UserRegistered Type = "user.registered"
	UserCreated    Type = "user.created"
	UserUpdated    Type = "user.updated"
	UserDeleted    Type = "user.deleted"
)

// UserEvent is the JSON payload published on the user events queue.
// It never carries the password or its hash.
type UserEvent struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	UserID     int64     `json:"user_id"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewUserEvent(typ Type, u entity.User) UserEvent {
	return UserEvent{
		ID:         uuid.NewString(),
		Type:       typ,
		UserID:     u.ID,
		Name:       u.Name,
		Email:      u.Email,
		OccurredAt: time.Now().UTC(),
	}
}
