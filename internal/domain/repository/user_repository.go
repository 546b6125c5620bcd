package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/users-auth-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no row matches the given key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when the email unique constraint rejects a write.
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository defines the interface for user-related database operations.
// Every method runs exactly one parameterized statement.
type UserRepository interface {
	List(ctx context.Context) ([]entity.User, error)
	Create(ctx context.Context, u *entity.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id int64) error
}
