package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/users-auth-api/internal/domain/entity"
	"github.com/oksasatya/users-auth-api/internal/domain/event"
	repo "github.com/oksasatya/users-auth-api/internal/domain/repository"
	"github.com/oksasatya/users-auth-api/pkg/helpers"
)

// bcrypt ignores input beyond 72 bytes; longer passwords are rejected.
const maxPasswordBytes = 72

// UserService implements the administrative users resource.
type UserService struct {
	Repo       repo.UserRepository
	Logger     *logrus.Logger
	Events     Publisher
	Index      *UserIndex
	BcryptCost int
}

func NewUserService(r repo.UserRepository, logger *logrus.Logger, events Publisher, index *UserIndex, bcryptCost int) *UserService {
	return &UserService{Repo: r, Logger: logger, Events: events, Index: index, BcryptCost: bcryptCost}
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string // optional; without it the user cannot log in
}

type UpdateUserInput struct {
	Name  string
	Email string
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	return s.Repo.List(ctx)
}

// CreateUser inserts a user. A supplied password goes through the same
// hashing path as registration.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (int64, error) {
	if blank(in.Name) || blank(in.Email) {
		return 0, ErrInvalidInput
	}
	u := &entity.User{Name: in.Name, Email: in.Email}
	if in.Password != "" {
		hash, err := hashPassword(in.Password, s.BcryptCost)
		if err != nil {
			return 0, err
		}
		u.PasswordHash = hash
	}

	id, err := s.Repo.Create(ctx, u)
	if err != nil {
		return 0, mapStoreErr(err)
	}
	u.ID = id
	metricUsersCreated.Add(1)

	s.Index.Put(ctx, *u)
	publish(ctx, s.Events, s.Logger, event.UserCreated, *u)
	return id, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, in UpdateUserInput) error {
	if id <= 0 {
		return ErrUserNotFound
	}
	if blank(in.Name) || blank(in.Email) {
		return ErrInvalidInput
	}
	u := entity.User{ID: id, Name: in.Name, Email: in.Email}
	if err := s.Repo.Update(ctx, &u); err != nil {
		return mapStoreErr(err)
	}

	s.Index.Put(ctx, u)
	publish(ctx, s.Events, s.Logger, event.UserUpdated, u)
	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrUserNotFound
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	metricUsersDeleted.Add(1)

	s.Index.Remove(ctx, id)
	publish(ctx, s.Events, s.Logger, event.UserDeleted, entity.User{ID: id})
	return nil
}

// GetProfile returns the user behind an authenticated token.
func (s *UserService) GetProfile(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return u, nil
}

func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]SearchHit, error) {
	if blank(q) {
		return []SearchHit{}, nil
	}
	return s.Index.Search(ctx, q, size)
}

func hashPassword(plain string, cost int) (string, error) {
	if len(plain) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	return helpers.HashPassword(plain, cost)
}

// mapStoreErr translates repository sentinels; other errors pass through
// as store faults.
func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, repo.ErrDuplicateEmail):
		return ErrEmailTaken
	case errors.Is(err, repo.ErrNotFound):
		return ErrUserNotFound
	default:
		return err
	}
}
