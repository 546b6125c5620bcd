package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/users-auth-api/internal/domain/entity"
	"github.com/oksasatya/users-auth-api/internal/domain/event"
	repo "github.com/oksasatya/users-auth-api/internal/domain/repository"
	"github.com/oksasatya/users-auth-api/pkg/helpers"
)

// AuthService handles registration and password login.
type AuthService struct {
	Repo       repo.UserRepository
	JWT        *helpers.JWTManager
	Logger     *logrus.Logger
	Events     Publisher
	Index      *UserIndex
	BcryptCost int
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, events Publisher, index *UserIndex, bcryptCost int) *AuthService {
	return &AuthService{Repo: r, JWT: jwt, Logger: logger, Events: events, Index: index, BcryptCost: bcryptCost}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      entity.User
}

// Register hashes the password and stores a new user. Missing fields are
// rejected before the store is touched.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (int64, error) {
	if blank(in.Name) || blank(in.Email) || in.Password == "" {
		return 0, ErrInvalidInput
	}
	hash, err := hashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return 0, err
	}

	u := &entity.User{Name: in.Name, Email: in.Email, PasswordHash: hash}
	id, err := s.Repo.Create(ctx, u)
	if err != nil {
		return 0, mapStoreErr(err)
	}
	u.ID = id
	metricRegistrations.Add(1)

	s.Index.Put(ctx, *u)
	publish(ctx, s.Events, s.Logger, event.UserRegistered, *u)
	return id, nil
}

// Login verifies credentials and issues a token. Unknown email, accounts
// without a password, and wrong passwords all return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if blank(email) || password == "" {
		return nil, ErrInvalidInput
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			helpers.CompareDummy(password, s.BcryptCost)
			metricLoginFailed.Add(1)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.HasPassword() {
		helpers.CompareDummy(password, s.BcryptCost)
		metricLoginFailed.Add(1)
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		metricLoginFailed.Add(1)
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return nil, err
	}
	metricLoginOK.Add(1)
	return &LoginResult{Token: token, ExpiresAt: exp, User: *u}, nil
}
