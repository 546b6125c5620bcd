package application

import (
	"context"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/users-auth-api/internal/domain/entity"
	repo "github.com/oksasatya/users-auth-api/internal/domain/repository"
)

// memRepo is an in-memory UserRepository enforcing email uniqueness.
type memRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]entity.User
	err    error // returned by every call when set
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[int64]entity.User{}}
}

func (r *memRepo) emailTaken(email string, except int64) bool {
	for id, u := range r.rows {
		if u.Email == email && id != except {
			return true
		}
	}
	return false
}

func (r *memRepo) List(context.Context) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]entity.User, 0, len(r.rows))
	for _, u := range r.rows {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) Create(_ context.Context, u *entity.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	if r.emailTaken(u.Email, 0) {
		return 0, repo.ErrDuplicateEmail
	}
	r.nextID++
	u.ID = r.nextID
	r.rows[u.ID] = *u
	return u.ID, nil
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (r *memRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.rows {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	cur, ok := r.rows[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return repo.ErrDuplicateEmail
	}
	cur.Name, cur.Email = u.Name, u.Email
	r.rows[u.ID] = cur
	return nil
}

func (r *memRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.rows[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

var _ repo.UserRepository = (*memRepo)(nil)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishJSON(ctx context.Context, body any) error {
	args := m.Called(ctx, body)
	return args.Error(0)
}
