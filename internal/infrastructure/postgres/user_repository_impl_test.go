package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/users-auth-api/internal/domain/entity"
	"github.com/oksasatya/users-auth-api/internal/domain/repository"
)

const (
	qSelectAll   = `(?s)^\s*SELECT\s+id,\s*name,\s*email,\s*password_hash\s+FROM\s+users\s+ORDER\s+BY\s+id\s*$`
	qInsert      = `(?s)^\s*INSERT\s+INTO\s+users\s*\(name,\s*email,\s*password_hash\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id\s*$`
	qSelectEmail = `(?s)^\s*SELECT\s+id,\s*name,\s*email,\s*password_hash\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`
	qSelectID    = `(?s)^\s*SELECT\s+id,\s*name,\s*email,\s*password_hash\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
	qUpdate      = `(?s)^\s*UPDATE\s+users\s+SET\s+name\s*=\s*\$1,\s*email\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$3\s*$`
	qDelete      = `(?s)^\s*DELETE\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
)

var userColumns = []string{"id", "name", "email", "password_hash"}

func newRepoWithMock(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewUserRepository(db), mock
}

func TestUserRepository_List(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows(userColumns).
		AddRow(int64(1), "Ann", "ann@x.com", "$2a$10$hash").
		AddRow(int64(2), "Bob", "bob@x.com", nil)
	mock.ExpectQuery(qSelectAll).WillReturnRows(rows)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, entity.User{ID: 1, Name: "Ann", Email: "ann@x.com", PasswordHash: "$2a$10$hash"}, users[0])
	assert.Equal(t, "", users[1].PasswordHash)
}

func TestUserRepository_List_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(qSelectAll).WillReturnRows(sqlmock.NewRows(userColumns))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserRepository_List_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(qSelectAll).WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestUserRepository_Create(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(qInsert).
		WithArgs("Ann", "ann@x.com", "$2a$10$hash").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	u := &entity.User{Name: "Ann", Email: "ann@x.com", PasswordHash: "$2a$10$hash"}
	id, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, int64(7), u.ID)
}

func TestUserRepository_Create_WithoutPasswordStoresNull(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(qInsert).
		WithArgs("Ann", "ann@x.com", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	_, err := repo.Create(context.Background(), &entity.User{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(qInsert).
		WithArgs("Ann", "ann@x.com", nil).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), &entity.User{Name: "Ann", Email: "ann@x.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestUserRepository_Create_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(qInsert).WillReturnError(errors.New("conn reset"))

	_, err := repo.Create(context.Background(), &entity.User{Name: "Ann", Email: "ann@x.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrDuplicateEmail)
	assert.Contains(t, err.Error(), "create user")
}

func TestUserRepository_GetByEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(qSelectEmail).
		WithArgs("ann@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(int64(1), "Ann", "ann@x.com", "$2a$10$hash"))

	u, err := repo.GetByEmail(context.Background(), "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "$2a$10$hash", u.PasswordHash)
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(qSelectEmail).WithArgs("ghost@x.com").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_GetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(qSelectID).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(int64(3), "Cid", "cid@x.com", nil))

	u, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Cid", u.Name)
	assert.False(t, u.HasPassword())
}

func TestUserRepository_GetByID_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(qSelectID).WithArgs(int64(3)).WillReturnError(errors.New("timeout"))

	_, err := repo.GetByID(context.Background(), 3)
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_Update(t *testing.T) {
	tests := []struct {
		name    string
		result  func(*sqlmock.ExpectedExec)
		wantErr error
	}{
		{
			name:   "row updated",
			result: func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 1)) },
		},
		{
			name:    "no row matched",
			result:  func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 0)) },
			wantErr: repository.ErrNotFound,
		},
		{
			name:    "email taken",
			result:  func(e *sqlmock.ExpectedExec) { e.WillReturnError(&pgconn.PgError{Code: pgUniqueViolation}) },
			wantErr: repository.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			tt.result(mock.ExpectExec(qUpdate).WithArgs("Ann B", "annb@x.com", int64(1)))

			err := repo.Update(context.Background(), &entity.User{ID: 1, Name: "Ann B", Email: "annb@x.com"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUserRepository_Delete(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(qDelete).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(qDelete).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(qDelete).WithArgs(int64(3)).WillReturnError(errors.New("db down"))

	assert.NoError(t, repo.Delete(context.Background(), 1))
	assert.ErrorIs(t, repo.Delete(context.Background(), 2), repository.ErrNotFound)
	err := repo.Delete(context.Background(), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete user")
}
