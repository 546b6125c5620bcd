package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/users-auth-api/internal/domain/entity"
	"github.com/oksasatya/users-auth-api/internal/domain/repository"
)

// SQLSTATE unique_violation
const pgUniqueViolation = "23505"

// DBTX is the subset of *sql.DB / *sql.Tx used by the repository.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, password_hash
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]entity.User, 0)
	for rows.Next() {
		var (
			u    entity.User
			hash sql.NullString
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &hash); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.PasswordHash = hash.String
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) (int64, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`, u.Name, u.Email, nullString(u.PasswordHash))

	if err := row.Scan(&u.ID); err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return u.ID, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, `
		SELECT id, name, email, password_hash
		FROM users
		WHERE id = $1
	`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `
		SELECT id, name, email, password_hash
		FROM users
		WHERE email = $1
	`, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	u := &entity.User{}
	var hash sql.NullString

	row := r.db.QueryRowContext(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.PasswordHash = hash.String
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET name = $1, email = $2
		WHERE id = $3
	`, u.Name, u.Email, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}
	return requireAffected(res)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ repository.UserRepository = (*UserRepository)(nil)
