package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flashdeck/backend/pkg/account"
)

// UserRepository implements account.Repository backed by PostgreSQL (pgx).
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) (*UserRepository, error) {
	repo := &UserRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *UserRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			registered_at BIGINT NOT NULL,
			country TEXT NOT NULL
		);
	`)
	return err
}

func (r *UserRepository) Create(ctx context.Context, u account.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, username, password_hash, registered_at, country)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, u.ID, strings.ToLower(u.Email), u.Username, u.PasswordHash, u.RegisteredAt, u.Country)
	return mapUniqueViolation(err)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (account.User, error) {
	return r.getOne(ctx, `
		SELECT id, email, username, password_hash, registered_at, country
		FROM users WHERE id = $1
	`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (account.User, error) {
	return r.getOne(ctx, `
		SELECT id, email, username, password_hash, registered_at, country
		FROM users WHERE email = $1
	`, strings.ToLower(email))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (account.User, error) {
	return r.getOne(ctx, `
		SELECT id, email, username, password_hash, registered_at, country
		FROM users WHERE username = $1
	`, username)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (account.User, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	var u account.User
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.RegisteredAt, &u.Country); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.User{}, account.ErrNotFound
		}
		return account.User{}, err
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u account.User) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $2, username = $3, password_hash = $4, country = $5
		WHERE id = $1
	`, u.ID, strings.ToLower(u.Email), u.Username, u.PasswordHash, u.Country)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return account.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return account.ErrNotFound
	}
	return nil
}

// mapUniqueViolation surfaces the store's uniqueness constraint as the
// domain conflict error. There is no optimistic pre-check; the constraint
// is the source of truth.
func mapUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		return account.ErrEmailOrUsernameTaken
	}
	return err
}
