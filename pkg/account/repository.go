package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors used by repository/use cases.
var (
	ErrNotFound = errors.New("account not found")
	// ErrEmailOrUsernameTaken is raised from the store's uniqueness
	// constraints; there is no optimistic pre-check.
	ErrEmailOrUsernameTaken = errors.New("email or username already in use")
	// ErrInvalidCredentials deliberately covers both unknown email and
	// wrong password, and also a failed delete confirmation.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Repository abstracts account persistence from the domain layer.
type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
