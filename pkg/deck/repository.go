package deck

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is reported for every write by a non-owner, and
	// also when the target of a write does not exist. A caller who does
	// not own a resource learns nothing about whether it exists.
	ErrUnauthorized = errors.New("unauthorized")
)

// StackRepository abstracts stack persistence.
type StackRepository interface {
	Create(ctx context.Context, s Stack) error
	GetByID(ctx context.Context, id uuid.UUID) (Stack, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Stack, error)
	Update(ctx context.Context, s Stack) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CardRepository abstracts card persistence.
type CardRepository interface {
	Create(ctx context.Context, c Card) error
	GetByID(ctx context.Context, id uuid.UUID) (Card, error)
	ListByStack(ctx context.Context, stackID uuid.UUID) ([]Card, error)
	Update(ctx context.Context, c Card) error
	Delete(ctx context.Context, id uuid.UUID) error
}
