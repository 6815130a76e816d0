package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flashdeck/backend/pkg/deck"
)

// StackRepository implements deck.StackRepository backed by PostgreSQL
// (pgx). The cards_count column does not exist; it is computed per query
// from the cards table.
type StackRepository struct {
	pool *pgxpool.Pool
}

func NewStackRepository(pool *pgxpool.Pool) (*StackRepository, error) {
	repo := &StackRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *StackRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS stacks (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			visibility BOOLEAN NOT NULL,
			tags TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS stacks_owner_idx ON stacks(owner_id);
	`)
	return err
}

const stackSelect = `
	SELECT s.id, s.owner_id, s.name, s.visibility, s.tags,
	       (SELECT COUNT(*) FROM cards c WHERE c.stack_id = s.id) AS cards_count
	FROM stacks s
`

func (r *StackRepository) Create(ctx context.Context, s deck.Stack) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO stacks (id, owner_id, name, visibility, tags)
		VALUES ($1, $2, $3, $4, $5)
	`, s.ID, s.OwnerID, s.Name, s.Visibility, s.Tags)
	return err
}

func (r *StackRepository) GetByID(ctx context.Context, id uuid.UUID) (deck.Stack, error) {
	row := r.pool.QueryRow(ctx, stackSelect+`WHERE s.id = $1`, id)
	s, err := scanStack(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return deck.Stack{}, deck.ErrNotFound
		}
		return deck.Stack{}, err
	}
	return s, nil
}

func (r *StackRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]deck.Stack, error) {
	rows, err := r.pool.Query(ctx, stackSelect+`WHERE s.owner_id = $1 ORDER BY s.name`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stacks []deck.Stack
	for rows.Next() {
		s, err := scanStack(rows)
		if err != nil {
			return nil, err
		}
		stacks = append(stacks, s)
	}
	return stacks, rows.Err()
}

func (r *StackRepository) Update(ctx context.Context, s deck.Stack) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE stacks SET name = $2, visibility = $3, tags = $4
		WHERE id = $1
	`, s.ID, s.Name, s.Visibility, s.Tags)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return deck.ErrNotFound
	}
	return nil
}

func (r *StackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM stacks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return deck.ErrNotFound
	}
	return nil
}

func scanStack(row pgx.Row) (deck.Stack, error) {
	var s deck.Stack
	var count int64
	if err := row.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Visibility, &s.Tags, &count); err != nil {
		return deck.Stack{}, err
	}
	s.CardsCount = int32(count)
	return s, nil
}
