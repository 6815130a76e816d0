package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flashdeck/backend/pkg/deck"
)

// CardRepository implements deck.CardRepository backed by PostgreSQL (pgx).
type CardRepository struct {
	pool *pgxpool.Pool
}

func NewCardRepository(pool *pgxpool.Pool) (*CardRepository, error) {
	repo := &CardRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *CardRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS cards (
			id UUID PRIMARY KEY,
			stack_id UUID NOT NULL REFERENCES stacks(id) ON DELETE CASCADE,
			frontside TEXT NOT NULL,
			backside TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS cards_stack_idx ON cards(stack_id);
	`)
	return err
}

func (r *CardRepository) Create(ctx context.Context, c deck.Card) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO cards (id, stack_id, frontside, backside)
		VALUES ($1, $2, $3, $4)
	`, c.ID, c.StackID, c.Frontside, c.Backside)
	return err
}

func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (deck.Card, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, stack_id, frontside, backside FROM cards WHERE id = $1
	`, id)
	var c deck.Card
	if err := row.Scan(&c.ID, &c.StackID, &c.Frontside, &c.Backside); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return deck.Card{}, deck.ErrNotFound
		}
		return deck.Card{}, err
	}
	return c, nil
}

func (r *CardRepository) ListByStack(ctx context.Context, stackID uuid.UUID) ([]deck.Card, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, stack_id, frontside, backside FROM cards WHERE stack_id = $1
	`, stackID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []deck.Card
	for rows.Next() {
		var c deck.Card
		if err := rows.Scan(&c.ID, &c.StackID, &c.Frontside, &c.Backside); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *CardRepository) Update(ctx context.Context, c deck.Card) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE cards SET frontside = $2, backside = $3 WHERE id = $1
	`, c.ID, c.Frontside, c.Backside)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return deck.ErrNotFound
	}
	return nil
}

func (r *CardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return deck.ErrNotFound
	}
	return nil
}
