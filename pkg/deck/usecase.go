package deck

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/flashdeck/backend/pkg/policy"
)

// UseCase describes stack and card reads and mutations. Every read applies
// the visibility policy; every write requires ownership.
type UseCase interface {
	StacksByOwner(ctx context.Context, p policy.Principal, ownerID uuid.UUID) ([]Stack, error)
	StackByID(ctx context.Context, p policy.Principal, id uuid.UUID) ([]Stack, error)
	CardsByStack(ctx context.Context, p policy.Principal, stackID uuid.UUID) (CardListing, error)
	CardByID(ctx context.Context, p policy.Principal, id uuid.UUID) ([]Card, error)

	CreateStack(ctx context.Context, owner uuid.UUID, n NewStack) error
	CreateCard(ctx context.Context, p policy.Principal, n NewCard) error
	UpdateStack(ctx context.Context, p policy.Principal, id uuid.UUID, patch StackPatch) error
	UpdateCard(ctx context.Context, p policy.Principal, id uuid.UUID, patch CardPatch) error
	DeleteStack(ctx context.Context, p policy.Principal, id uuid.UUID) error
	DeleteCard(ctx context.Context, p policy.Principal, id uuid.UUID) error
}

// CardListing is the result of reading a stack's cards. When the stack is
// missing or hidden from the caller, StackHidden is set and the response
// takes the empty-stacks shape instead of an empty card list; the two cases
// are indistinguishable on the wire.
type CardListing struct {
	StackHidden bool
	Cards       []Card
}

// NewStack carries already-validated stack creation fields (tags are
// normalized).
type NewStack struct {
	Name       string
	Tags       string
	Visibility bool
}

// NewCard carries already-validated card creation fields.
type NewCard struct {
	StackID   uuid.UUID
	Frontside string
	Backside  string
}

// StackPatch carries already-validated optional stack changes.
type StackPatch struct {
	Name       *string
	Tags       *string
	Visibility *bool
}

// CardPatch carries already-validated optional card changes.
type CardPatch struct {
	Frontside *string
	Backside  *string
}

type service struct {
	stacks StackRepository
	cards  CardRepository
}

// NewService returns the default implementation of UseCase.
func NewService(stacks StackRepository, cards CardRepository) UseCase {
	return &service{stacks: stacks, cards: cards}
}

func (s *service) StacksByOwner(ctx context.Context, p policy.Principal, ownerID uuid.UUID) ([]Stack, error) {
	all, err := s.stacks.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	visible := make([]Stack, 0, len(all))
	for _, st := range all {
		if policy.VisibleToPrincipal(p, st.OwnerID, st.Visibility) {
			visible = append(visible, st)
		}
	}
	return visible, nil
}

func (s *service) StackByID(ctx context.Context, p policy.Principal, id uuid.UUID) ([]Stack, error) {
	st, err := s.stacks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []Stack{}, nil
		}
		return nil, err
	}
	if policy.ReadResource(p, st.OwnerID, st.Visibility) != policy.AllowFull {
		return []Stack{}, nil
	}
	return []Stack{st}, nil
}

func (s *service) CardsByStack(ctx context.Context, p policy.Principal, stackID uuid.UUID) (CardListing, error) {
	st, err := s.stacks.GetByID(ctx, stackID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return CardListing{StackHidden: true}, nil
		}
		return CardListing{}, err
	}
	if policy.ReadResource(p, st.OwnerID, st.Visibility) != policy.AllowFull {
		return CardListing{StackHidden: true}, nil
	}
	cards, err := s.cards.ListByStack(ctx, stackID)
	if err != nil {
		return CardListing{}, err
	}
	return CardListing{Cards: cards}, nil
}

func (s *service) CardByID(ctx context.Context, p policy.Principal, id uuid.UUID) ([]Card, error) {
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []Card{}, nil
		}
		return nil, err
	}
	st, err := s.stacks.GetByID(ctx, card.StackID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []Card{}, nil
		}
		return nil, err
	}
	if policy.ReadResource(p, st.OwnerID, st.Visibility) != policy.AllowFull {
		return []Card{}, nil
	}
	return []Card{card}, nil
}

func (s *service) CreateStack(ctx context.Context, owner uuid.UUID, n NewStack) error {
	return s.stacks.Create(ctx, Stack{
		ID:         uuid.New(),
		OwnerID:    owner,
		Name:       n.Name,
		Visibility: n.Visibility,
		Tags:       n.Tags,
	})
}

func (s *service) CreateCard(ctx context.Context, p policy.Principal, n NewCard) error {
	if err := s.requireStackOwner(ctx, p, n.StackID); err != nil {
		return err
	}
	return s.cards.Create(ctx, Card{
		ID:        uuid.New(),
		StackID:   n.StackID,
		Frontside: n.Frontside,
		Backside:  n.Backside,
	})
}

func (s *service) UpdateStack(ctx context.Context, p policy.Principal, id uuid.UUID, patch StackPatch) error {
	st, err := s.stacks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrUnauthorized
		}
		return err
	}
	if policy.WriteResource(p, st.OwnerID) != policy.AllowFull {
		return ErrUnauthorized
	}
	if patch.Name != nil {
		st.Name = *patch.Name
	}
	if patch.Tags != nil {
		st.Tags = *patch.Tags
	}
	if patch.Visibility != nil {
		st.Visibility = *patch.Visibility
	}
	return s.stacks.Update(ctx, st)
}

func (s *service) UpdateCard(ctx context.Context, p policy.Principal, id uuid.UUID, patch CardPatch) error {
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrUnauthorized
		}
		return err
	}
	if err := s.requireStackOwner(ctx, p, card.StackID); err != nil {
		return err
	}
	if patch.Frontside != nil {
		card.Frontside = *patch.Frontside
	}
	if patch.Backside != nil {
		card.Backside = *patch.Backside
	}
	return s.cards.Update(ctx, card)
}

func (s *service) DeleteStack(ctx context.Context, p policy.Principal, id uuid.UUID) error {
	st, err := s.stacks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrUnauthorized
		}
		return err
	}
	if policy.WriteResource(p, st.OwnerID) != policy.AllowFull {
		return ErrUnauthorized
	}
	return s.stacks.Delete(ctx, id)
}

func (s *service) DeleteCard(ctx context.Context, p policy.Principal, id uuid.UUID) error {
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrUnauthorized
		}
		return err
	}
	if err := s.requireStackOwner(ctx, p, card.StackID); err != nil {
		return err
	}
	return s.cards.Delete(ctx, id)
}

// requireStackOwner gates card writes on ownership of the parent stack. A
// missing stack is reported as unauthorized, not as not-found, so a caller
// probing foreign ids learns nothing.
func (s *service) requireStackOwner(ctx context.Context, p policy.Principal, stackID uuid.UUID) error {
	st, err := s.stacks.GetByID(ctx, stackID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrUnauthorized
		}
		return err
	}
	if policy.WriteResource(p, st.OwnerID) != policy.AllowFull {
		return ErrUnauthorized
	}
	return nil
}
