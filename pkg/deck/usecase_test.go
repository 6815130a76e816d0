package deck_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashdeck/backend/pkg/deck"
	"github.com/flashdeck/backend/pkg/policy"
)

type fakeStackRepo struct {
	stacks map[uuid.UUID]deck.Stack
}

func newFakeStackRepo() *fakeStackRepo {
	return &fakeStackRepo{stacks: map[uuid.UUID]deck.Stack{}}
}

func (r *fakeStackRepo) Create(_ context.Context, s deck.Stack) error {
	r.stacks[s.ID] = s
	return nil
}

func (r *fakeStackRepo) GetByID(_ context.Context, id uuid.UUID) (deck.Stack, error) {
	s, ok := r.stacks[id]
	if !ok {
		return deck.Stack{}, deck.ErrNotFound
	}
	return s, nil
}

func (r *fakeStackRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]deck.Stack, error) {
	var out []deck.Stack
	for _, s := range r.stacks {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStackRepo) Update(_ context.Context, s deck.Stack) error {
	if _, ok := r.stacks[s.ID]; !ok {
		return deck.ErrNotFound
	}
	r.stacks[s.ID] = s
	return nil
}

func (r *fakeStackRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.stacks[id]; !ok {
		return deck.ErrNotFound
	}
	delete(r.stacks, id)
	return nil
}

type fakeCardRepo struct {
	cards map[uuid.UUID]deck.Card
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{cards: map[uuid.UUID]deck.Card{}}
}

func (r *fakeCardRepo) Create(_ context.Context, c deck.Card) error {
	r.cards[c.ID] = c
	return nil
}

func (r *fakeCardRepo) GetByID(_ context.Context, id uuid.UUID) (deck.Card, error) {
	c, ok := r.cards[id]
	if !ok {
		return deck.Card{}, deck.ErrNotFound
	}
	return c, nil
}

func (r *fakeCardRepo) ListByStack(_ context.Context, stackID uuid.UUID) ([]deck.Card, error) {
	var out []deck.Card
	for _, c := range r.cards {
		if c.StackID == stackID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCardRepo) Update(_ context.Context, c deck.Card) error {
	if _, ok := r.cards[c.ID]; !ok {
		return deck.ErrNotFound
	}
	r.cards[c.ID] = c
	return nil
}

func (r *fakeCardRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.cards[id]; !ok {
		return deck.ErrNotFound
	}
	delete(r.cards, id)
	return nil
}

type fixture struct {
	svc    deck.UseCase
	stacks *fakeStackRepo
	cards  *fakeCardRepo
	owner  uuid.UUID
}

func newDeckFixture() *fixture {
	stacks := newFakeStackRepo()
	cards := newFakeCardRepo()
	return &fixture{
		svc:    deck.NewService(stacks, cards),
		stacks: stacks,
		cards:  cards,
		owner:  uuid.New(),
	}
}

func (f *fixture) addStack(visible bool) deck.Stack {
	s := deck.Stack{ID: uuid.New(), OwnerID: f.owner, Name: "Spanish", Visibility: visible, Tags: "lang"}
	f.stacks.stacks[s.ID] = s
	return s
}

func (f *fixture) addCard(stackID uuid.UUID) deck.Card {
	c := deck.Card{ID: uuid.New(), StackID: stackID, Frontside: "hola", Backside: "hello"}
	f.cards.cards[c.ID] = c
	return c
}

func TestStacksByOwner(t *testing.T) {
	f := newDeckFixture()
	public := f.addStack(true)
	f.addStack(false)

	t.Run("strangers see only public stacks", func(t *testing.T) {
		got, err := f.svc.StacksByOwner(context.Background(), policy.Anonymous, f.owner)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, public.ID, got[0].ID)
	})

	t.Run("the owner sees everything", func(t *testing.T) {
		got, err := f.svc.StacksByOwner(context.Background(), policy.Authenticated(f.owner), f.owner)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("unknown owner is an empty list", func(t *testing.T) {
		got, err := f.svc.StacksByOwner(context.Background(), policy.Anonymous, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestStackByID(t *testing.T) {
	f := newDeckFixture()
	private := f.addStack(false)

	t.Run("owner reads a private stack", func(t *testing.T) {
		got, err := f.svc.StackByID(context.Background(), policy.Authenticated(f.owner), private.ID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, private.ID, got[0].ID)
	})

	t.Run("hidden and missing stacks read the same", func(t *testing.T) {
		hidden, err := f.svc.StackByID(context.Background(), policy.Anonymous, private.ID)
		require.NoError(t, err)
		missing, err2 := f.svc.StackByID(context.Background(), policy.Anonymous, uuid.New())
		require.NoError(t, err2)
		assert.Equal(t, []deck.Stack{}, hidden)
		assert.Equal(t, []deck.Stack{}, missing)
	})
}

func TestCardsByStack(t *testing.T) {
	f := newDeckFixture()
	public := f.addStack(true)
	private := f.addStack(false)
	card := f.addCard(public.ID)

	t.Run("public stack lists its cards", func(t *testing.T) {
		got, err := f.svc.CardsByStack(context.Background(), policy.Anonymous, public.ID)
		require.NoError(t, err)
		assert.False(t, got.StackHidden)
		require.Len(t, got.Cards, 1)
		assert.Equal(t, card.ID, got.Cards[0].ID)
	})

	t.Run("hidden and missing stacks take the same shape", func(t *testing.T) {
		hidden, err := f.svc.CardsByStack(context.Background(), policy.Anonymous, private.ID)
		require.NoError(t, err)
		missing, err2 := f.svc.CardsByStack(context.Background(), policy.Anonymous, uuid.New())
		require.NoError(t, err2)
		assert.True(t, hidden.StackHidden)
		assert.True(t, missing.StackHidden)
	})
}

func TestCardByID(t *testing.T) {
	f := newDeckFixture()
	private := f.addStack(false)
	card := f.addCard(private.ID)

	t.Run("owner reads a card of a private stack", func(t *testing.T) {
		got, err := f.svc.CardByID(context.Background(), policy.Authenticated(f.owner), card.ID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, card.ID, got[0].ID)
	})

	t.Run("card visibility follows its stack", func(t *testing.T) {
		got, err := f.svc.CardByID(context.Background(), policy.Anonymous, card.ID)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("missing card is an empty list", func(t *testing.T) {
		got, err := f.svc.CardByID(context.Background(), policy.Anonymous, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestCreateCard(t *testing.T) {
	f := newDeckFixture()
	stack := f.addStack(true)

	t.Run("owner creates a card", func(t *testing.T) {
		err := f.svc.CreateCard(context.Background(), policy.Authenticated(f.owner), deck.NewCard{
			StackID: stack.ID, Frontside: "hola", Backside: "hello",
		})
		require.NoError(t, err)
		cards, err := f.cards.ListByStack(context.Background(), stack.ID)
		require.NoError(t, err)
		assert.Len(t, cards, 1)
	})

	t.Run("non-owner is unauthorized even on a public stack", func(t *testing.T) {
		err := f.svc.CreateCard(context.Background(), policy.Authenticated(uuid.New()), deck.NewCard{
			StackID: stack.ID, Frontside: "x", Backside: "y",
		})
		assert.ErrorIs(t, err, deck.ErrUnauthorized)
	})

	t.Run("missing stack reads as unauthorized", func(t *testing.T) {
		err := f.svc.CreateCard(context.Background(), policy.Authenticated(f.owner), deck.NewCard{
			StackID: uuid.New(), Frontside: "x", Backside: "y",
		})
		assert.ErrorIs(t, err, deck.ErrUnauthorized)
	})
}

func TestUpdateStack(t *testing.T) {
	f := newDeckFixture()
	stack := f.addStack(false)

	t.Run("owner patches selected fields", func(t *testing.T) {
		visibility := true
		tags := "a,b"
		err := f.svc.UpdateStack(context.Background(), policy.Authenticated(f.owner), stack.ID, deck.StackPatch{
			Visibility: &visibility,
			Tags:       &tags,
		})
		require.NoError(t, err)

		got, err := f.stacks.GetByID(context.Background(), stack.ID)
		require.NoError(t, err)
		assert.True(t, got.Visibility)
		assert.Equal(t, "a,b", got.Tags)
		assert.Equal(t, "Spanish", got.Name)
	})

	t.Run("non-owner and missing target are both unauthorized", func(t *testing.T) {
		name := "stolen"
		err := f.svc.UpdateStack(context.Background(), policy.Authenticated(uuid.New()), stack.ID, deck.StackPatch{Name: &name})
		assert.ErrorIs(t, err, deck.ErrUnauthorized)

		err = f.svc.UpdateStack(context.Background(), policy.Authenticated(f.owner), uuid.New(), deck.StackPatch{Name: &name})
		assert.ErrorIs(t, err, deck.ErrUnauthorized)
	})
}

func TestUpdateCard(t *testing.T) {
	f := newDeckFixture()
	stack := f.addStack(true)
	card := f.addCard(stack.ID)

	t.Run("owner patches one side", func(t *testing.T) {
		front := "buenos dias"
		err := f.svc.UpdateCard(context.Background(), policy.Authenticated(f.owner), card.ID, deck.CardPatch{Frontside: &front})
		require.NoError(t, err)

		got, err := f.cards.GetByID(context.Background(), card.ID)
		require.NoError(t, err)
		assert.Equal(t, "buenos dias", got.Frontside)
		assert.Equal(t, "hello", got.Backside)
	})

	t.Run("ownership is checked on the parent stack", func(t *testing.T) {
		front := "x"
		err := f.svc.UpdateCard(context.Background(), policy.Authenticated(uuid.New()), card.ID, deck.CardPatch{Frontside: &front})
		assert.ErrorIs(t, err, deck.ErrUnauthorized)
	})
}

func TestDeleteStack(t *testing.T) {
	f := newDeckFixture()
	stack := f.addStack(true)

	err := f.svc.DeleteStack(context.Background(), policy.Authenticated(uuid.New()), stack.ID)
	assert.ErrorIs(t, err, deck.ErrUnauthorized)

	err = f.svc.DeleteStack(context.Background(), policy.Authenticated(f.owner), stack.ID)
	require.NoError(t, err)

	_, err = f.stacks.GetByID(context.Background(), stack.ID)
	assert.ErrorIs(t, err, deck.ErrNotFound)
}

func TestDeleteCard(t *testing.T) {
	f := newDeckFixture()
	stack := f.addStack(true)
	card := f.addCard(stack.ID)

	err := f.svc.DeleteCard(context.Background(), policy.Anonymous, card.ID)
	assert.ErrorIs(t, err, deck.ErrUnauthorized)

	err = f.svc.DeleteCard(context.Background(), policy.Authenticated(f.owner), card.ID)
	require.NoError(t, err)

	err = f.svc.DeleteCard(context.Background(), policy.Authenticated(f.owner), card.ID)
	assert.ErrorIs(t, err, deck.ErrUnauthorized)
}
