package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/flashdeck/backend/api/http/presenter"
	"github.com/flashdeck/backend/api/http/request"
	"github.com/flashdeck/backend/pkg/apperr"
	"github.com/flashdeck/backend/pkg/deck"
	"github.com/flashdeck/backend/pkg/policy"
	"github.com/flashdeck/backend/pkg/security/session"
)

// CardsHandler serves stack and card reads and writes.
type CardsHandler struct {
	decks    deck.UseCase
	sessions *session.Extractor
}

func NewCardsHandler(decks deck.UseCase, sessions *session.Extractor) *CardsHandler {
	return &CardsHandler{decks: decks, sessions: sessions}
}

// Handle dispatches the cards envelope.
// @Summary Stack and card operations
// @Description Envelope endpoint: type selects one of the get/create/update/delete stack and card operations.
// @Tags    cards
// @Accept  json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router  /cards [post]
func (h *CardsHandler) Handle(c *fiber.Ctx) error {
	body := c.Body()
	if err := request.RequireUTF8(body); err != nil {
		return presenter.Fail(c, err)
	}
	env, err := request.Decode(body)
	if err != nil {
		return presenter.Fail(c, err)
	}

	switch env.Type {
	case request.TypeGetStacksByOwnerID:
		return h.stacksByOwner(c, env.Content)
	case request.TypeGetStackByID:
		return h.stackByID(c, env.Content)
	case request.TypeGetCardsByStackID:
		return h.cardsByStack(c, env.Content)
	case request.TypeGetCardByID:
		return h.cardByID(c, env.Content)
	case request.TypeCreateStack:
		return h.createStack(c, env.Content)
	case request.TypeCreateCard:
		return h.createCard(c, env.Content)
	case request.TypeUpdateStack:
		return h.updateStack(c, env.Content)
	case request.TypeUpdateCard:
		return h.updateCard(c, env.Content)
	case request.TypeDeleteStack:
		return h.deleteStack(c, env.Content)
	case request.TypeDeleteCard:
		return h.deleteCard(c, env.Content)
	default:
		return presenter.Fail(c, apperr.ErrParsingRequestContent)
	}
}

// principal resolves the optional identity for read endpoints, where
// authentication only widens visibility.
func (h *CardsHandler) principal(c *fiber.Ctx) policy.Principal {
	if subject, ok := h.sessions.ExtractOptional(c); ok {
		return policy.Authenticated(subject)
	}
	return policy.Anonymous
}

// --- reads

func (h *CardsHandler) stacksByOwner(c *fiber.Ctx, content map[string]any) error {
	cmd, err := request.ParseByID(content)
	if err != nil {
		return presenter.Fail(c, err)
	}
	ownerID, err := uuid.Parse(cmd.UniqueID)
	if err != nil {
		// An unknown owner has no stacks.
		return presenter.OK(c, presenter.Content{Stacks: stackData(nil)})
	}
	stacks, err := h.decks.StacksByOwner(c.Context(), h.principal(c), ownerID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.OK(c, presenter.Content{Stacks: stackData(stacks)})
}

func (h *CardsHandler) stackByID(c *fiber.Ctx, content map[string]any) error {
	cmd, err := request.ParseByID(content)
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuid.Parse(cmd.UniqueID)
	if err != nil {
		return presenter.OK(c, presenter.Content{Stacks: stackData(nil)})
	}
	stacks, err := h.decks.StackByID(c.Context(), h.principal(c), id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.OK(c, presenter.Content{Stacks: stackData(stacks)})
}

func (h *CardsHandler) cardsByStack(c *fiber.Ctx, content map[string]any) error {
	cmd, err := request.ParseByID(content)
	if err != nil {
		return presenter.Fail(c, err)
	}
	stackID, err := uuid.Parse(cmd.UniqueID)
	if err != nil {
		return presenter.OK(c, presenter.Content{Stacks: stackData(nil)})
	}
	listing, err := h.decks.CardsByStack(c.Context(), h.principal(c), stackID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	if listing.StackHidden {
		// Hidden and nonexistent stacks answer with the same
		// empty-stacks shape, not an empty card list.
		return presenter.OK(c, presenter.Content{Stacks: stackData(nil)})
	}
	return presenter.OK(c, presenter.Content{Cards: cardData(listing.Cards)})
}

func (h *CardsHandler) cardByID(c *fiber.Ctx, content map[string]any) error {
	cmd, err := request.ParseByID(content)
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuid.Parse(cmd.UniqueID)
	if err != nil {
		return presenter.OK(c, presenter.Content{Cards: cardData(nil)})
	}
	cards, err := h.decks.CardByID(c.Context(), h.principal(c), id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.OK(c, presenter.Content{Cards: cardData(cards)})
}

// --- writes

func (h *CardsHandler) createStack(c *fiber.Ctx, content map[string]any) error {
	subject, err := h.sessions.Extract(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	cmd, err := request.ParseCreateStack(content)
	if err != nil {
		return presenter.Fail(c, err)
	}
	err = h.decks.CreateStack(c.Context(), subject, deck.NewStack{
		Name:       cmd.Name,
		Tags:       cmd.Tags,
		Visibility: cmd.Visibility,
	})
	if err != nil {
		return failDeck(c, err)
	}
	return presenter.Empty(c)
}

func (h *CardsHandler) createCard(c *fiber.Ctx, content map[string]any) error {
	subject, err := h.sessions.Extract(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	cmd, err := request.ParseCreateCard(content)
	if err != nil {
		return presenter.Fail(c, err)
	}
	stackID, err := uuid.Parse(cmd.StackID)
	if err != nil {
		// A stack that cannot exist is treated like one the caller
		// does not own.
		return presenter.Fail(c, apperr.ErrUnauthorized)
	}
	err = h.decks.CreateCard(c.Context(), policy.Authenticated(subject), deck.NewCard{
		StackID:   stackID,
		Frontside: cmd.Frontside,
		Backside:  cmd.Backside,
	})
	if err != nil {
		return failDeck(c, err)
	}
	return presenter.Empty(c)
}

func (h *CardsHandler) updateStack(c *fiber.Ctx, content map[string]any) error {
	subject, err := h.sessions.Extract(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	cmd, err := request.ParseUpdateStack(content)
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuid.Parse(cmd.UniqueID)
	if err != nil {
		return presenter.Fail(c, apperr.ErrUnauthorized)
	}
	err = h.decks.UpdateStack(c.Context(), policy.Authenticated(subject), id, deck.StackPatch{
		Name:       cmd.Name,
		Tags:       cmd.Tags,
		Visibility: cmd.Visibility,
	})
	if err != nil {
		return failDeck(c, err)
	}
	return presenter.Empty(c)
}

func (h *CardsHandler) updateCard(c *fiber.Ctx, content map[string]any) error {
	subject, err := h.sessions.Extract(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	cmd, err := request.ParseUpdateCard(content)
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuid.Parse(cmd.UniqueID)
	if err != nil {
		return presenter.Fail(c, apperr.ErrUnauthorized)
	}
	err = h.decks.UpdateCard(c.Context(), policy.Authenticated(subject), id, deck.CardPatch{
		Frontside: cmd.Frontside,
		Backside:  cmd.Backside,
	})
	if err != nil {
		return failDeck(c, err)
	}
	return presenter.Empty(c)
}

func (h *CardsHandler) deleteStack(c *fiber.Ctx, content map[string]any) error {
	subject, err := h.sessions.Extract(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	cmd, err := request.ParseByID(content)
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuid.Parse(cmd.UniqueID)
	if err != nil {
		return presenter.Fail(c, apperr.ErrUnauthorized)
	}
	if err := h.decks.DeleteStack(c.Context(), policy.Authenticated(subject), id); err != nil {
		return failDeck(c, err)
	}
	return presenter.Empty(c)
}

func (h *CardsHandler) deleteCard(c *fiber.Ctx, content map[string]any) error {
	subject, err := h.sessions.Extract(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	cmd, err := request.ParseByID(content)
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuid.Parse(cmd.UniqueID)
	if err != nil {
		return presenter.Fail(c, apperr.ErrUnauthorized)
	}
	if err := h.decks.DeleteCard(c.Context(), policy.Authenticated(subject), id); err != nil {
		return failDeck(c, err)
	}
	return presenter.Empty(c)
}

func failDeck(c *fiber.Ctx, err error) error {
	if errors.Is(err, deck.ErrUnauthorized) {
		return presenter.Fail(c, apperr.ErrUnauthorized)
	}
	return presenter.Fail(c, err)
}

func stackData(stacks []deck.Stack) *[]presenter.StackData {
	out := make([]presenter.StackData, 0, len(stacks))
	for _, st := range stacks {
		out = append(out, presenter.StackData{
			UniqueID:   st.ID.String(),
			Name:       st.Name,
			CardsCount: st.CardsCount,
			Tags:       st.Tags,
			Visibility: st.Visibility,
		})
	}
	return &out
}

func cardData(cards []deck.Card) *[]presenter.CardData {
	out := make([]presenter.CardData, 0, len(cards))
	for _, card := range cards {
		out = append(out, presenter.CardData{
			UniqueID:  card.ID.String(),
			Frontside: card.Frontside,
			Backside:  card.Backside,
		})
	}
	return &out
}
