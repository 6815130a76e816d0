package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/flashdeck/backend/api/http/presenter"
	"github.com/flashdeck/backend/api/http/request"
	"github.com/flashdeck/backend/pkg/account"
	"github.com/flashdeck/backend/pkg/apperr"
	"github.com/flashdeck/backend/pkg/security/session"
)

// UsersHandler serves profile reads and account writes.
type UsersHandler struct {
	accounts account.UseCase
	sessions *session.Extractor
}

func NewUsersHandler(accounts account.UseCase, sessions *session.Extractor) *UsersHandler {
	return &UsersHandler{accounts: accounts, sessions: sessions}
}

// Handle dispatches the users envelope.
// @Summary Account operations
// @Description Envelope endpoint: type is one of get_my_profile, get_user, create_user, update_user, delete_user.
// @Tags    users
// @Accept  json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router  /users [post]
func (h *UsersHandler) Handle(c *fiber.Ctx) error {
	body := c.Body()
	if err := request.RequireUTF8(body); err != nil {
		return presenter.Fail(c, err)
	}
	env, err := request.Decode(body)
	if err != nil {
		return presenter.Fail(c, err)
	}

	switch env.Type {
	case request.TypeGetMyProfile:
		return h.myProfile(c)
	case request.TypeGetUser:
		return h.getUser(c, env.Content)
	case request.TypeCreateUser:
		return h.createUser(c, env.Content)
	case request.TypeUpdateUser:
		return h.updateUser(c, env.Content)
	case request.TypeDeleteUser:
		return h.deleteUser(c, env.Content)
	default:
		return presenter.Fail(c, apperr.ErrParsingRequestContent)
	}
}

func (h *UsersHandler) myProfile(c *fiber.Ctx) error {
	subject, err := h.sessions.Extract(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	user, err := h.accounts.Profile(c.Context(), subject)
	if err != nil {
		// A valid token whose account no longer exists is an
		// authentication failure, not a lookup miss.
		if errors.Is(err, account.ErrNotFound) {
			return presenter.Fail(c, apperr.ErrCouldntAuthenticate)
		}
		return presenter.Fail(c, err)
	}
	return presenter.OK(c, presenter.Content{User: userData(user, true)})
}

// getUser is a public lookup: by id first, then by username. Nothing found
// is an empty success, never an error.
func (h *UsersHandler) getUser(c *fiber.Ctx, content map[string]any) error {
	q, err := request.ParseUserQuery(content)
	if err != nil {
		return presenter.Fail(c, err)
	}
	if q.UniqueID != nil {
		if id, err := uuid.Parse(*q.UniqueID); err == nil {
			if user, err := h.accounts.FindByID(c.Context(), id); err == nil {
				return presenter.OK(c, presenter.Content{User: userData(user, false)})
			}
		}
	}
	if q.Username != nil {
		if user, err := h.accounts.FindByUsername(c.Context(), *q.Username); err == nil {
			return presenter.OK(c, presenter.Content{User: userData(user, false)})
		}
	}
	return presenter.Empty(c)
}

func (h *UsersHandler) createUser(c *fiber.Ctx, content map[string]any) error {
	cmd, err := request.ParseCreateUser(content)
	if err != nil {
		return presenter.Fail(c, err)
	}
	err = h.accounts.Register(c.Context(), account.NewAccount{
		Email:    cmd.Email,
		Username: cmd.Username,
		Password: cmd.Password,
		Country:  cmd.Country,
	})
	if err != nil {
		if errors.Is(err, account.ErrEmailOrUsernameTaken) {
			return presenter.Fail(c, apperr.ErrEmailOrUsernameUsed)
		}
		return presenter.Fail(c, err)
	}
	return presenter.Empty(c)
}

func (h *UsersHandler) updateUser(c *fiber.Ctx, content map[string]any) error {
	subject, err := h.sessions.Extract(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	cmd, err := request.ParseUpdateUser(content)
	if err != nil {
		return presenter.Fail(c, err)
	}
	err = h.accounts.UpdateProfile(c.Context(), subject, account.ProfilePatch{
		Email:    cmd.Email,
		Username: cmd.Username,
		Password: cmd.Password,
		Country:  cmd.Country,
	})
	if err != nil {
		if errors.Is(err, account.ErrEmailOrUsernameTaken) {
			return presenter.Fail(c, apperr.ErrEmailOrUsernameUsed)
		}
		return presenter.Fail(c, err)
	}
	return presenter.Empty(c)
}

func (h *UsersHandler) deleteUser(c *fiber.Ctx, content map[string]any) error {
	subject, err := h.sessions.Extract(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	cmd, err := request.ParseDeleteUser(content)
	if err != nil {
		return presenter.Fail(c, err)
	}
	if err := h.accounts.DeleteAccount(c.Context(), subject, cmd.Password); err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			return presenter.Fail(c, apperr.ErrCouldntAuthenticate)
		}
		return presenter.Fail(c, err)
	}
	return presenter.Empty(c)
}

// userData shapes a profile for the wire. The email is included only for
// the owner; for everyone else the field is absent, not null.
func userData(u account.User, owner bool) *presenter.UserData {
	data := &presenter.UserData{
		UniqueID:           u.ID.String(),
		Username:           u.Username,
		DateOfRegistration: u.RegisteredAt,
		Country:            u.Country,
	}
	if owner {
		email := u.Email
		data.Email = &email
	}
	return data
}
