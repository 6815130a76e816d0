package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/flashdeck/backend/api/http/presenter"
	"github.com/flashdeck/backend/api/http/request"
	"github.com/flashdeck/backend/pkg/account"
	"github.com/flashdeck/backend/pkg/apperr"
	"github.com/flashdeck/backend/pkg/security/session"
)

// AuthHandler serves the session lifecycle: authenticate, check, logout.
type AuthHandler struct {
	accounts account.UseCase
	sessions *session.Extractor
}

func NewAuthHandler(accounts account.UseCase, sessions *session.Extractor) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions}
}

// Handle dispatches the auth envelope.
// @Summary Session operations
// @Description Envelope endpoint: type is one of authenticate, check, logout.
// @Tags    auth
// @Accept  json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router  /auth [post]
func (h *AuthHandler) Handle(c *fiber.Ctx) error {
	body := c.Body()
	if err := request.RequireASCII(body); err != nil {
		return presenter.Fail(c, err)
	}
	env, err := request.Decode(body)
	if err != nil {
		return presenter.Fail(c, err)
	}

	switch env.Type {
	case request.TypeAuthenticate:
		return h.authenticate(c, env.Content)
	case request.TypeCheck:
		return h.check(c)
	case request.TypeLogout:
		return h.logout(c)
	default:
		return presenter.Fail(c, apperr.ErrParsingRequestContent)
	}
}

func (h *AuthHandler) authenticate(c *fiber.Ctx, content map[string]any) error {
	cmd, err := request.ParseAuthenticate(content)
	if err != nil {
		return presenter.Fail(c, err)
	}
	user, token, err := h.accounts.Authenticate(c.Context(), cmd.Email, cmd.Password)
	if err != nil {
		// Unknown email and wrong password produce the same code.
		if errors.Is(err, account.ErrInvalidCredentials) {
			return presenter.Fail(c, apperr.ErrInvalidEmailOrPw)
		}
		return presenter.Fail(c, err)
	}
	h.sessions.SetCookie(c, token)
	return presenter.OK(c, presenter.Content{UniqueID: user.ID.String()})
}

func (h *AuthHandler) check(c *fiber.Ctx) error {
	subject, err := h.sessions.Extract(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.OK(c, presenter.Content{UniqueID: subject.String()})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	h.sessions.ClearCookie(c)
	return presenter.Empty(c)
}
