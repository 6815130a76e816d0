// Package session binds the token service to the HTTP session cookie. The
// cookie is the only credential source consulted: no Authorization header,
// no query parameters.
package session

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/flashdeck/backend/pkg/apperr"
	"github.com/flashdeck/backend/pkg/security/jwt"
)

// CookieName is the fixed session cookie name; clients depend on it.
const CookieName = "jwt_v1"

// Extractor resolves the caller's identity from the session cookie.
type Extractor struct {
	tokens *jwt.Service
	domain string
}

func NewExtractor(tokens *jwt.Service, domain string) *Extractor {
	return &Extractor{tokens: tokens, domain: domain}
}

// Extract returns the authenticated subject id. A missing cookie and an
// invalid or expired token produce the same failure; the distinction stays
// internal to this function.
func (e *Extractor) Extract(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Cookies(CookieName)
	if raw == "" {
		return uuid.Nil, apperr.ErrCouldntAuthenticate
	}
	subject, err := e.tokens.Verify(raw)
	if err != nil {
		return uuid.Nil, apperr.Wrap(apperr.CodeCouldntAuthenticate, err)
	}
	return subject, nil
}

// ExtractOptional collapses every failure to an absent principal. Used by
// endpoints where authentication only widens visibility and never blocks
// the response.
func (e *Extractor) ExtractOptional(c *fiber.Ctx) (uuid.UUID, bool) {
	subject, err := e.Extract(c)
	if err != nil {
		return uuid.Nil, false
	}
	return subject, true
}

// SetCookie issues the session cookie for token with the fixed scope: path
// "/", HTTP-only, configured domain.
func (e *Extractor) SetCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Domain:   e.domain,
		Path:     "/",
		HTTPOnly: true,
	})
}

// ClearCookie logs the caller out by re-setting the cookie to an empty
// value with the same scope.
func (e *Extractor) ClearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Domain:   e.domain,
		Path:     "/",
		HTTPOnly: true,
	})
}
