package session_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashdeck/backend/pkg/security/jwt"
	"github.com/flashdeck/backend/pkg/security/session"
)

func newFixture(t *testing.T) (*fiber.App, *session.Extractor, *jwt.Service) {
	t.Helper()
	tokens := jwt.NewService("test-secret", time.Hour)
	extractor := session.NewExtractor(tokens, "localhost")

	app := fiber.New()
	app.Get("/whoami", func(c *fiber.Ctx) error {
		subject, err := extractor.Extract(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).SendString("denied")
		}
		return c.SendString(subject.String())
	})
	app.Get("/whoami-optional", func(c *fiber.Ctx) error {
		subject, ok := extractor.ExtractOptional(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(subject.String())
	})
	app.Get("/login", func(c *fiber.Ctx) error {
		extractor.SetCookie(c, "sometoken")
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/logout", func(c *fiber.Ctx) error {
		extractor.ClearCookie(c)
		return c.SendStatus(fiber.StatusOK)
	})
	return app, extractor, tokens
}

func TestExtract(t *testing.T) {
	app, _, tokens := newFixture(t)
	subject := uuid.New()

	t.Run("missing cookie is denied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid cookie yields the subject", func(t *testing.T) {
		token, err := tokens.Issue(subject)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, subject.String(), string(body))
	})

	t.Run("invalid cookie is denied like a missing one", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "garbage"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("header and query credentials are ignored", func(t *testing.T) {
		token, err := tokens.Issue(subject)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami?jwt_v1="+token, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestExtractOptional(t *testing.T) {
	app, _, tokens := newFixture(t)

	t.Run("every failure collapses to anonymous", func(t *testing.T) {
		for _, cookie := range []string{"", "garbage"} {
			req := httptest.NewRequest(http.MethodGet, "/whoami-optional", nil)
			if cookie != "" {
				req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, "anonymous", string(body))
		}
	})

	t.Run("valid cookie yields the subject", func(t *testing.T) {
		subject := uuid.New()
		token, err := tokens.Issue(subject)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami-optional", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, subject.String(), string(body))
	})
}

func TestCookieScope(t *testing.T) {
	app, _, _ := newFixture(t)

	t.Run("set", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/login", nil))
		require.NoError(t, err)

		cookie := findCookie(t, resp, session.CookieName)
		assert.Equal(t, "sometoken", cookie.Value)
		assert.Equal(t, "/", cookie.Path)
		assert.True(t, cookie.HttpOnly)
	})

	t.Run("clear resets the same cookie to empty", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/logout", nil))
		require.NoError(t, err)

		cookie := findCookie(t, resp, session.CookieName)
		assert.Empty(t, cookie.Value)
		assert.Equal(t, "/", cookie.Path)
		assert.True(t, cookie.HttpOnly)
	})
}

func findCookie(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}
