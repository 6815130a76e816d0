// Package presenter renders the uniform success/error envelope. Success is
// HTTP 200 {"status":"ok"} with optional content; every failure is HTTP 400
// {"status":"err"} carrying exactly one coded error.
package presenter

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/flashdeck/backend/pkg/apperr"
)

// Content is the optional success payload. Unset fields are omitted from
// the wire entirely, never rendered as null. Stacks and Cards are pointers
// because an empty list is a meaningful response (it stands in for hidden
// or nonexistent resources) and must serialize as [] rather than vanish.
type Content struct {
	Errors   []WireError  `json:"errors,omitempty"`
	User     *UserData    `json:"user,omitempty"`
	Stacks   *[]StackData `json:"stacks,omitempty"`
	Cards    *[]CardData  `json:"cards,omitempty"`
	UniqueID string       `json:"unique_id,omitempty"`
}

// WireError is one coded error in an error envelope.
type WireError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// UserData is the outward shape of a profile. Email is present only when
// the requester owns the profile.
type UserData struct {
	UniqueID           string  `json:"unique_id"`
	Email              *string `json:"email,omitempty"`
	Username           string  `json:"username"`
	DateOfRegistration int64   `json:"date_of_registration"`
	Country            string  `json:"country"`
}

// StackData is the outward shape of a stack.
type StackData struct {
	UniqueID   string `json:"unique_id"`
	Name       string `json:"name"`
	CardsCount int32  `json:"cards_count"`
	Tags       string `json:"tags"`
	Visibility bool   `json:"visibility"`
}

// CardData is the outward shape of a card.
type CardData struct {
	UniqueID  string `json:"unique_id"`
	Frontside string `json:"frontside"`
	Backside  string `json:"backside"`
}

type envelope struct {
	Status  string   `json:"status"`
	Content *Content `json:"content,omitempty"`
}

// OK writes a success envelope with the given content.
func OK(c *fiber.Ctx, content Content) error {
	return c.Status(fiber.StatusOK).JSON(envelope{Status: "ok", Content: &content})
}

// Empty writes a success envelope with no content at all.
func Empty(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(envelope{Status: "ok"})
}

// Fail classifies err into the taxonomy and writes the error envelope.
// Infrastructure failures are the only category logged server-side; caller
// misbehavior is not an operational event.
func Fail(c *fiber.Ctx, err error) error {
	code := apperr.CodeOf(err)
	if code == apperr.CodeInternal {
		slog.Error("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(fiber.StatusBadRequest).JSON(envelope{
		Status: "err",
		Content: &Content{
			Errors: []WireError{{Code: int(code), Message: code.Message()}},
		},
	})
}
