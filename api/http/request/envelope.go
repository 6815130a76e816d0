// Package request decodes the {type, content} envelope every API endpoint
// accepts and turns loosely-typed content into fully-validated, typed
// commands. No handler acts on a field this package has not checked.
package request

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/flashdeck/backend/pkg/apperr"
)

// Envelope is the raw request shape: an operation name plus a flat mapping
// of optional fields.
type Envelope struct {
	Type    string
	Content map[string]any
}

type rawEnvelope struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}

// Decode parses the envelope. An unparsable payload or a non-object
// content maps to ParsingRequestContent; a missing content is an empty
// field set, since some operations require no fields at all.
func Decode(body []byte) (Envelope, error) {
	var raw rawEnvelope
	if err := json.Unmarshal(body, &raw); err != nil {
		return Envelope{}, apperr.Wrap(apperr.CodeParsingRequestContent, err)
	}
	if raw.Type == "" {
		return Envelope{}, apperr.ErrParsingRequestContent
	}
	env := Envelope{Type: raw.Type, Content: map[string]any{}}
	if len(raw.Content) > 0 && string(raw.Content) != "null" {
		if err := json.Unmarshal(raw.Content, &env.Content); err != nil {
			return Envelope{}, apperr.Wrap(apperr.CodeParsingRequestContent, err)
		}
	}
	return env, nil
}

// RequireASCII rejects payloads containing bytes outside 7-bit ASCII.
func RequireASCII(body []byte) error {
	for _, b := range body {
		if b > 127 {
			return apperr.ErrInvalidData
		}
	}
	return nil
}

// RequireUTF8 rejects payloads that are not valid UTF-8.
func RequireUTF8(body []byte) error {
	if !utf8.Valid(body) {
		return apperr.ErrInvalidData
	}
	return nil
}
