// Package validate holds the pure format validators applied to request
// fields before a command is built. Every function is total over its string
// input and has no side effects.
package validate

import (
	"regexp"
	"strings"
	"unicode"
)

// RFC-5322-lite: local@domain.tld with at least one dot in the domain.
var emailRe = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

const passwordPunctuation = `!"#$%&'()*+,-./:;<=>?@[\]^_` + "`" + `{|}~`

// Email reports whether s looks like a deliverable address.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Password enforces the account password policy: 7-50 characters, at least
// one lowercase, one uppercase and one punctuation character, and no
// whitespace anywhere.
func Password(s string) bool {
	runes := []rune(s)
	if len(runes) < 7 || len(runes) > 50 {
		return false
	}
	var lower, upper, punct bool
	for _, r := range runes {
		switch {
		case unicode.IsSpace(r):
			return false
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case strings.ContainsRune(passwordPunctuation, r):
			punct = true
		}
	}
	return lower && upper && punct
}

// Username enforces 5-25 characters, at least one alphabetic character and
// no whitespace.
func Username(s string) bool {
	runes := []rune(s)
	if len(runes) < 5 || len(runes) > 25 {
		return false
	}
	var alpha bool
	for _, r := range runes {
		if unicode.IsSpace(r) {
			return false
		}
		if unicode.IsLetter(r) {
			alpha = true
		}
	}
	return alpha
}

// CountryCode reports whether s is a known ISO-3166 alpha-3 code.
func CountryCode(s string) bool {
	_, ok := countryCodes[s]
	return ok
}

// StackName enforces 3-25 characters.
func StackName(s string) bool {
	n := len([]rune(s))
	return n >= 3 && n <= 25
}

// CardSide bounds a card face at 255 bytes.
func CardSide(s string) bool {
	return len(s) <= 255
}

const (
	maxTagLen = 20
	maxTags   = 10
)

// NormalizeTags trims whitespace around every comma-separated segment and
// rejoins them with bare commas: "a, b ,c" becomes "a,b,c".
func NormalizeTags(s string) string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ",")
}

// Tags validates an already-normalized tag string: at most 10 tags, each at
// most 20 characters.
func Tags(s string) bool {
	parts := strings.Split(s, ",")
	if len(parts) > maxTags {
		return false
	}
	for _, p := range parts {
		if len([]rune(p)) > maxTagLen {
			return false
		}
	}
	return true
}
