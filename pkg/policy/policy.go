// Package policy decides what a caller may see or mutate, given the
// caller's identity and a resource's owner and visibility. It is pure: no
// I/O, no clock, no state.
package policy

import "github.com/google/uuid"

// Principal is the authenticated caller, or the explicit absence of one.
type Principal struct {
	ID      uuid.UUID
	Present bool
}

// Anonymous is the absent principal.
var Anonymous = Principal{}

// Authenticated wraps a verified subject id.
func Authenticated(id uuid.UUID) Principal {
	return Principal{ID: id, Present: true}
}

// Is reports whether the principal is present and equals id.
func (p Principal) Is(id uuid.UUID) bool {
	return p.Present && p.ID == id
}

// Decision is the outcome of an authorization check.
type Decision int

const (
	// AllowFull grants unrestricted access to the resource.
	AllowFull Decision = iota
	// AllowLimited grants access with owner-only fields withheld.
	AllowLimited
	// DenyNotFound hides the resource: the caller receives the same shape
	// as for a nonexistent resource, so existence never leaks.
	DenyNotFound
	// DenyUnauthorized reports an authorization failure outright.
	DenyUnauthorized
)

// ReadResource decides a read of a resource with the given owner and
// visibility flag. Public resources are readable by anyone; private ones
// only by their owner, and to everyone else they are indistinguishable
// from nonexistent.
func ReadResource(p Principal, owner uuid.UUID, visible bool) Decision {
	if visible {
		return AllowFull
	}
	if p.Is(owner) {
		return AllowFull
	}
	return DenyNotFound
}

// WriteResource decides a mutation of a resource with the given owner. The
// caller must already be authenticated; ownership is the sole basis for
// write access.
func WriteResource(p Principal, owner uuid.UUID) Decision {
	if p.Is(owner) {
		return AllowFull
	}
	return DenyUnauthorized
}

// ReadProfile decides how much of a user profile the caller may see. The
// owner gets the full record including email; everyone else gets the same
// record with the email absent.
func ReadProfile(p Principal, profileOwner uuid.UUID) Decision {
	if p.Is(profileOwner) {
		return AllowFull
	}
	return AllowLimited
}

// VisibleToPrincipal is the per-item predicate for list-by-owner queries:
// a row survives the filter when it is public or the caller owns it.
func VisibleToPrincipal(p Principal, owner uuid.UUID, visible bool) bool {
	return visible || p.Is(owner)
}
