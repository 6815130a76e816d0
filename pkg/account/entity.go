package account

import "github.com/google/uuid"

// User is a registered account. PasswordHash is an opaque argon2id PHC
// string and never leaves the backend.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash string
	RegisteredAt int64 // unix seconds
	Country      string
}
