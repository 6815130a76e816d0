package deck

import "github.com/google/uuid"

// Stack is a named collection of flashcards. OwnerID is immutable after
// creation; Visibility controls whether non-owners may read the stack and,
// transitively, its cards.
type Stack struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Name       string
	Visibility bool
	CardsCount int32
	Tags       string
}

// Card belongs to exactly one stack and carries no visibility flag of its
// own: it inherits the parent stack's.
type Card struct {
	ID        uuid.UUID
	StackID   uuid.UUID
	Frontside string
	Backside  string
}
