package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// PasswordHasher abstracts one-way password hashing. Verify fails closed:
// a malformed stored hash reads as a mismatch.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) bool
}

// TokenIssuer abstracts session token creation (e.g. JWT). It keeps the
// use case framework-agnostic.
type TokenIssuer interface {
	Issue(subject uuid.UUID) (string, error)
}

// UseCase describes account registration, authentication and profile
// maintenance.
type UseCase interface {
	Register(ctx context.Context, n NewAccount) error
	Authenticate(ctx context.Context, email, password string) (User, string, error)
	Profile(ctx context.Context, id uuid.UUID) (User, error)
	FindByID(ctx context.Context, id uuid.UUID) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) error
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

// NewAccount carries already-validated registration fields.
type NewAccount struct {
	Email    string
	Username string
	Password string
	Country  string
}

// ProfilePatch carries already-validated optional profile changes. Nil
// means "leave unchanged".
type ProfilePatch struct {
	Email    *string
	Username *string
	Password *string
	Country  *string
}

type service struct {
	repo   Repository
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewService returns the default implementation of UseCase.
func NewService(repo Repository, hasher PasswordHasher, tokens TokenIssuer) UseCase {
	return &service{repo: repo, hasher: hasher, tokens: tokens}
}

func (s *service) Register(ctx context.Context, n NewAccount) error {
	hash, err := s.hasher.Hash(n.Password)
	if err != nil {
		return err
	}
	u := User{
		ID:           uuid.New(),
		Email:        n.Email,
		Username:     n.Username,
		PasswordHash: hash,
		RegisteredAt: time.Now().UTC().Unix(),
		Country:      n.Country,
	}
	// Duplicate email/username surfaces from the store's uniqueness
	// constraint as ErrEmailOrUsernameTaken.
	return s.repo.Create(ctx, u)
}

// Authenticate verifies the credentials and issues a session token. An
// unknown email and a wrong password are indistinguishable to the caller.
func (s *service) Authenticate(ctx context.Context, email, password string) (User, string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return User{}, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return User{}, "", err
	}
	return u, token, nil
}

func (s *service) Profile(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) FindByID(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) FindByUsername(ctx context.Context, username string) (User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Password != nil {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
	}
	if patch.Country != nil {
		u.Country = *patch.Country
	}
	return s.repo.Update(ctx, u)
}

// DeleteAccount requires a fresh password confirmation before removing the
// account and everything it owns.
func (s *service) DeleteAccount(ctx context.Context, id uuid.UUID, password string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return ErrInvalidCredentials
	}
	return s.repo.Delete(ctx, id)
}
