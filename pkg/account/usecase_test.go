package account_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashdeck/backend/pkg/account"
)

// fakeRepo is an in-memory account.Repository with the same uniqueness
// behavior as the real store.
type fakeRepo struct {
	users map[uuid.UUID]account.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[uuid.UUID]account.User{}}
}

func (r *fakeRepo) Create(_ context.Context, u account.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return account.ErrEmailOrUsernameTaken
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (account.User, error) {
	u, ok := r.users[id]
	if !ok {
		return account.User{}, account.ErrNotFound
	}
	return u, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (account.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return account.User{}, account.ErrNotFound
}

func (r *fakeRepo) GetByUsername(_ context.Context, username string) (account.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return account.User{}, account.ErrNotFound
}

func (r *fakeRepo) Update(_ context.Context, u account.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return account.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return account.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// fakeHasher is reversible on purpose so tests can assert what was stored.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Verify(password, encodedHash string) bool {
	return encodedHash == "hashed:"+password
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(subject uuid.UUID) (string, error) {
	return "token-for-" + subject.String(), nil
}

func newService(repo *fakeRepo) account.UseCase {
	return account.NewService(repo, fakeHasher{}, fakeIssuer{})
}

func register(t *testing.T, svc account.UseCase, email, username string) {
	t.Helper()
	err := svc.Register(context.Background(), account.NewAccount{
		Email:    email,
		Username: username,
		Password: "Abcdef1!",
		Country:  "USA",
	})
	require.NoError(t, err)
}

func TestRegister(t *testing.T) {
	t.Run("stores a hash, never the password", func(t *testing.T) {
		repo := newFakeRepo()
		register(t, newService(repo), "a@b.com", "tester1")

		u, err := repo.GetByEmail(context.Background(), "a@b.com")
		require.NoError(t, err)
		assert.Equal(t, "hashed:Abcdef1!", u.PasswordHash)
		assert.NotEqual(t, uuid.Nil, u.ID)
		assert.NotZero(t, u.RegisteredAt)
		assert.Equal(t, "USA", u.Country)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newService(repo)
		register(t, svc, "a@b.com", "tester1")

		err := svc.Register(context.Background(), account.NewAccount{
			Email: "a@b.com", Username: "other12", Password: "Abcdef1!", Country: "USA",
		})
		assert.ErrorIs(t, err, account.ErrEmailOrUsernameTaken)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newService(repo)
		register(t, svc, "a@b.com", "tester1")

		err := svc.Register(context.Background(), account.NewAccount{
			Email: "c@d.com", Username: "tester1", Password: "Abcdef1!", Country: "USA",
		})
		assert.ErrorIs(t, err, account.ErrEmailOrUsernameTaken)
	})
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	register(t, svc, "a@b.com", "tester1")

	t.Run("valid credentials yield the user and a token", func(t *testing.T) {
		u, token, err := svc.Authenticate(context.Background(), "a@b.com", "Abcdef1!")
		require.NoError(t, err)
		assert.Equal(t, "tester1", u.Username)
		assert.Equal(t, "token-for-"+u.ID.String(), token)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		_, _, errUnknown := svc.Authenticate(context.Background(), "nobody@b.com", "Abcdef1!")
		_, _, errWrongPw := svc.Authenticate(context.Background(), "a@b.com", "Wrongpw1!")
		assert.ErrorIs(t, errUnknown, account.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrongPw, account.ErrInvalidCredentials)
		assert.Equal(t, errUnknown, errWrongPw)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("patches only the provided fields", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newService(repo)
		register(t, svc, "a@b.com", "tester1")
		u, err := repo.GetByEmail(context.Background(), "a@b.com")
		require.NoError(t, err)

		country := "POL"
		err = svc.UpdateProfile(context.Background(), u.ID, account.ProfilePatch{Country: &country})
		require.NoError(t, err)

		updated, err := repo.GetByID(context.Background(), u.ID)
		require.NoError(t, err)
		assert.Equal(t, "POL", updated.Country)
		assert.Equal(t, "a@b.com", updated.Email)
		assert.Equal(t, "tester1", updated.Username)
	})

	t.Run("password change rehashes", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newService(repo)
		register(t, svc, "a@b.com", "tester1")
		u, err := repo.GetByEmail(context.Background(), "a@b.com")
		require.NoError(t, err)

		newPassword := "Newpass1!"
		err = svc.UpdateProfile(context.Background(), u.ID, account.ProfilePatch{Password: &newPassword})
		require.NoError(t, err)

		_, _, err = svc.Authenticate(context.Background(), "a@b.com", "Newpass1!")
		assert.NoError(t, err)
		_, _, err = svc.Authenticate(context.Background(), "a@b.com", "Abcdef1!")
		assert.ErrorIs(t, err, account.ErrInvalidCredentials)
	})

	t.Run("unknown account", func(t *testing.T) {
		svc := newService(newFakeRepo())
		err := svc.UpdateProfile(context.Background(), uuid.New(), account.ProfilePatch{})
		assert.ErrorIs(t, err, account.ErrNotFound)
	})
}

func TestDeleteAccount(t *testing.T) {
	t.Run("requires password confirmation", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newService(repo)
		register(t, svc, "a@b.com", "tester1")
		u, err := repo.GetByEmail(context.Background(), "a@b.com")
		require.NoError(t, err)

		err = svc.DeleteAccount(context.Background(), u.ID, "Wrongpw1!")
		assert.ErrorIs(t, err, account.ErrInvalidCredentials)

		err = svc.DeleteAccount(context.Background(), u.ID, "Abcdef1!")
		require.NoError(t, err)

		_, err = repo.GetByID(context.Background(), u.ID)
		assert.ErrorIs(t, err, account.ErrNotFound)
	})
}
