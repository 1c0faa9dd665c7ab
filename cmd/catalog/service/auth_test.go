package service

import (
	"context"
	"testing"

	"github.com/droidbay/catalog/cmd/catalog/repository"
	"github.com/droidbay/catalog/common/docstore"
	"github.com/droidbay/catalog/common/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()

	log := logger.New("error", "text")
	store, err := docstore.NewFileStore(t.TempDir(), log)
	require.NoError(t, err)

	users, err := repository.NewUserRepository(context.Background(), store)
	require.NoError(t, err)

	return NewAuthService(users, log)
}

func TestRegister_AssignsSequentialIDsAndDefaultRole(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	alice, err := auth.Register(ctx, "alice", "secret1", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, alice.ID)
	assert.Equal(t, "user", alice.Role)
	assert.NotEqual(t, "secret1", alice.PasswordHash)

	bob, err := auth.Register(ctx, "bob", "secret2", "")
	require.NoError(t, err)
	assert.Equal(t, 2, bob.ID)
}

func TestRegister_MissingFieldsFailValidation(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "", "secret", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = auth.Register(ctx, "carol", "", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegister_DuplicateUsernameConflicts(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "alice", "p1", "")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "alice", "p2", "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogin_VerifiesCredentials(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "alice", "secret", "alice@example.com")
	require.NoError(t, err)

	user, err := auth.Login("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = auth.Login("alice", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = auth.Login("nobody", "secret")
	assert.ErrorIs(t, err, ErrBadCredentials)

	// Username matching is case-sensitive
	_, err = auth.Login("Alice", "secret")
	assert.ErrorIs(t, err, ErrBadCredentials)
}
