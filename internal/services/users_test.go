package services

import (
	"context"
	"testing"

	"github.com/monocle-dev/storefront/internal/auth"
	"github.com/monocle-dev/storefront/internal/models"
	"github.com/monocle-dev/storefront/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupUsers(t *testing.T) (*UserService, *storetest.Store) {
	t.Helper()

	db := storetest.New()

	return NewUserService(db.Users(), auth.NewBcryptHasher(bcrypt.MinCost)), db
}

func strPtr(s string) *string {
	return &s
}

func TestCreateUser(t *testing.T) {
	users, _ := setupUsers(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		user, err := users.Create(ctx, NewUser{
			Email:     "  Alice@Example.com ",
			Password:  "wonderland",
			FirstName: "Alice",
		})

		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "Alice", user.FirstName)
		assert.NotEqual(t, "wonderland", user.PasswordHash)
		assert.False(t, user.IsAdmin)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		_, err := users.Create(ctx, NewUser{Email: "alice@example.com", Password: "another-one"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("Invalid email", func(t *testing.T) {
		_, err := users.Create(ctx, NewUser{Email: "not-an-email", Password: "wonderland"})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("Short password", func(t *testing.T) {
		_, err := users.Create(ctx, NewUser{Email: "carol@example.com", Password: "short"})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestCreatedUserCanAuthenticate(t *testing.T) {
	db := storetest.New()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	codec, err := auth.NewTokenCodec("test-secret", "HS256", 0)
	require.NoError(t, err)

	users := NewUserService(db.Users(), hasher)
	identity := NewIdentityService(db.Users(), hasher, codec)
	ctx := context.Background()

	_, err = users.Create(ctx, NewUser{Email: "root@example.com", Password: "supersecret", IsAdmin: true})
	require.NoError(t, err)

	token, err := identity.Authenticate(ctx, "root@example.com", "supersecret")
	require.NoError(t, err)

	principal, err := identity.Resolve(ctx, token)
	require.NoError(t, err)
	assert.True(t, principal.IsAdmin)
}

func TestUpdateProfile(t *testing.T) {
	users, db := setupUsers(t)
	ctx := context.Background()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	alice, err := users.Create(ctx, NewUser{Email: "alice@example.com", Password: "wonderland", LastName: "Liddell"})
	require.NoError(t, err)
	db.SeedUser(models.User{Email: "bob@example.com"})

	t.Run("Only present fields change", func(t *testing.T) {
		updated, err := users.UpdateProfile(ctx, alice, ProfileUpdate{FirstName: strPtr(" Alice ")})

		require.NoError(t, err)
		assert.Equal(t, "Alice", updated.FirstName)
		assert.Equal(t, "Liddell", updated.LastName)
		assert.Equal(t, "alice@example.com", updated.Email)
	})

	t.Run("Password is hashed", func(t *testing.T) {
		updated, err := users.UpdateProfile(ctx, alice, ProfileUpdate{Password: strPtr("through-the-glass")})

		require.NoError(t, err)
		assert.NoError(t, hasher.Verify(updated.PasswordHash, "through-the-glass"))
	})

	t.Run("Email cannot change", func(t *testing.T) {
		for _, email := range []string{"alice@wonderland.org", "bob@example.com", "alice@example.com"} {
			_, err := users.UpdateProfile(ctx, alice, ProfileUpdate{Email: strPtr(email), FirstName: strPtr("Al")})
			assert.ErrorIs(t, err, ErrInvalidArgument)
		}

		stored, err := db.Users().FindByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", stored.Email)
		assert.Equal(t, "Alice", stored.FirstName)
	})

	t.Run("Empty update", func(t *testing.T) {
		_, err := users.UpdateProfile(ctx, alice, ProfileUpdate{})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("Short password", func(t *testing.T) {
		_, err := users.UpdateProfile(ctx, alice, ProfileUpdate{Password: strPtr("short")})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("Principal gone", func(t *testing.T) {
		gone := db.SeedUser(models.User{Email: "gone@example.com"})
		db.DeleteUser(gone.ID)

		_, err := users.UpdateProfile(ctx, gone, ProfileUpdate{FirstName: strPtr("Ghost")})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
