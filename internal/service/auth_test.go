package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkiran-dev/event-booking-backend/internal/auth"
	"github.com/gkiran-dev/event-booking-backend/internal/model"
)

func newAuthService(users *fakeUserStore) (*AuthService, *auth.Manager) {
	tokens := auth.NewManager("test-secret", 10*time.Hour)
	return NewAuthService(users, tokens, zerolog.Nop()), tokens
}

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	users := newFakeUserStore()
	svc, _ := newAuthService(users)

	user, err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	assert.Equal(t, model.RoleUser, user.Role)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.False(t, user.ID.IsZero())

	stored, err := users.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", stored.Password)
	assert.True(t, auth.CheckPassword(stored.Password, "s3cret"))
}

func TestRegister_AdminRoleKept(t *testing.T) {
	svc, _ := newAuthService(newFakeUserStore())

	user, err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "Root",
		Email:    "root@example.com",
		Password: "pw",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	svc, _ := newAuthService(users)

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "pw",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), model.RegisterRequest{
		Name: "Alice Again", Email: "alice@example.com", Password: "pw2",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestLogin_FailureIsIndistinguishable(t *testing.T) {
	users := newFakeUserStore()
	svc, _ := newAuthService(users)

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "correct",
	})
	require.NoError(t, err)

	_, unknownErr := svc.Login(context.Background(), model.LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	_, wrongPwErr := svc.Login(context.Background(), model.LoginRequest{
		Email: "alice@example.com", Password: "wrong",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongPwErr)
	assert.ErrorIs(t, unknownErr, model.ErrAuthentication)
	assert.ErrorIs(t, wrongPwErr, model.ErrAuthentication)

	// Neither message reveals which case occurred.
	assert.Equal(t, unknownErr.Error(), wrongPwErr.Error())
}

func TestLogin_IssuedTokenCarriesIdentity(t *testing.T) {
	users := newFakeUserStore()
	svc, tokens := newAuthService(users)

	user, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "pw",
	})
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), model.LoginRequest{
		Email: "alice@example.com", Password: "pw",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, model.RoleUser, claims.Role)
}
