package tests

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria/pkg/domain/model"
	"pizzeria/pkg/domain/service"
)

func setupAuth(t *testing.T) (service.AuthService, service.UserService, service.TokenService, *mockEventDispatcher) {
	repo := &mockUserRepository{store: make(map[uuid.UUID]*model.User)}
	dispatcher := &mockEventDispatcher{}
	users := service.NewUserService(repo, &mockPasswordManager{}, dispatcher)
	tokens := service.NewTokenService([]byte("test-secret"))
	auth := service.NewAuthService(users, tokens, time.Minute, time.Hour, dispatcher)
	return auth, users, tokens, dispatcher
}

func TestLogin(t *testing.T) {
	auth, users, tokens, dispatcher := setupAuth(t)
	registered, err := users.Register("Maria", "maria@example.com", "password123", true, false)
	require.NoError(t, err)

	t.Run("Success issues both tokens", func(t *testing.T) {
		dispatcher.Reset()
		user, pair, err := auth.Login("maria@example.com", "password123")

		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
		assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

		accessSubject, err := tokens.Verify(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, accessSubject)

		refreshSubject, err := tokens.Verify(pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, refreshSubject)

		require.Len(t, dispatcher.events, 1)
		_, ok := dispatcher.events[0].(model.UserLoggedIn)
		assert.True(t, ok)
	})

	t.Run("Fail on bad credentials", func(t *testing.T) {
		dispatcher.Reset()
		_, _, err := auth.Login("maria@example.com", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		assert.Empty(t, dispatcher.events)
	})
}

func TestRefresh(t *testing.T) {
	auth, _, tokens, _ := setupAuth(t)
	userID := uuid.New()

	accessToken, err := auth.Refresh(userID)
	require.NoError(t, err)

	subject, err := tokens.Verify(accessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, subject)
}
