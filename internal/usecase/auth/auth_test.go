package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goban/internal/domain/user"
	errs "goban/internal/errors"
)

type mapSessions map[string]user.Me

func (m mapSessions) GetUserBySession(_ context.Context, sessionID string) (user.Me, error) {
	me, ok := m[sessionID]
	if !ok {
		return user.Me{}, errs.ErrSessionNotFound
	}
	return me, nil
}

func (m mapSessions) StoreSession(_ context.Context, sessionID string, me user.Me) error {
	m[sessionID] = me
	return nil
}

func (m mapSessions) DeleteSession(_ context.Context, sessionID string) error {
	delete(m, sessionID)
	return nil
}

func TestLoginLogout(t *testing.T) {
	sessions := mapSessions{}
	uc := NewAuthUseCase(sessions)
	ctx := context.Background()

	sessionID, me, err := uc.LoginUser(ctx, "  alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Username)
	assert.NotEmpty(t, me.UserID)
	assert.NotEqual(t, "alice", me.UserID)
	assert.NotEmpty(t, sessionID)

	got, err := uc.GetUserFromSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, me, got)

	require.NoError(t, uc.LogoutUser(ctx, sessionID))
	_, err = uc.GetUserFromSession(ctx, sessionID)
	assert.ErrorIs(t, err, errs.ErrSessionNotFound)
	assert.ErrorIs(t, uc.LogoutUser(ctx, sessionID), errs.ErrSessionNotFound)
}

func TestSameNameGetsDistinctIdentity(t *testing.T) {
	uc := NewAuthUseCase(mapSessions{})
	ctx := context.Background()

	firstSession, first, err := uc.LoginUser(ctx, "alice")
	require.NoError(t, err)
	secondSession, second, err := uc.LoginUser(ctx, "alice ")
	require.NoError(t, err)

	assert.NotEqual(t, firstSession, secondSession)
	assert.Equal(t, first.Username, second.Username)
	assert.NotEqual(t, first.UserID, second.UserID, "a second guest named alice must not act as the first")
}

func TestLoginRejectsBadNames(t *testing.T) {
	uc := NewAuthUseCase(mapSessions{})

	for _, name := range []string{"", "   ", strings.Repeat("я", maxUsernameLength+1)} {
		_, _, err := uc.LoginUser(context.Background(), name)
		assert.ErrorIs(t, err, errs.ErrInvalidUsername, "name %q", name)
	}

	_, me, err := uc.LoginUser(context.Background(), strings.Repeat("я", maxUsernameLength))
	require.NoError(t, err)
	assert.Equal(t, maxUsernameLength, len([]rune(me.Username)))
}
