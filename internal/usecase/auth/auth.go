package auth

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"goban/internal/domain/user"
	errs "goban/internal/errors"
)

const maxUsernameLength = 32

type SessionStorage interface {
	GetUserBySession(ctx context.Context, sessionID string) (user.Me, error)
	StoreSession(ctx context.Context, sessionID string, me user.Me) error
	DeleteSession(ctx context.Context, sessionID string) error
}

// AuthUseCase гостевой вход. Каждый вход получает свой userID, имя только подпись:
// два гостя с одним именем остаются разными игроками.
type AuthUseCase struct {
	sessionStorage SessionStorage
}

func NewAuthUseCase(s SessionStorage) *AuthUseCase {
	return &AuthUseCase{sessionStorage: s}
}

func (a *AuthUseCase) LoginUser(ctx context.Context, username string) (sessionID string, me user.Me, err error) {
	username = strings.TrimSpace(username)
	if username == "" || utf8.RuneCountInString(username) > maxUsernameLength {
		return "", user.Me{}, fmt.Errorf("%w: username must be 1..%d characters", errs.ErrInvalidUsername, maxUsernameLength)
	}

	me = user.Me{UserID: uuid.New().String(), Username: username}
	sessionID = uuid.New().String()
	if err := a.sessionStorage.StoreSession(ctx, sessionID, me); err != nil {
		return "", user.Me{}, err
	}
	return sessionID, me, nil
}

// returns nil or ErrSessionNotFound
func (a *AuthUseCase) LogoutUser(ctx context.Context, sessionID string) error {
	if _, err := a.sessionStorage.GetUserBySession(ctx, sessionID); err != nil {
		return err
	}
	return a.sessionStorage.DeleteSession(ctx, sessionID)
}

func (a *AuthUseCase) GetUserFromSession(ctx context.Context, sessionID string) (user.Me, error) {
	return a.sessionStorage.GetUserBySession(ctx, sessionID)
}
