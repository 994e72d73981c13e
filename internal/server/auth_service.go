package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	internalauth "docvault/internal/auth"
	"docvault/internal/store"
)

// localOwnerID is the implicit account used while no users are
// provisioned. Single-user installs never need to log in.
const localOwnerID = "local"

var (
	defaultSessionTTL     = 24 * time.Hour
	errInvalidCredentials = errors.New("invalid credentials")
)

// AuthService encapsulates login and bearer-session operations backed by
// the store.
type AuthService struct {
	store      *store.Store
	sessionTTL time.Duration
}

type authLoginResult struct {
	User      *store.AuthUser
	Token     string
	ExpiresAt time.Time
}

func NewAuthService(st *store.Store) *AuthService {
	if st == nil {
		return nil
	}
	return &AuthService{store: st, sessionTTL: defaultSessionTTL}
}

// AuthRequired reports whether requests must carry a bearer token. Auth
// switches on as soon as the first user is provisioned.
func (a *AuthService) AuthRequired(ctx context.Context) (bool, error) {
	if a == nil || a.store == nil {
		return false, nil
	}
	count, err := a.store.CountEnabledUsers(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (a *AuthService) Login(ctx context.Context, username, password string, now time.Time) (*authLoginResult, error) {
	if a == nil || a.store == nil {
		return nil, fmt.Errorf("auth store is required")
	}

	normalized, err := internalauth.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("password is required")
	}

	user, err := a.store.GetUserByUsername(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Disabled || !internalauth.VerifyPassword(user.PasswordHash, password) {
		return nil, errInvalidCredentials
	}

	token, err := internalauth.NewSessionToken()
	if err != nil {
		return nil, err
	}
	expiresAt := now.Add(a.sessionTTL)
	if err := a.store.CreateSession(ctx, user.ID, internalauth.HashSessionToken(token), expiresAt, now); err != nil {
		return nil, err
	}

	return &authLoginResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (a *AuthService) AuthenticateToken(ctx context.Context, token string, now time.Time) (*store.AuthUser, error) {
	if a == nil || a.store == nil {
		return nil, nil
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}
	return a.store.GetUserBySessionTokenHash(ctx, internalauth.HashSessionToken(token), now)
}

func (a *AuthService) RevokeToken(ctx context.Context, token string, now time.Time) error {
	if a == nil || a.store == nil {
		return nil
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return a.store.RevokeSessionByTokenHash(ctx, internalauth.HashSessionToken(token), now)
}
