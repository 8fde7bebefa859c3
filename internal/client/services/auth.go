// Package services contains the application services behind the CLI
// commands. They combine the API client, the session store and the identity
// adapter, and never keep UI state of their own.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/expenses/internal/client/identity"
	"github.com/dmitrijs2005/expenses/internal/client/models"
	"github.com/dmitrijs2005/expenses/internal/client/session"
)

// ErrSignInRequired is returned by operations that need a bearer token
// while nobody is signed in.
var ErrSignInRequired = errors.New("sign in required")

// ErrSessionExpired is returned by Touch when activity arrives after the
// inactivity timeout. The session has been signed out by then.
var ErrSessionExpired = errors.New("session expired after inactivity")

// TokenSource yields the bearer token of the signed-in user.
type TokenSource interface {
	Token() (string, error)
}

func bearer(ts TokenSource) (string, error) {
	token, err := ts.Token()
	if errors.Is(err, session.ErrNoSession) {
		return "", ErrSignInRequired
	}
	return token, err
}

// AuthService manages the sign-in lifecycle.
//
// Contract:
//   - Restore: resume the persisted session, if still valid.
//   - SignInTarget: where to obtain a credential.
//   - SignIn: turn a raw credential into the signed-in user.
//   - SignOut: forget the user locally.
//   - Touch: record user activity, or end a session that already timed out.
//   - WatchExpiry: sign out automatically after inactivity.
type AuthService interface {
	Restore(ctx context.Context) (*models.User, error)
	CurrentUser() *models.User
	SignInTarget() (string, error)
	SignIn(ctx context.Context, credential string) (models.User, error)
	SignOut(ctx context.Context) error
	Touch(ctx context.Context) error
	WatchExpiry(ctx context.Context, interval time.Duration, onExpire func())
}

type authService struct {
	store    *session.Store
	identity *identity.Adapter
}

func NewAuthService(store *session.Store, id *identity.Adapter) AuthService {
	return &authService{store: store, identity: id}
}

func (a *authService) Restore(ctx context.Context) (*models.User, error) {
	u, err := a.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return u, nil
}

func (a *authService) CurrentUser() *models.User {
	u, ok := a.store.User()
	if !ok {
		return nil
	}
	return &u
}

func (a *authService) SignInTarget() (string, error) {
	return a.identity.Target()
}

func (a *authService) SignIn(ctx context.Context, credential string) (models.User, error) {
	u, err := a.identity.SignIn(credential)
	if err != nil {
		return models.User{}, err
	}
	if err := a.store.Login(ctx, u); err != nil {
		return models.User{}, fmt.Errorf("save session: %w", err)
	}
	return u, nil
}

func (a *authService) SignOut(ctx context.Context) error {
	return a.store.Logout(ctx)
}

func (a *authService) Touch(ctx context.Context) error {
	err := a.store.Touch(ctx)
	if errors.Is(err, session.ErrExpired) {
		return ErrSessionExpired
	}
	return err
}

func (a *authService) WatchExpiry(ctx context.Context, interval time.Duration, onExpire func()) {
	a.store.StartExpiryWatcher(ctx, interval, onExpire)
}
