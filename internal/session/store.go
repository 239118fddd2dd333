// Package session owns the authenticated-user state: who is logged in,
// which tokens back the session, and the bootstrap/login/logout
// lifecycle. It is the only writer of the stored token pair; every
// other component reads it through the TokenSource interface.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/akovalenko/fitterm/internal/api"
	"github.com/akovalenko/fitterm/internal/credstore"
	"github.com/akovalenko/fitterm/internal/domain"
)

// AuthAPI is the slice of the API surface the session store needs.
// *api.AuthService satisfies it.
type AuthAPI interface {
	Login(ctx context.Context, creds api.Credentials) (*api.TokenPair, error)
	Me(ctx context.Context) (*domain.UserProfile, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context, refreshToken string) (*api.TokenPair, error)
}

// Store holds the session state. Construct it first, hand it to
// api.New as the TokenSource, then bind the resulting auth service
// with BindAuth before calling any lifecycle method.
type Store struct {
	creds *credstore.Store
	log   logrus.FieldLogger

	mu      sync.RWMutex
	auth    AuthAPI
	tokens  credstore.Tokens
	user    *domain.UserProfile
	loading bool

	bootstrapOnce sync.Once
}

// New creates a Store backed by the given credential store.
func New(creds *credstore.Store, log logrus.FieldLogger) *Store {
	return &Store{creds: creds, log: log}
}

// BindAuth wires the auth API. Separate from New because the API
// client itself needs the Store as its TokenSource.
func (s *Store) BindAuth(auth AuthAPI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = auth
}

// Token implements api.TokenSource. Empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.AccessToken
}

// User returns the current profile, or nil when logged out.
func (s *Store) User() *domain.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// LoggedIn reports whether a session is believed active.
func (s *Store) LoggedIn() bool {
	return s.User() != nil
}

// Loading reports whether the initial bootstrap probe is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Bootstrap probes any stored token against the profile endpoint and
// establishes the session if it is still valid. On any probe failure
// the stored credentials are cleared and the process starts logged
// out. Runs at most once per process; later calls are no-ops.
func (s *Store) Bootstrap(ctx context.Context) error {
	var err error
	s.bootstrapOnce.Do(func() {
		err = s.bootstrap(ctx)
	})
	return err
}

func (s *Store) bootstrap(ctx context.Context) error {
	stored, err := s.creds.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading stored credentials: %w", err)
	}
	if stored.AccessToken == "" {
		return nil
	}

	s.mu.Lock()
	s.tokens = stored
	s.loading = true
	s.mu.Unlock()

	user, err := s.auth.Me(ctx)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.tokens = credstore.Tokens{}
		s.user = nil
	} else {
		s.user = user
	}
	s.mu.Unlock()

	if err != nil {
		if api.IsAuthError(err) {
			s.log.WithError(err).Info("stored session expired, logging out")
		} else {
			s.log.WithError(err).Warn("session probe failed, logging out")
		}
		if clearErr := s.creds.Clear(ctx); clearErr != nil {
			return fmt.Errorf("clearing stale credentials: %w", clearErr)
		}
	}
	return nil
}

// Login authenticates, persists the token pair, then fetches the
// profile. Login is not complete until the profile fetch succeeds; on
// a profile failure the half-established session is torn down and the
// error returned, leaving no partial state.
func (s *Store) Login(ctx context.Context, creds api.Credentials) error {
	pair, err := s.auth.Login(ctx, creds)
	if err != nil {
		return err
	}

	tokens := credstore.Tokens{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}
	s.mu.Lock()
	s.tokens = tokens
	s.mu.Unlock()
	if err := s.creds.Save(ctx, tokens); err != nil {
		s.reset()
		return fmt.Errorf("persisting credentials: %w", err)
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		if logoutErr := s.Logout(ctx); logoutErr != nil {
			s.log.WithError(logoutErr).Warn("cleanup after failed login")
		}
		return fmt.Errorf("fetching profile after login: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// Logout clears all session state. Safe to call from any error
// handler, in any state, any number of times. The server-side logout
// is best effort; local state is always cleared.
func (s *Store) Logout(ctx context.Context) error {
	if s.Token() != "" {
		if err := s.auth.Logout(ctx); err != nil {
			s.log.WithError(err).Debug("server logout failed, clearing locally anyway")
		}
	}
	s.reset()
	if err := s.creds.Clear(ctx); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}

// RefreshTokens exchanges the stored refresh token for a new pair and
// persists it. Fails when no refresh token is stored.
func (s *Store) RefreshTokens(ctx context.Context) error {
	s.mu.RLock()
	refresh := s.tokens.RefreshToken
	s.mu.RUnlock()
	if refresh == "" {
		return fmt.Errorf("no refresh token stored")
	}

	pair, err := s.auth.Refresh(ctx, refresh)
	if err != nil {
		return err
	}

	tokens := credstore.Tokens{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}
	s.mu.Lock()
	s.tokens = tokens
	s.mu.Unlock()
	if err := s.creds.Save(ctx, tokens); err != nil {
		return fmt.Errorf("persisting refreshed credentials: %w", err)
	}
	return nil
}

func (s *Store) reset() {
	s.mu.Lock()
	s.tokens = credstore.Tokens{}
	s.user = nil
	s.loading = false
	s.mu.Unlock()
}
