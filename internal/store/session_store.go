package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"shade-storefront/internal/domain"
	"shade-storefront/pkg/logger"
	"shade-storefront/pkg/metrics"
)

const sessionStoreName = "session"

var errIncompleteSession = errors.New("identity provider returned a session without id or email")

// SessionStore owns the signed-in identity, if any.
//
// Login and Register block the calling goroutine on the identity provider
// while IsLoading reports true. Overlapping calls are not serialized: every
// successful call installs its session as it resolves, so the last one to
// resolve wins. There is no retry and no timeout beyond what ctx and the
// provider impose.
type SessionStore struct {
	mu       sync.Mutex
	storage  domain.LocalStorage
	provider domain.IdentityProvider
	session  *domain.Session
	pending  int
	subs     listeners
}

// NewSessionStore restores a persisted session. Unreadable, malformed or
// incomplete snapshots are treated as signed out.
func NewSessionStore(ctx context.Context, storage domain.LocalStorage, provider domain.IdentityProvider) *SessionStore {
	s := &SessionStore{storage: storage, provider: provider}

	saved, ok := loadSnapshot[*domain.Session](ctx, storage, sessionStoreName, domain.SessionStorageKey)
	switch {
	case !ok || saved == nil:
	case !saved.Valid():
		metrics.SnapshotReadFailures.WithLabelValues(sessionStoreName).Inc()
		logger.WithContext(ctx).Warn().Msg("Discarding incomplete session snapshot")
	default:
		s.session = saved
	}
	return s
}

// Login signs in with email and password. On failure the returned error wraps
// domain.ErrAuthFailure and the current state is unchanged.
func (s *SessionStore) Login(ctx context.Context, email, password string) (domain.Session, error) {
	return s.authenticate(ctx, domain.Credentials{
		Intent:   domain.IntentSignIn,
		Email:    email,
		Password: password,
	})
}

// Register signs up and signs in. The session name is the supplied name.
func (s *SessionStore) Register(ctx context.Context, email, password, name string) (domain.Session, error) {
	return s.authenticate(ctx, domain.Credentials{
		Intent:   domain.IntentSignUp,
		Email:    email,
		Password: password,
		Name:     name,
	})
}

func (s *SessionStore) authenticate(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	s.mu.Lock()
	if s.session != nil {
		s.mu.Unlock()
		return domain.Session{}, domain.ErrAlreadyAuthenticated
	}
	s.pending++
	s.mu.Unlock()
	s.subs.notify()

	session, err := s.provider.Authenticate(ctx, creds)
	if err == nil && !session.Valid() {
		err = errIncompleteSession
	}

	s.mu.Lock()
	s.pending--
	if err == nil {
		s.session = &session
		saveSnapshot(ctx, s.storage, sessionStoreName, domain.SessionStorageKey, session)
	}
	s.mu.Unlock()
	s.subs.notify()

	if err != nil {
		metrics.AuthAttempts.WithLabelValues(string(creds.Intent), "failure").Inc()
		logger.WithContext(ctx).Info().
			Err(err).
			Str("intent", string(creds.Intent)).
			Msg("Authentication failed")
		return domain.Session{}, fmt.Errorf("%w: %s: %w", domain.ErrAuthFailure, failureVerb(creds.Intent), err)
	}

	metrics.AuthAttempts.WithLabelValues(string(creds.Intent), "success").Inc()
	metrics.StoreMutations.WithLabelValues(sessionStoreName, string(creds.Intent)).Inc()
	return session, nil
}

func failureVerb(intent domain.AuthIntent) string {
	if intent == domain.IntentSignUp {
		return "registration failed"
	}
	return "login failed"
}

// Logout clears the session and its snapshot immediately.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.session = nil
	removeSnapshot(ctx, s.storage, sessionStoreName, domain.SessionStorageKey)
	s.mu.Unlock()

	metrics.StoreMutations.WithLabelValues(sessionStoreName, "logout").Inc()
	s.subs.notify()
}

// Current returns the active session, if any.
func (s *SessionStore) Current() (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return domain.Session{}, false
	}
	return *s.session, true
}

// IsLoading reports whether a Login or Register call is in flight.
func (s *SessionStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending > 0
}

func (s *SessionStore) Status() domain.AuthStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.session != nil:
		return domain.StatusAuthenticated
	case s.pending > 0:
		return domain.StatusAuthenticating
	default:
		return domain.StatusUnauthenticated
	}
}

// Subscribe registers fn to run after every change, including the start and
// end of a sign-in. Call the returned func to stop.
func (s *SessionStore) Subscribe(fn func()) (unsubscribe func()) {
	return s.subs.add(fn)
}
