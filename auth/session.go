package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Session is the process-wide identity state: the current principal plus an
// initialized latch that closes after the provider's first state callback.
// The provider callback is the only writer; everything else reads.
type Session struct {
	provider Provider
	admins   map[string]struct{}
	logger   zerolog.Logger

	mu        sync.RWMutex
	principal *Principal

	initOnce sync.Once
	initCh   chan struct{}
}

// NewSession wires the session to the provider's state stream. The allow-list
// is injected so tests can swap it without touching provider logic.
func NewSession(provider Provider, adminEmails []string) *Session {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}

	s := &Session{
		provider: provider,
		admins:   admins,
		logger:   log.With().Str("component", "session").Logger(),
		initCh:   make(chan struct{}),
	}
	provider.OnStateChange(s.apply)
	return s
}

// apply is the single write path, invoked by the provider on every transition.
func (s *Session) apply(principal *Principal) {
	s.mu.Lock()
	s.principal = principal
	s.mu.Unlock()

	s.initOnce.Do(func() { close(s.initCh) })

	// audit every transition with the admin determination
	if principal == nil {
		s.logger.Info().Msg("Auth state changed: no user")
		return
	}
	s.logger.Info().
		Str("email", principal.Email).
		Bool("isAdmin", s.isAllowListed(principal.Email)).
		Msg("Auth state changed")
}

// Initialized reports whether the provider's first state callback has fired.
// It latches true exactly once per process.
func (s *Session) Initialized() bool {
	select {
	case <-s.initCh:
		return true
	default:
		return false
	}
}

// WaitInitialized blocks until the session is initialized or ctx is done.
func (s *Session) WaitInitialized(ctx context.Context) error {
	select {
	case <-s.initCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Current returns the latest principal, or nil when signed out.
func (s *Session) Current() *Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal
}

func (s *Session) IsAuthenticated() bool {
	return s.Current() != nil
}

// IsAdmin is true iff a principal exists and its email is on the allow-list.
func (s *Session) IsAdmin() bool {
	principal := s.Current()
	if principal == nil || principal.Email == "" {
		return false
	}
	return s.isAllowListed(principal.Email)
}

func (s *Session) isAllowListed(email string) bool {
	_, ok := s.admins[strings.ToLower(email)]
	return ok
}

// SignIn delegates to the provider; the provider fires the state callback on
// success, so the session observes the new principal before this returns.
func (s *Session) SignIn(ctx context.Context, email, secret string) (*Principal, error) {
	principal, err := s.provider.SignIn(ctx, email, secret)
	if err != nil {
		s.logger.Warn().Str("email", email).Err(err).Msg("Sign-in failed")
		return nil, err
	}
	return principal, nil
}

// SignOut clears local state regardless of the provider outcome. A remote
// failure is logged and returned so callers can surface it, but the local
// session is already signed out.
func (s *Session) SignOut(ctx context.Context) error {
	err := s.provider.SignOut(ctx)

	// local state is authoritative; the provider may not have fired on error
	s.apply(nil)

	if err != nil {
		s.logger.Error().Err(err).Msg("Remote sign-out failed, local session cleared anyway")
		return err
	}
	return nil
}
