package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/samudev/portfolio-backend/database"
	"github.com/samudev/portfolio-backend/errs"
)

// Principal is the authenticated identity returned by the provider.
type Principal struct {
	Email string `json:"email"`
}

// StateCallback receives the current principal, or nil when signed out.
type StateCallback func(*Principal)

// Provider is the identity-provider contract. OnStateChange fires the callback
// once with the current state when registered, then again on every sign-in and
// sign-out. The provider is the only writer of session state; readers go
// through Session.
type Provider interface {
	SignIn(ctx context.Context, email, secret string) (*Principal, error)
	SignOut(ctx context.Context) error
	OnStateChange(callback StateCallback)
}

const (
	maxFailedAttempts = 5
	attemptWindow     = 15 * time.Minute
)

// GormProvider verifies credentials against the admin user table. Repeated
// failures for the same email are rate limited in memory.
type GormProvider struct {
	users *database.AdminUserRepo

	mu       sync.Mutex
	callback StateCallback
	current  *Principal
	failures map[string]attemptRecord
}

type attemptRecord struct {
	count int
	first time.Time
}

func NewGormProvider(users *database.AdminUserRepo) *GormProvider {
	return &GormProvider{
		users:    users,
		failures: make(map[string]attemptRecord),
	}
}

func (p *GormProvider) OnStateChange(callback StateCallback) {
	p.mu.Lock()
	p.callback = callback
	current := p.current
	p.mu.Unlock()

	// initial state counts as the first transition, signed-in or not
	if callback != nil {
		callback(current)
	}
}

func (p *GormProvider) SignIn(ctx context.Context, email, secret string) (*Principal, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if p.rateLimited(email) {
		return nil, errs.NewRateLimitedError()
	}

	user, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		if errs.IsNotFound(err) {
			p.recordFailure(email)
			return nil, errs.NewInvalidCredentialsError()
		}
		return nil, errs.NewAuthUnknownError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(secret)); err != nil {
		p.recordFailure(email)
		return nil, errs.NewInvalidCredentialsError()
	}

	principal := &Principal{Email: user.Email}
	p.transition(principal)
	p.clearFailures(email)
	return principal, nil
}

// SignOut clears the provider state unconditionally; there is no remote call
// to fail here, but the contract allows one.
func (p *GormProvider) SignOut(ctx context.Context) error {
	p.transition(nil)
	return nil
}

func (p *GormProvider) transition(principal *Principal) {
	p.mu.Lock()
	p.current = principal
	callback := p.callback
	p.mu.Unlock()

	if callback != nil {
		callback(principal)
	}
}

func (p *GormProvider) rateLimited(email string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	record, ok := p.failures[email]
	if !ok {
		return false
	}
	if time.Since(record.first) > attemptWindow {
		delete(p.failures, email)
		return false
	}
	return record.count >= maxFailedAttempts
}

func (p *GormProvider) recordFailure(email string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	record, ok := p.failures[email]
	if !ok || time.Since(record.first) > attemptWindow {
		record = attemptRecord{first: time.Now()}
	}
	record.count++
	p.failures[email] = record
}

func (p *GormProvider) clearFailures(email string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.failures, email)
}

// NoopProvider backs the static-snapshot deployment, where no admin surface
// exists. It fires the no-session state once and rejects every sign-in.
type NoopProvider struct{}

func (NoopProvider) SignIn(ctx context.Context, email, secret string) (*Principal, error) {
	return nil, errs.NewInvalidCredentialsError()
}

func (NoopProvider) SignOut(ctx context.Context) error {
	return nil
}

func (NoopProvider) OnStateChange(callback StateCallback) {
	if callback != nil {
		callback(nil)
	}
}
