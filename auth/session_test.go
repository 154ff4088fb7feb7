package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider drives the session from tests. It can delay its initial state
// callback to exercise the initialization race.
type fakeProvider struct {
	callback   StateCallback
	initial    *Principal
	initDelay  time.Duration
	signOutErr error
}

func (p *fakeProvider) OnStateChange(callback StateCallback) {
	p.callback = callback
	if p.initDelay > 0 {
		go func() {
			time.Sleep(p.initDelay)
			callback(p.initial)
		}()
		return
	}
	callback(p.initial)
}

func (p *fakeProvider) SignIn(ctx context.Context, email, secret string) (*Principal, error) {
	principal := &Principal{Email: email}
	p.callback(principal)
	return principal, nil
}

func (p *fakeProvider) SignOut(ctx context.Context) error {
	if p.signOutErr != nil {
		return p.signOutErr
	}
	p.callback(nil)
	return nil
}

func TestInitializedLatchesAfterFirstCallback(t *testing.T) {
	session := NewSession(&fakeProvider{}, nil)

	// no-session still counts as initialization
	assert.True(t, session.Initialized())
	assert.False(t, session.IsAuthenticated())
	assert.False(t, session.IsAdmin())
}

func TestWaitInitializedBlocksUntilFirstCallback(t *testing.T) {
	provider := &fakeProvider{
		initial:   &Principal{Email: "admin@example.com"},
		initDelay: 200 * time.Millisecond,
	}
	session := NewSession(provider, []string{"admin@example.com"})

	// the decision must not happen before the provider's first callback
	assert.False(t, session.Initialized())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, session.WaitInitialized(ctx))

	assert.True(t, session.IsAdmin())
}

func TestWaitInitializedHonorsContext(t *testing.T) {
	provider := &fakeProvider{initDelay: time.Minute}
	session := NewSession(provider, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := session.WaitInitialized(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestIsAdminRequiresAllowListedPrincipal(t *testing.T) {
	provider := &fakeProvider{initial: &Principal{Email: "visitor@example.com"}}
	session := NewSession(provider, []string{"admin@example.com"})

	assert.True(t, session.IsAuthenticated())
	assert.False(t, session.IsAdmin())
}

func TestIsAdminIgnoresEmailCase(t *testing.T) {
	provider := &fakeProvider{initial: &Principal{Email: "Admin@Example.com"}}
	session := NewSession(provider, []string{"admin@example.com"})

	assert.True(t, session.IsAdmin())
}

func TestSignInUpdatesSessionThroughProvider(t *testing.T) {
	provider := &fakeProvider{}
	session := NewSession(provider, []string{"admin@example.com"})

	principal, err := session.SignIn(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", principal.Email)

	// the provider callback is the write path, so the session sees it
	assert.True(t, session.IsAdmin())
}

func TestSignOutClearsLocallyEvenWhenRemoteFails(t *testing.T) {
	provider := &fakeProvider{
		initial:    &Principal{Email: "admin@example.com"},
		signOutErr: errors.New("provider unreachable"),
	}
	session := NewSession(provider, []string{"admin@example.com"})
	require.True(t, session.IsAuthenticated())

	err := session.SignOut(context.Background())

	// the failure surfaces, but local state is already signed out
	assert.Error(t, err)
	assert.False(t, session.IsAuthenticated())
	assert.False(t, session.IsAdmin())
}
