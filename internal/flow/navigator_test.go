package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerforge/resume-builder/internal/auth"
	"github.com/careerforge/resume-builder/internal/session"
	"github.com/careerforge/resume-builder/internal/wizard"
)

type fakeAuthenticator struct {
	exchangeEmail string
	exchangeErr   error
	tokenEmail    string
	tokenErr      error
	exchangeCalls int
}

func (f *fakeAuthenticator) AuthorizationURL() string { return "https://provider.example/authorize" }

func (f *fakeAuthenticator) ExchangeCode(ctx context.Context, code string) (string, error) {
	f.exchangeCalls++
	if f.exchangeErr != nil {
		return "", f.exchangeErr
	}
	return f.exchangeEmail, nil
}

func (f *fakeAuthenticator) VerifyIdentityToken(token string) (*auth.IdentityClaims, error) {
	if f.tokenErr != nil {
		return nil, f.tokenErr
	}
	return &auth.IdentityClaims{Email: f.tokenEmail}, nil
}

type recordedLogins struct {
	emails []string
	err    error
}

func (r *recordedLogins) RecordLogin(ctx context.Context, email string) error {
	r.emails = append(r.emails, email)
	return r.err
}

func TestContinueAsGuest(t *testing.T) {
	logins := &recordedLogins{}
	nav := NewNavigator(&fakeAuthenticator{}, logins)
	s := session.New()

	require.NoError(t, nav.ContinueAsGuest(context.Background(), s))

	assert.Equal(t, session.PageRoleSelection, s.Page)
	assert.Equal(t, auth.GuestEmail, s.Identity.Email)
	assert.True(t, s.Identity.IsGuest)
	assert.Equal(t, []string{auth.GuestEmail}, logins.emails)
}

func TestContinueAsGuestRequiresOnboarding(t *testing.T) {
	nav := NewNavigator(&fakeAuthenticator{}, nil)
	s := session.New()
	s.Page = session.PageWizard

	err := nav.ContinueAsGuest(context.Background(), s)

	var invalid *ErrInvalidTransition
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, session.PageWizard, invalid.Page)
}

func TestHandleAuthCallback(t *testing.T) {
	fake := &fakeAuthenticator{exchangeEmail: "dana@example.com"}
	logins := &recordedLogins{}
	nav := NewNavigator(fake, logins)
	s := session.New()

	require.NoError(t, nav.HandleAuthCallback(context.Background(), s, "code-1"))

	assert.Equal(t, session.PageRoleSelection, s.Page)
	assert.Equal(t, "dana@example.com", s.Identity.Email)
	assert.False(t, s.Identity.IsGuest)
	assert.Equal(t, []string{"dana@example.com"}, logins.emails)
}

func TestHandleAuthCallbackReplayedCode(t *testing.T) {
	fake := &fakeAuthenticator{exchangeErr: &auth.ErrAuthFailed{Reason: "code rejected"}}
	nav := NewNavigator(fake, nil)
	s := session.New()

	err := nav.HandleAuthCallback(context.Background(), s, "code-1")
	require.Error(t, err)
	assert.Equal(t, session.PageOnboarding, s.Page)

	// A refresh replays the same code; it was consumed by the first attempt,
	// so the provider is not contacted again.
	err = nav.HandleAuthCallback(context.Background(), s, "code-1")
	assert.ErrorIs(t, err, ErrCredentialConsumed)
	assert.Equal(t, 1, fake.exchangeCalls)
}

func TestHandleAuthCallbackAfterSignIn(t *testing.T) {
	fake := &fakeAuthenticator{exchangeEmail: "dana@example.com"}
	nav := NewNavigator(fake, nil)
	s := session.New()

	require.NoError(t, nav.HandleAuthCallback(context.Background(), s, "code-1"))
	err := nav.HandleAuthCallback(context.Background(), s, "code-2")

	assert.ErrorIs(t, err, ErrCredentialConsumed)
	assert.Equal(t, 1, fake.exchangeCalls)
}

func TestHandleIdentityToken(t *testing.T) {
	nav := NewNavigator(&fakeAuthenticator{tokenEmail: "lee@example.com"}, nil)
	s := session.New()

	require.NoError(t, nav.HandleIdentityToken(context.Background(), s, "token-1"))

	assert.Equal(t, session.PageRoleSelection, s.Page)
	assert.Equal(t, "lee@example.com", s.Identity.Email)
}

func TestHandleIdentityTokenInvalid(t *testing.T) {
	fake := &fakeAuthenticator{tokenErr: &auth.ErrAuthFailed{Reason: "signature mismatch"}}
	nav := NewNavigator(fake, nil)
	s := session.New()

	err := nav.HandleIdentityToken(context.Background(), s, "token-1")
	require.Error(t, err)
	assert.Equal(t, session.PageOnboarding, s.Page)

	err = nav.HandleIdentityToken(context.Background(), s, "token-1")
	assert.ErrorIs(t, err, ErrCredentialConsumed)
}

func TestLoginRecordingFailureIsSwallowed(t *testing.T) {
	logins := &recordedLogins{err: errors.New("database unreachable")}
	nav := NewNavigator(&fakeAuthenticator{}, logins)
	s := session.New()

	require.NoError(t, nav.ContinueAsGuest(context.Background(), s))
	assert.Equal(t, session.PageRoleSelection, s.Page)
}

func TestSelectRoleAndBack(t *testing.T) {
	nav := NewNavigator(&fakeAuthenticator{}, nil)
	s := session.New()
	require.NoError(t, nav.ContinueAsGuest(context.Background(), s))

	require.NoError(t, nav.SelectRole(s, "Data Engineer"))
	assert.Equal(t, session.PageTemplateSelection, s.Page)
	assert.Equal(t, "Data Engineer", s.Wizard.TargetRole)

	require.NoError(t, nav.BackToRoleSelection(s))
	assert.Equal(t, session.PageRoleSelection, s.Page)

	require.NoError(t, nav.BackToOnboarding(s))
	assert.Equal(t, session.PageOnboarding, s.Page)
}

func TestSelectRoleWrongPage(t *testing.T) {
	nav := NewNavigator(&fakeAuthenticator{}, nil)
	s := session.New()

	var invalid *ErrInvalidTransition
	require.ErrorAs(t, nav.SelectRole(s, "Data Engineer"), &invalid)
}

func TestStartWizard(t *testing.T) {
	nav := NewNavigator(&fakeAuthenticator{}, nil)
	s := session.New()
	require.NoError(t, nav.ContinueAsGuest(context.Background(), s))
	require.NoError(t, nav.SelectRole(s, "Data Engineer"))

	require.NoError(t, nav.StartWizard(s, "Modern Minimal"))

	assert.Equal(t, session.PageWizard, s.Page)
	assert.Equal(t, "Modern Minimal", s.Template)
}

func TestGoToPreviewRequiresCompletion(t *testing.T) {
	nav := NewNavigator(&fakeAuthenticator{}, nil)
	s := session.New()
	s.Page = session.PageWizard

	assert.ErrorIs(t, nav.GoToPreview(s), ErrWizardIncomplete)

	s.Wizard.CurrentStep = len(wizard.Steps)
	require.NoError(t, nav.GoToPreview(s))
	assert.Equal(t, session.PagePreview, s.Page)
}

func TestEditResumeKeepsDocument(t *testing.T) {
	nav := NewNavigator(&fakeAuthenticator{}, nil)
	s := session.New()
	s.Page = session.PagePreview
	s.Wizard.CurrentStep = len(wizard.Steps)
	s.Document.Summary = "Seasoned data engineer."

	require.NoError(t, nav.EditResume(s))

	assert.Equal(t, session.PageWizard, s.Page)
	assert.Equal(t, 0, s.Wizard.CurrentStep)
	assert.Equal(t, "Seasoned data engineer.", s.Document.Summary)
}

func TestRestartClearsEverything(t *testing.T) {
	nav := NewNavigator(&fakeAuthenticator{}, nil)
	s := session.New()
	s.Page = session.PagePreview
	s.Identity.Email = "dana@example.com"
	s.Wizard.TargetRole = "Data Engineer"
	s.Document.Summary = "Seasoned data engineer."

	require.NoError(t, nav.Restart(s))

	assert.Equal(t, session.PageOnboarding, s.Page)
	assert.Empty(t, s.Identity.Email)
	assert.Empty(t, s.Wizard.TargetRole)
	assert.Empty(t, s.Document.Summary)
}
