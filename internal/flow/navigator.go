// Package flow implements the top-level navigator: the coarse state machine
// above the wizard that drives onboarding, role and template selection, the
// wizard itself, and preview/export.
package flow

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/careerforge/resume-builder/internal/auth"
	"github.com/careerforge/resume-builder/internal/session"
	"github.com/careerforge/resume-builder/internal/types"
	"github.com/careerforge/resume-builder/internal/wizard"
)

// ErrInvalidTransition indicates a trigger that is not valid in the session's
// current page.
type ErrInvalidTransition struct {
	Page    session.Page
	Trigger string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("trigger %q is not valid on page %q", e.Trigger, e.Page)
}

// ErrCredentialConsumed indicates an auth code or token that this session has
// already used, e.g. a page refresh replaying the callback URL. The second
// attempt finds no pending credential and must not re-trigger authentication.
var ErrCredentialConsumed = errors.New("auth credential already consumed")

// ErrWizardIncomplete indicates a preview request before all sections are
// committed.
var ErrWizardIncomplete = errors.New("wizard sections are not complete")

// LoginRecorder records login events for analytics. Failures are
// persistence warnings: logged and swallowed, never surfaced.
type LoginRecorder interface {
	RecordLogin(ctx context.Context, email string) error
}

// Navigator owns the transitions into and out of the wizard.
type Navigator struct {
	auth  auth.Authenticator
	usage LoginRecorder
}

// NewNavigator creates a navigator. usage may be nil when analytics is
// disabled.
func NewNavigator(authenticator auth.Authenticator, usage LoginRecorder) *Navigator {
	return &Navigator{auth: authenticator, usage: usage}
}

// AuthorizationURL returns the provider URL for the redirect-based sign-in.
func (n *Navigator) AuthorizationURL() string {
	return n.auth.AuthorizationURL()
}

// ContinueAsGuest sets the placeholder guest identity and moves the session
// to role selection.
func (n *Navigator) ContinueAsGuest(ctx context.Context, s *session.Session) error {
	if s.Page != session.PageOnboarding {
		return &ErrInvalidTransition{Page: s.Page, Trigger: "guest"}
	}

	s.Identity = types.SessionIdentity{Email: auth.GuestEmail, IsGuest: true}
	n.recordLogin(ctx, s.Identity.Email)
	s.Page = session.PageRoleSelection
	return nil
}

// HandleAuthCallback consumes a one-time redirect code and, on a successful
// exchange, signs the session in and moves it to role selection. The code is
// marked consumed before the exchange so a refresh replaying it finds
// nothing pending; on failure the session stays at onboarding.
func (n *Navigator) HandleAuthCallback(ctx context.Context, s *session.Session, code string) error {
	if s.Page != session.PageOnboarding {
		return ErrCredentialConsumed
	}
	if !s.ConsumeCredential(code) {
		return ErrCredentialConsumed
	}

	email, err := n.auth.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}

	n.signIn(ctx, s, email)
	return nil
}

// HandleIdentityToken consumes a client-obtained identity token, verifies it
// server-side, and signs the session in. Same single-use semantics as the
// redirect code.
func (n *Navigator) HandleIdentityToken(ctx context.Context, s *session.Session, token string) error {
	if s.Page != session.PageOnboarding {
		return ErrCredentialConsumed
	}
	if !s.ConsumeCredential(token) {
		return ErrCredentialConsumed
	}

	claims, err := n.auth.VerifyIdentityToken(token)
	if err != nil {
		return err
	}

	n.signIn(ctx, s, claims.Email)
	return nil
}

func (n *Navigator) signIn(ctx context.Context, s *session.Session, email string) {
	s.Identity = types.SessionIdentity{Email: email}
	n.recordLogin(ctx, email)
	s.Page = session.PageRoleSelection
}

// SelectRole sets the target role and moves on to template selection. Wizard
// steps treat the role as read-only from here on.
func (n *Navigator) SelectRole(s *session.Session, role string) error {
	if s.Page != session.PageRoleSelection {
		return &ErrInvalidTransition{Page: s.Page, Trigger: "select role"}
	}

	s.Wizard.TargetRole = role
	s.Page = session.PageTemplateSelection
	return nil
}

// BackToOnboarding returns from role selection to onboarding.
func (n *Navigator) BackToOnboarding(s *session.Session) error {
	if s.Page != session.PageRoleSelection {
		return &ErrInvalidTransition{Page: s.Page, Trigger: "previous"}
	}
	s.Page = session.PageOnboarding
	return nil
}

// StartWizard records the chosen template (cosmetic only) and enters the
// wizard.
func (n *Navigator) StartWizard(s *session.Session, template string) error {
	if s.Page != session.PageTemplateSelection {
		return &ErrInvalidTransition{Page: s.Page, Trigger: "start"}
	}

	s.Template = template
	s.Page = session.PageWizard
	return nil
}

// BackToRoleSelection returns from template selection to role selection.
func (n *Navigator) BackToRoleSelection(s *session.Session) error {
	if s.Page != session.PageTemplateSelection {
		return &ErrInvalidTransition{Page: s.Page, Trigger: "back"}
	}
	s.Page = session.PageRoleSelection
	return nil
}

// GoToPreview leaves the wizard once every section is committed.
func (n *Navigator) GoToPreview(s *session.Session) error {
	if s.Page != session.PageWizard {
		return &ErrInvalidTransition{Page: s.Page, Trigger: "preview"}
	}
	if s.Wizard.CurrentStep < len(wizard.Steps) {
		return ErrWizardIncomplete
	}
	s.Page = session.PagePreview
	return nil
}

// EditResume re-enters the wizard at the first step, keeping the committed
// document.
func (n *Navigator) EditResume(s *session.Session) error {
	if s.Page != session.PagePreview {
		return &ErrInvalidTransition{Page: s.Page, Trigger: "edit"}
	}

	wizard.NewEngine(&s.Wizard, &s.Document, nil).Reset()
	s.Page = session.PageWizard
	return nil
}

// Restart clears all session state and returns to onboarding.
func (n *Navigator) Restart(s *session.Session) error {
	if s.Page != session.PagePreview {
		return &ErrInvalidTransition{Page: s.Page, Trigger: "restart"}
	}
	s.Restart()
	return nil
}

// recordLogin forwards the login event to the usage store. Analytics must
// never block or fail the user-facing flow.
func (n *Navigator) recordLogin(ctx context.Context, email string) {
	if n.usage == nil {
		return
	}
	if err := n.usage.RecordLogin(ctx, email); err != nil {
		log.Printf("[usage] failed to record login for %s: %v", email, err)
	}
}
