// Package session provides the session-scoped context object that owns all
// mutable per-user state, plus pluggable stores for persisting it between
// actions.
package session

import (
	"time"

	"github.com/careerforge/resume-builder/internal/document"
	"github.com/careerforge/resume-builder/internal/types"
	"github.com/google/uuid"
)

// Page names a macro-state of the top-level navigator.
type Page string

// The navigator pages. Restart is a transition from preview back to
// onboarding, not a page of its own.
const (
	PageOnboarding        Page = "onboarding"
	PageRoleSelection     Page = "role_selection"
	PageTemplateSelection Page = "template_selection"
	PageWizard            Page = "wizard"
	PagePreview           Page = "preview"
)

// DefaultTemplate is used until the user picks one; the choice is cosmetic.
const DefaultTemplate = "Classic Professional"

// Session is the explicit session-scoped context passed to every component.
// There are no ambient globals: the document, wizard state, and identity all
// live here, and each HTTP action loads, mutates, and persists exactly one
// Session.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// Version increases monotonically for optimistic locking in shared stores.
	Version int64 `json:"version"`

	Page     Page                  `json:"page"`
	Template string                `json:"template"`
	Identity types.SessionIdentity `json:"identity"`
	Wizard   types.WizardState     `json:"wizard"`
	Document types.ResumeDocument  `json:"document"`

	// ConsumedAuth records auth codes/tokens already used by this session so a
	// refresh replaying the same credential finds nothing pending.
	ConsumedAuth []string `json:"consumed_auth,omitempty"`
}

// New creates a fresh session at onboarding with an initialized document.
func New() *Session {
	return &Session{
		ID:       uuid.NewString(),
		Page:     PageOnboarding,
		Template: DefaultTemplate,
		Document: document.New(),
	}
}

// ConsumeCredential marks an auth code or token as used. It returns false if
// the credential was already consumed; consumption happens exactly once,
// before any exchange is attempted.
func (s *Session) ConsumeCredential(credential string) bool {
	for _, used := range s.ConsumedAuth {
		if used == credential {
			return false
		}
	}
	s.ConsumedAuth = append(s.ConsumedAuth, credential)
	return true
}

// Restart wipes every piece of per-user state and returns the session to
// onboarding, keeping only its ID.
func (s *Session) Restart() {
	fresh := New()
	fresh.ID = s.ID
	fresh.CreatedAt = s.CreatedAt
	fresh.Version = s.Version
	*s = *fresh
}
