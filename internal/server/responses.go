package server

import (
	"github.com/careerforge/resume-builder/internal/session"
	"github.com/careerforge/resume-builder/internal/types"
	"github.com/careerforge/resume-builder/internal/wizard"
)

// sessionView is the state snapshot returned by every session action. The
// client renders whatever page and step it names.
type sessionView struct {
	ID       string               `json:"id"`
	Page     session.Page         `json:"page"`
	Template string               `json:"template"`
	Identity identityView         `json:"identity"`
	Wizard   wizardView           `json:"wizard"`
	Document types.ResumeDocument `json:"document"`
}

type identityView struct {
	Email   string `json:"email,omitempty"`
	IsGuest bool   `json:"is_guest"`
}

type wizardView struct {
	CurrentStep  int                 `json:"current_step"`
	StepName     string              `json:"step_name,omitempty"`
	Complete     bool                `json:"complete"`
	TargetRole   string              `json:"target_role,omitempty"`
	SummaryDraft string              `json:"summary_draft,omitempty"`
	HasDraft     bool                `json:"has_draft"`
	ChatHistory  []types.ChatMessage `json:"chat_history"`
}

func viewOf(s *session.Session) sessionView {
	view := sessionView{
		ID:       s.ID,
		Page:     s.Page,
		Template: s.Template,
		Identity: identityView{Email: s.Identity.Email, IsGuest: s.Identity.IsGuest},
		Wizard: wizardView{
			CurrentStep:  s.Wizard.CurrentStep,
			Complete:     s.Wizard.CurrentStep >= len(wizard.Steps),
			TargetRole:   s.Wizard.TargetRole,
			SummaryDraft: s.Wizard.SummaryDraft,
			HasDraft:     s.Wizard.HasSummaryDraft,
			ChatHistory:  s.Wizard.ChatHistory,
		},
		Document: s.Document,
	}
	if view.Wizard.ChatHistory == nil {
		view.Wizard.ChatHistory = []types.ChatMessage{}
	}
	if idx := s.Wizard.CurrentStep; idx >= 0 && idx < len(wizard.Steps) {
		view.Wizard.StepName = string(wizard.Steps[idx])
	}
	return view
}
