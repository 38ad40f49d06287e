package types

// Speaker identifies the author of a chat message.
type Speaker string

// Speaker constants for chat history entries.
const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// ChatMessage is one turn of the step-scoped coaching chat.
type ChatMessage struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// SessionIdentity records who the session belongs to. Set once by the
// authenticator or the guest path, read by contact prefill and usage logging.
type SessionIdentity struct {
	Email   string `json:"email,omitempty"`
	IsGuest bool   `json:"is_guest"`
}

// WizardState tracks progress through the section wizard. CurrentStep is
// 0-based and clamped to [0, step count]; reaching the step count is the
// terminal "all sections complete" sub-state.
//
// ChatHistory is scoped to the current step: it is cleared by the step-change
// guard before any new message is appended. The draft fields are transient
// per-step buffers, discarded on step change and committed to the document
// only by an explicit save/finish action.
type WizardState struct {
	CurrentStep int           `json:"current_step"`
	TargetRole  string        `json:"target_role,omitempty"`
	ChatHistory []ChatMessage `json:"chat_history,omitempty"`

	SummaryDraft    string            `json:"summary_draft,omitempty"`
	HasSummaryDraft bool              `json:"has_summary_draft,omitempty"`
	ExperienceDraft []ExperienceEntry `json:"experience_draft,omitempty"`
	ProjectDraft    []ProjectEntry    `json:"project_draft,omitempty"`
}
