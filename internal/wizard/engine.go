// Package wizard implements the section wizard state machine: an ordered
// sequence of named steps that validate input, write committed sections into
// the resume document, and host the step-scoped coaching chat.
package wizard

import (
	"context"
	"fmt"

	"github.com/careerforge/resume-builder/internal/ai"
	"github.com/careerforge/resume-builder/internal/types"
)

// Step names one unit of the wizard.
type Step string

// The fixed, ordered step list.
const (
	StepContact        Step = "Contact Information"
	StepSummary        Step = "Professional Summary"
	StepSkills         Step = "Technical Skills"
	StepExperience     Step = "Experience"
	StepProjects       Step = "Projects"
	StepEducation      Step = "Education"
	StepCertifications Step = "Certifications"
)

// Steps is the wizard's step order. CurrentStep == len(Steps) is the terminal
// "all sections complete" sub-state.
var Steps = []Step{
	StepContact,
	StepSummary,
	StepSkills,
	StepExperience,
	StepProjects,
	StepEducation,
	StepCertifications,
}

// ErrComplete indicates a step action arrived after all sections completed;
// only the transition to preview remains available.
var ErrComplete = fmt.Errorf("all sections complete")

// ErrWrongStep indicates an action for a step other than the current one.
type ErrWrongStep struct {
	Expected Step
	Current  Step
}

func (e *ErrWrongStep) Error() string {
	return fmt.Sprintf("action belongs to step %q but current step is %q", e.Expected, e.Current)
}

// ErrValidation indicates required step input is missing. The step re-displays
// with a warning; no state is mutated.
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// TextEngine is the subset of the AI engine the wizard calls. Every call site
// traps failures itself; no AI error escapes a step handler.
type TextEngine interface {
	OptimizeBulletPoint(ctx context.Context, role, rawText string) (string, error)
	GenerateSummary(ctx context.Context, role, experienceLevel string, skillHints []string) (string, error)
	ChatWithContext(ctx context.Context, section, message, role string) (string, error)
}

var _ TextEngine = (*ai.Engine)(nil)

// Engine drives one session's wizard. It operates directly on the
// session-owned state and document, so callers persist the session after each
// action.
type Engine struct {
	state *types.WizardState
	doc   *types.ResumeDocument
	text  TextEngine
}

// NewEngine creates a wizard engine over session-owned state.
func NewEngine(state *types.WizardState, doc *types.ResumeDocument, text TextEngine) *Engine {
	return &Engine{state: state, doc: doc, text: text}
}

// Current returns the current step name, or false once all sections are
// complete.
func (e *Engine) Current() (Step, bool) {
	if e.Complete() {
		return "", false
	}
	return Steps[e.state.CurrentStep], true
}

// Complete reports whether every section has been committed.
func (e *Engine) Complete() bool {
	return e.state.CurrentStep >= len(Steps)
}

// Advance moves the step pointer forward by one.
func (e *Engine) Advance() {
	e.setStep(e.state.CurrentStep + 1)
}

// Rewind moves the step pointer back by one.
func (e *Engine) Rewind() {
	e.setStep(e.state.CurrentStep - 1)
}

// Reset returns the wizard to the first step, e.g. for edit-after-preview.
// Committed document sections are untouched.
func (e *Engine) Reset() {
	e.setStep(0)
}

// setStep is the transition guard: every change of the current step name
// passes through here, clearing the step-scoped chat history and draft
// buffers regardless of which trigger caused the change.
func (e *Engine) setStep(idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(Steps) {
		idx = len(Steps)
	}
	if idx == e.state.CurrentStep {
		return
	}
	e.state.CurrentStep = idx
	e.state.ChatHistory = nil
	e.state.SummaryDraft = ""
	e.state.HasSummaryDraft = false
	e.state.ExperienceDraft = nil
	e.state.ProjectDraft = nil
}

// require checks the action targets the current step.
func (e *Engine) require(step Step) error {
	current, ok := e.Current()
	if !ok {
		return ErrComplete
	}
	if current != step {
		return &ErrWrongStep{Expected: step, Current: current}
	}
	return nil
}

// Chat appends the user's message to the step-scoped history, asks the AI
// coach for a reply, and appends that too. It never mutates the document or
// the step pointer; AI failure becomes the assistant's visible reply.
func (e *Engine) Chat(ctx context.Context, message string) (string, error) {
	current, ok := e.Current()
	if !ok {
		return "", ErrComplete
	}

	e.state.ChatHistory = append(e.state.ChatHistory, types.ChatMessage{
		Speaker: types.SpeakerUser,
		Text:    message,
	})

	reply, err := e.text.ChatWithContext(ctx, string(current), message, e.state.TargetRole)
	if err != nil {
		reply = errorText(err)
	}

	e.state.ChatHistory = append(e.state.ChatHistory, types.ChatMessage{
		Speaker: types.SpeakerAssistant,
		Text:    reply,
	})
	return reply, nil
}

// errorText converts an AI failure into the inline placeholder shown in place
// of generated content.
func errorText(err error) string {
	return fmt.Sprintf("Error generating content: %v", err)
}
