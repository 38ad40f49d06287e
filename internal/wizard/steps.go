package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/careerforge/resume-builder/internal/document"
	"github.com/careerforge/resume-builder/internal/types"
)

// defaultExperienceLevel is sent with every summary generation; the flow
// never asks the user for seniority.
const defaultExperienceLevel = "entry-mid level"

// SubmitContact validates and commits the contact section, then advances.
// The email always comes from the verified session identity.
func (e *Engine) SubmitContact(req types.ContactRequest, email string) error {
	if err := e.require(StepContact); err != nil {
		return err
	}
	if req.FirstName == "" || req.LastName == "" || req.Phone == "" {
		return &ErrValidation{Message: "name and phone are required"}
	}

	contact := types.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     email,
		LinkedIn:  req.LinkedIn,
		Location:  req.Location,
	}
	if err := document.UpdateSection(e.doc, document.SectionContact, contact); err != nil {
		return err
	}
	e.Advance()
	return nil
}

// GenerateSummary asks the AI for a summary draft from the user's rough input
// and stores it separately from the committed summary. Generating again
// overwrites the previous draft. AI failure produces a visible error
// placeholder as the draft; the committed summary is untouched.
func (e *Engine) GenerateSummary(ctx context.Context, roughInput string) (string, error) {
	if err := e.require(StepSummary); err != nil {
		return "", err
	}
	if strings.TrimSpace(roughInput) == "" {
		return "", &ErrValidation{Message: "some input is required"}
	}

	draft, err := e.text.GenerateSummary(ctx, e.state.TargetRole, defaultExperienceLevel, []string{roughInput})
	if err != nil {
		draft = errorText(err)
	}
	e.state.SummaryDraft = draft
	e.state.HasSummaryDraft = true
	return draft, nil
}

// SaveSummary commits the (possibly user-edited) summary text and advances.
// A draft must have been generated first.
func (e *Engine) SaveSummary(summary string) error {
	if err := e.require(StepSummary); err != nil {
		return err
	}
	if !e.state.HasSummaryDraft {
		return &ErrValidation{Message: "generate a summary before saving"}
	}
	if strings.TrimSpace(summary) == "" {
		return &ErrValidation{Message: "summary is empty"}
	}

	if err := document.UpdateSection(e.doc, document.SectionSummary, summary); err != nil {
		return err
	}
	e.Advance()
	return nil
}

// SubmitSkills combines the selection with parsed freeform additions,
// selected-first then freeform in entry order, and commits. Duplicates are
// preserved, empty tokens dropped; at least one resulting skill is required.
func (e *Engine) SubmitSkills(req types.SkillsRequest) error {
	if err := e.require(StepSkills); err != nil {
		return err
	}

	skills := append([]string{}, req.Selected...)
	skills = append(skills, splitAndTrim(req.Custom, ",")...)
	if len(skills) == 0 {
		return &ErrValidation{Message: "at least one skill is required"}
	}

	if err := document.UpdateSection(e.doc, document.SectionSkills, skills); err != nil {
		return err
	}
	e.Advance()
	return nil
}

// AddExperience optimizes the rough description and appends the finished
// entry to the step's draft list. Entries can only be appended, never edited
// or removed. A blank description is replaced by a synthesized fallback so
// the AI never receives an empty prompt.
func (e *Engine) AddExperience(ctx context.Context, req types.AddExperienceRequest) (types.ExperienceEntry, error) {
	if err := e.require(StepExperience); err != nil {
		return types.ExperienceEntry{}, err
	}
	if req.Role == "" || req.Company == "" {
		return types.ExperienceEntry{}, &ErrValidation{Message: "job title and company are required"}
	}

	rough := req.Description
	if strings.TrimSpace(rough) == "" {
		rough = fmt.Sprintf("%s at %s", req.Role, req.Company)
	}

	optimized, err := e.text.OptimizeBulletPoint(ctx, req.Role, rough)
	if err != nil {
		optimized = errorText(err)
	}

	entry := types.ExperienceEntry{
		Role:        req.Role,
		Company:     req.Company,
		Duration:    req.Duration,
		Description: optimized,
	}
	e.state.ExperienceDraft = append(e.state.ExperienceDraft, entry)
	return entry, nil
}

// FinishExperience commits the accumulated experience entries and advances.
func (e *Engine) FinishExperience() error {
	if err := e.require(StepExperience); err != nil {
		return err
	}

	entries := append([]types.ExperienceEntry{}, e.state.ExperienceDraft...)
	if err := document.UpdateSection(e.doc, document.SectionExperience, entries); err != nil {
		return err
	}
	e.Advance()
	return nil
}

// AddProject optimizes the project description against the target role and
// appends the entry to the draft list. A blank description falls back to the
// title.
func (e *Engine) AddProject(ctx context.Context, req types.AddProjectRequest) (types.ProjectEntry, error) {
	if err := e.require(StepProjects); err != nil {
		return types.ProjectEntry{}, err
	}
	if req.Title == "" {
		return types.ProjectEntry{}, &ErrValidation{Message: "project title is required"}
	}

	rough := req.Description
	if strings.TrimSpace(rough) == "" {
		rough = req.Title
	}

	optimized, err := e.text.OptimizeBulletPoint(ctx, e.state.TargetRole, rough)
	if err != nil {
		optimized = errorText(err)
	}

	entry := types.ProjectEntry{
		Title:       req.Title,
		Tech:        req.Tech,
		Description: optimized,
	}
	e.state.ProjectDraft = append(e.state.ProjectDraft, entry)
	return entry, nil
}

// FinishProjects commits the accumulated project entries and advances.
func (e *Engine) FinishProjects() error {
	if err := e.require(StepProjects); err != nil {
		return err
	}

	entries := append([]types.ProjectEntry{}, e.state.ProjectDraft...)
	if err := document.UpdateSection(e.doc, document.SectionProjects, entries); err != nil {
		return err
	}
	e.Advance()
	return nil
}

// SubmitEducation commits the single education entry as a one-element
// sequence and advances. The type stays a sequence for future multiplicity.
func (e *Engine) SubmitEducation(req types.EducationRequest) error {
	if err := e.require(StepEducation); err != nil {
		return err
	}
	if req.Degree == "" || req.School == "" {
		return &ErrValidation{Message: "degree and school are required"}
	}

	entries := []types.EducationEntry{{
		Degree: req.Degree,
		School: req.School,
		Year:   req.Year,
		Grade:  req.Grade,
	}}
	if err := document.UpdateSection(e.doc, document.SectionEducation, entries); err != nil {
		return err
	}
	e.Advance()
	return nil
}

// SubmitCertifications splits newline-separated freeform text, trims, drops
// empties, commits, and advances.
func (e *Engine) SubmitCertifications(text string) error {
	if err := e.require(StepCertifications); err != nil {
		return err
	}

	certs := splitAndTrim(text, "\n")
	if err := document.UpdateSection(e.doc, document.SectionCertifications, certs); err != nil {
		return err
	}
	e.Advance()
	return nil
}

// SkipCertifications commits an empty sequence and advances.
func (e *Engine) SkipCertifications() error {
	if err := e.require(StepCertifications); err != nil {
		return err
	}

	if err := document.UpdateSection(e.doc, document.SectionCertifications, []string{}); err != nil {
		return err
	}
	e.Advance()
	return nil
}

// splitAndTrim splits on the separator, trims whitespace, and drops empty
// tokens, preserving entry order and duplicates.
func splitAndTrim(s, sep string) []string {
	out := []string{}
	for _, token := range strings.Split(s, sep) {
		token = strings.TrimSpace(token)
		if token != "" {
			out = append(out, token)
		}
	}
	return out
}
