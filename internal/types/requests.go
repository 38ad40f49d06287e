package types

import "github.com/go-playground/validator/v10"

// ContactRequest carries the contact-information step submission.
// Email is intentionally absent: it comes from the session identity.
type ContactRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1"`
	LastName  string `json:"last_name" validate:"required,min=1"`
	Phone     string `json:"phone" validate:"required,min=1"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Location  string `json:"location,omitempty"`
}

// GenerateSummaryRequest carries the rough input for AI summary generation.
type GenerateSummaryRequest struct {
	RoughInput string `json:"rough_input" validate:"required,min=1"`
}

// SaveSummaryRequest commits the (possibly user-edited) summary draft.
type SaveSummaryRequest struct {
	Summary string `json:"summary" validate:"required,min=1"`
}

// SkillsRequest carries selected skills plus freeform comma-separated additions.
// At least one resulting skill is required; that check belongs to the step
// because it depends on parsing the freeform text.
type SkillsRequest struct {
	Selected []string `json:"selected,omitempty"`
	Custom   string   `json:"custom,omitempty"`
}

// AddExperienceRequest carries one experience entry to optimize and append.
type AddExperienceRequest struct {
	Role        string `json:"role" validate:"required,min=1"`
	Company     string `json:"company" validate:"required,min=1"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

// AddProjectRequest carries one project entry to optimize and append.
type AddProjectRequest struct {
	Title       string `json:"title" validate:"required,min=1"`
	Tech        string `json:"tech,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationRequest carries the single-entry education step submission.
type EducationRequest struct {
	Degree string `json:"degree" validate:"required,min=1"`
	School string `json:"school" validate:"required,min=1"`
	Year   string `json:"year,omitempty"`
	Grade  string `json:"grade,omitempty"`
}

// CertificationsRequest carries newline-separated freeform certifications.
type CertificationsRequest struct {
	Text string `json:"text,omitempty"`
}

// ChatRequest carries one user message for the step-scoped coaching chat.
type ChatRequest struct {
	Message string `json:"message" validate:"required,min=1"`
}

// SelectRoleRequest sets the target role during role selection.
type SelectRoleRequest struct {
	Role string `json:"role" validate:"required,min=1"`
}

// SelectTemplateRequest sets the chosen template (cosmetic only).
type SelectTemplateRequest struct {
	Template string `json:"template" validate:"required,min=1"`
}

// IdentityTokenRequest carries a client-obtained identity token for
// server-side verification.
type IdentityTokenRequest struct {
	Token string `json:"token" validate:"required,min=1"`
}

// Validate validates the ContactRequest using the validator.
func (r *ContactRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the GenerateSummaryRequest using the validator.
func (r *GenerateSummaryRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the SaveSummaryRequest using the validator.
func (r *SaveSummaryRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the AddExperienceRequest using the validator.
func (r *AddExperienceRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the AddProjectRequest using the validator.
func (r *AddProjectRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the EducationRequest using the validator.
func (r *EducationRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the ChatRequest using the validator.
func (r *ChatRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the SelectRoleRequest using the validator.
func (r *SelectRoleRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the SelectTemplateRequest using the validator.
func (r *SelectTemplateRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the IdentityTokenRequest using the validator.
func (r *IdentityTokenRequest) Validate() error {
	return validator.New().Struct(r)
}
