// Package types provides type definitions for structured data used throughout the resume-builder system.
package types

// Contact holds the contact information section of a resume.
// Email is filled from the verified session identity, never from user input.
type Contact struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Location  string `json:"location,omitempty"`
}

// ExperienceEntry is a single work-experience record. Description holds
// AI-optimized text once the entry has been added.
type ExperienceEntry struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

// ProjectEntry is a single project record.
type ProjectEntry struct {
	Title       string `json:"title"`
	Tech        string `json:"tech,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationEntry is a single education record.
type EducationEntry struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year,omitempty"`
	Grade  string `json:"grade,omitempty"`
}

// ResumeDocument is the canonical, serializable record of one user's resume
// content. Every section exists at all times; sections are replaced as a
// whole, never patched field by field.
type ResumeDocument struct {
	Contact        Contact           `json:"contact"`
	Summary        string            `json:"summary"`
	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Projects       []ProjectEntry    `json:"projects"`
	Education      []EducationEntry  `json:"education"`
	Certifications []string          `json:"certifications"`
}
