// Package document provides the resume document model: a fixed set of named
// sections that can only be replaced whole, never extended with new keys.
package document

import (
	"fmt"

	"github.com/careerforge/resume-builder/internal/types"
)

// Section names the seven fixed resume sections.
type Section string

// The fixed section keys. UpdateSection rejects anything else.
const (
	SectionContact        Section = "contact"
	SectionSummary        Section = "summary"
	SectionSkills         Section = "skills"
	SectionExperience     Section = "experience"
	SectionProjects       Section = "projects"
	SectionEducation      Section = "education"
	SectionCertifications Section = "certifications"
)

// ErrUnknownSection indicates an UpdateSection call with a name outside the
// fixed section set.
type ErrUnknownSection struct {
	Name Section
}

func (e *ErrUnknownSection) Error() string {
	return fmt.Sprintf("unknown resume section: %s", e.Name)
}

// ErrSectionType indicates a value whose type does not match the section.
type ErrSectionType struct {
	Name Section
	Got  any
}

func (e *ErrSectionType) Error() string {
	return fmt.Sprintf("wrong value type %T for resume section %s", e.Got, e.Name)
}

// New returns an empty resume document with every section initialized, so the
// full key set exists from the first read.
func New() types.ResumeDocument {
	return types.ResumeDocument{
		Skills:         []string{},
		Experience:     []types.ExperienceEntry{},
		Projects:       []types.ProjectEntry{},
		Education:      []types.EducationEntry{},
		Certifications: []string{},
	}
}

// UpdateSection replaces the named section's value. The section must be one
// of the seven fixed keys and the value must match the section's type; the
// document is left untouched on error.
func UpdateSection(doc *types.ResumeDocument, name Section, value any) error {
	switch name {
	case SectionContact:
		v, ok := value.(types.Contact)
		if !ok {
			return &ErrSectionType{Name: name, Got: value}
		}
		doc.Contact = v
	case SectionSummary:
		v, ok := value.(string)
		if !ok {
			return &ErrSectionType{Name: name, Got: value}
		}
		doc.Summary = v
	case SectionSkills:
		v, ok := value.([]string)
		if !ok {
			return &ErrSectionType{Name: name, Got: value}
		}
		doc.Skills = v
	case SectionExperience:
		v, ok := value.([]types.ExperienceEntry)
		if !ok {
			return &ErrSectionType{Name: name, Got: value}
		}
		doc.Experience = v
	case SectionProjects:
		v, ok := value.([]types.ProjectEntry)
		if !ok {
			return &ErrSectionType{Name: name, Got: value}
		}
		doc.Projects = v
	case SectionEducation:
		v, ok := value.([]types.EducationEntry)
		if !ok {
			return &ErrSectionType{Name: name, Got: value}
		}
		doc.Education = v
	case SectionCertifications:
		v, ok := value.([]string)
		if !ok {
			return &ErrSectionType{Name: name, Got: value}
		}
		doc.Certifications = v
	default:
		return &ErrUnknownSection{Name: name}
	}
	return nil
}

// Read returns a copy of the full current document. Slices are copied so
// callers cannot mutate committed sections through the returned value.
func Read(doc *types.ResumeDocument) types.ResumeDocument {
	out := *doc
	out.Skills = append([]string{}, doc.Skills...)
	out.Experience = append([]types.ExperienceEntry{}, doc.Experience...)
	out.Projects = append([]types.ProjectEntry{}, doc.Projects...)
	out.Education = append([]types.EducationEntry{}, doc.Education...)
	out.Certifications = append([]string{}, doc.Certifications...)
	return out
}
