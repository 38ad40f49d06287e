package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerforge/resume-builder/internal/types"
)

func completeDocument() types.ResumeDocument {
	return types.ResumeDocument{
		Contact: types.Contact{
			FirstName: "Dana",
			LastName:  "Rivera",
			Phone:     "555-0100",
			Email:     "dana@example.com",
		},
		Summary: "Data engineer with five years of pipeline experience.",
		Skills:  []string{"SQL", "Python"},
		Experience: []types.ExperienceEntry{
			{Role: "Data Engineer", Company: "Acme", Description: "Built ETL pipelines."},
		},
		Projects: []types.ProjectEntry{
			{Title: "Warehouse Migration", Tech: "Snowflake"},
		},
		Education: []types.EducationEntry{
			{Degree: "BSc Computer Science", School: "State University"},
		},
		Certifications: []string{"AWS Solutions Architect"},
	}
}

func TestValidateCompleteDocument(t *testing.T) {
	assert.NoError(t, ValidateDocument(completeDocument()))
}

func TestValidateEmptyCertificationsAllowed(t *testing.T) {
	doc := completeDocument()
	doc.Certifications = []string{}

	assert.NoError(t, ValidateDocument(doc))
}

func TestValidateMissingContactFields(t *testing.T) {
	doc := completeDocument()
	doc.Contact.Phone = ""

	err := ValidateDocument(doc)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotEmpty(t, verr.Errors)
	assert.Contains(t, err.Error(), "phone")
}

func TestValidateEmptySummary(t *testing.T) {
	doc := completeDocument()
	doc.Summary = ""

	var verr *ValidationError
	require.ErrorAs(t, ValidateDocument(doc), &verr)
}

func TestValidateEmptySkills(t *testing.T) {
	doc := completeDocument()
	doc.Skills = []string{}

	var verr *ValidationError
	require.ErrorAs(t, ValidateDocument(doc), &verr)
}

func TestValidateExperienceMissingCompany(t *testing.T) {
	doc := completeDocument()
	doc.Experience[0].Company = ""

	var verr *ValidationError
	require.ErrorAs(t, ValidateDocument(doc), &verr)
	assert.Contains(t, verr.Error(), "company")
}

func TestValidateJSONStringBadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": "nope"}`, `{}`)

	var lerr *SchemaLoadError
	require.ErrorAs(t, err, &lerr)
}
