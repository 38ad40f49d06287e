// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"errors"
	"net/http"

	"github.com/careerforge/resume-builder/internal/auth"
	"github.com/careerforge/resume-builder/internal/flow"
	"github.com/careerforge/resume-builder/internal/schemas"
	"github.com/careerforge/resume-builder/internal/session"
	"github.com/careerforge/resume-builder/internal/wizard"
)

// ErrSessionNotFound indicates the session ID does not exist
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return "session not found: " + e.ID
}

// ErrAdminRequired indicates a missing or wrong admin password
type ErrAdminRequired struct{}

func (e *ErrAdminRequired) Error() string {
	return "admin password required"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound      *ErrSessionNotFound
		adminRequired *ErrAdminRequired
		authFailed    *auth.ErrAuthFailed
		badTransition *flow.ErrInvalidTransition
		wrongStep     *wizard.ErrWrongStep
		validation    *wizard.ErrValidation
		docInvalid    *schemas.ValidationError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &adminRequired), errors.As(err, &authFailed):
		return http.StatusUnauthorized
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &docInvalid):
		return http.StatusUnprocessableEntity
	case errors.As(err, &badTransition), errors.As(err, &wrongStep):
		return http.StatusConflict
	case errors.Is(err, flow.ErrCredentialConsumed),
		errors.Is(err, flow.ErrWizardIncomplete),
		errors.Is(err, wizard.ErrComplete),
		errors.Is(err, session.ErrVersionConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
