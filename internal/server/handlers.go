package server

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/careerforge/resume-builder/internal/flow"
	"github.com/careerforge/resume-builder/internal/render"
	"github.com/careerforge/resume-builder/internal/session"
	"github.com/careerforge/resume-builder/internal/types"
)

type validatable interface {
	Validate() error
}

// decodeRequest decodes and validates a JSON request body.
func decodeRequest(r *http.Request, req validatable) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return req.Validate()
}

// withSession loads the session, applies fn, and persists the result. Every
// mutating endpoint funnels through here so the load-act-store cycle stays
// in one place.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(sess *session.Session) error) {
	id := r.PathValue("id")

	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	if sess == nil {
		s.failResponse(w, &ErrSessionNotFound{ID: id})
		return
	}

	if err := fn(sess); err != nil {
		s.failResponse(w, err)
		return
	}

	if err := s.store.Update(r.Context(), sess); err != nil {
		s.failResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, viewOf(sess))
}

// withAuthSession is withSession for the credential endpoints. A failed
// exchange still burns the one-time code or token, so the session is
// persisted before the error is reported.
func (s *Server) withAuthSession(w http.ResponseWriter, r *http.Request, fn func(sess *session.Session) error) {
	id := r.PathValue("id")

	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	if sess == nil {
		s.failResponse(w, &ErrSessionNotFound{ID: id})
		return
	}

	fnErr := fn(sess)
	if err := s.store.Update(r.Context(), sess); err != nil {
		if fnErr != nil {
			log.Printf("Error persisting session %s after auth failure: %v", sess.ID, err)
		} else {
			fnErr = err
		}
	}
	if fnErr != nil {
		s.failResponse(w, fnErr)
		return
	}

	s.jsonResponse(w, http.StatusOK, viewOf(sess))
}

// readSession loads a session without persisting changes, for GET endpoints.
func (s *Server) readSession(w http.ResponseWriter, r *http.Request) *session.Session {
	id := r.PathValue("id")

	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.failResponse(w, err)
		return nil
	}
	if sess == nil {
		s.failResponse(w, &ErrSessionNotFound{ID: id})
		return nil
	}
	return sess
}

// handleCreateSession starts a new session at onboarding.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := session.New()
	if err := s.store.Create(r.Context(), sess); err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, viewOf(sess))
}

// handleGetSession returns the current state snapshot.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if sess := s.readSession(w, r); sess != nil {
		s.jsonResponse(w, http.StatusOK, viewOf(sess))
	}
}

// handleAuthURL returns the provider redirect URL for sign-in.
func (s *Server) handleAuthURL(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"url": s.nav.AuthorizationURL()})
}

// handleTemplates lists the selectable resume templates.
func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"templates": render.TemplateNames(),
		"default":   session.DefaultTemplate,
	})
}

func (s *Server) handleGuest(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session.Session) error {
		return s.nav.ContinueAsGuest(r.Context(), sess)
	})
}

func (s *Server) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		s.errorResponse(w, http.StatusBadRequest, "code is required")
		return
	}
	s.withAuthSession(w, r, func(sess *session.Session) error {
		return s.nav.HandleAuthCallback(r.Context(), sess, req.Code)
	})
}

func (s *Server) handleIdentityToken(w http.ResponseWriter, r *http.Request) {
	var req types.IdentityTokenRequest
	if err := decodeRequest(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withAuthSession(w, r, func(sess *session.Session) error {
		return s.nav.HandleIdentityToken(r.Context(), sess, req.Token)
	})
}

func (s *Server) handleSelectRole(w http.ResponseWriter, r *http.Request) {
	var req types.SelectRoleRequest
	if err := decodeRequest(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withSession(w, r, func(sess *session.Session) error {
		return s.nav.SelectRole(sess, req.Role)
	})
}

func (s *Server) handleSelectTemplate(w http.ResponseWriter, r *http.Request) {
	var req types.SelectTemplateRequest
	if err := decodeRequest(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withSession(w, r, func(sess *session.Session) error {
		return s.nav.StartWizard(sess, req.Template)
	})
}

// handleBack steps backward through the pre-wizard pages.
func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session.Session) error {
		switch sess.Page {
		case session.PageRoleSelection:
			return s.nav.BackToOnboarding(sess)
		case session.PageTemplateSelection:
			return s.nav.BackToRoleSelection(sess)
		default:
			return &flow.ErrInvalidTransition{Page: sess.Page, Trigger: "back"}
		}
	})
}

// handleFinishWizard moves a completed wizard to the preview page.
func (s *Server) handleFinishWizard(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session.Session) error {
		return s.nav.GoToPreview(sess)
	})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session.Session) error {
		return s.nav.EditResume(sess)
	})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session.Session) error {
		return s.nav.Restart(sess)
	})
}

// handlePreview renders the resume HTML for the preview page.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess := s.readSession(w, r)
	if sess == nil {
		return
	}
	if sess.Page != session.PagePreview {
		s.failResponse(w, &flow.ErrInvalidTransition{Page: sess.Page, Trigger: "preview"})
		return
	}

	html, err := render.RenderHTML(sess.Document, sess.Template)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		log.Printf("Error writing preview: %v", err)
	}
}

// handleExportPDF prints the resume to PDF and streams it as a download.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	sess := s.readSession(w, r)
	if sess == nil {
		return
	}
	if sess.Page != session.PagePreview {
		s.failResponse(w, &flow.ErrInvalidTransition{Page: sess.Page, Trigger: "export"})
		return
	}

	pdf, err := s.exporter.ExportPDF(r.Context(), sess.Document, sess.Template)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	filename := render.Filename(sess.Identity.Email, "pdf")
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("Error writing PDF: %v", err)
	}
}

// handleExportText produces the plain-text rendition as a download.
func (s *Server) handleExportText(w http.ResponseWriter, r *http.Request) {
	sess := s.readSession(w, r)
	if sess == nil {
		return
	}
	if sess.Page != session.PagePreview {
		s.failResponse(w, &flow.ErrInvalidTransition{Page: sess.Page, Trigger: "export"})
		return
	}

	text, err := s.exporter.ExportText(sess.Document, sess.Template)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	filename := render.Filename(sess.Identity.Email, "txt")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(text)); err != nil {
		log.Printf("Error writing text export: %v", err)
	}
}

// handleExportBundle produces every rendition in one pass and streams them
// as a zip archive.
func (s *Server) handleExportBundle(w http.ResponseWriter, r *http.Request) {
	sess := s.readSession(w, r)
	if sess == nil {
		return
	}
	if sess.Page != session.PagePreview {
		s.failResponse(w, &flow.ErrInvalidTransition{Page: sess.Page, Trigger: "export"})
		return
	}

	bundle, err := s.exporter.ExportBundle(r.Context(), sess.Document, sess.Template)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := []struct {
		name string
		data []byte
	}{
		{render.Filename(sess.Identity.Email, "html"), []byte(bundle.HTML)},
		{render.Filename(sess.Identity.Email, "pdf"), bundle.PDF},
		{render.Filename(sess.Identity.Email, "txt"), []byte(bundle.Text)},
	}
	for _, entry := range entries {
		f, err := zw.Create(entry.name)
		if err != nil {
			s.failResponse(w, err)
			return
		}
		if _, err := f.Write(entry.data); err != nil {
			s.failResponse(w, err)
			return
		}
	}
	if err := zw.Close(); err != nil {
		s.failResponse(w, err)
		return
	}

	filename := render.Filename(sess.Identity.Email, "zip")
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing bundle: %v", err)
	}
}

// handleStats returns the usage report, protected by the admin password.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !s.admin.Enabled() || !s.admin.VerifyPassword(r.Header.Get("X-Admin-Password")) {
		s.failResponse(w, &ErrAdminRequired{})
		return
	}
	if s.usage == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "usage analytics is not configured")
		return
	}

	report, err := s.usage.Stats(r.Context())
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}
