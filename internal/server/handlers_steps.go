package server

import (
	"encoding/json"
	"net/http"

	"github.com/careerforge/resume-builder/internal/flow"
	"github.com/careerforge/resume-builder/internal/session"
	"github.com/careerforge/resume-builder/internal/types"
	"github.com/careerforge/resume-builder/internal/wizard"
)

// wizardFor builds a wizard engine over the session state. Step endpoints
// are only valid while the session is on the wizard page.
func (s *Server) wizardFor(sess *session.Session) (*wizard.Engine, error) {
	if sess.Page != session.PageWizard {
		return nil, &flow.ErrInvalidTransition{Page: sess.Page, Trigger: "wizard step"}
	}
	return wizard.NewEngine(&sess.Wizard, &sess.Document, s.text), nil
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req types.ContactRequest
	if err := decodeRequest(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withSession(w, r, func(sess *session.Session) error {
		eng, err := s.wizardFor(sess)
		if err != nil {
			return err
		}
		return eng.SubmitContact(req, sess.Identity.Email)
	})
}

func (s *Server) handleGenerateSummary(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateSummaryRequest
	if err := decodeRequest(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withSession(w, r, func(sess *session.Session) error {
		eng, err := s.wizardFor(sess)
		if err != nil {
			return err
		}
		// AI failures surface as placeholder draft text, not errors.
		_, err = eng.GenerateSummary(r.Context(), req.RoughInput)
		return err
	})
}

func (s *Server) handleSaveSummary(w http.ResponseWriter, r *http.Request) {
	var req types.SaveSummaryRequest
	if err := decodeRequest(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withSession(w, r, func(sess *session.Session) error {
		eng, err := s.wizardFor(sess)
		if err != nil {
			return err
		}
		return eng.SaveSummary(req.Summary)
	})
}

func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	var req types.SkillsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	s.withSession(w, r, func(sess *session.Session) error {
		eng, err := s.wizardFor(sess)
		if err != nil {
			return err
		}
		return eng.SubmitSkills(req)
	})
}

func (s *Server) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	var req types.AddExperienceRequest
	if err := decodeRequest(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withSession(w, r, func(sess *session.Session) error {
		eng, err := s.wizardFor(sess)
		if err != nil {
			return err
		}
		_, err = eng.AddExperience(r.Context(), req)
		return err
	})
}

func (s *Server) handleFinishExperience(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session.Session) error {
		eng, err := s.wizardFor(sess)
		if err != nil {
			return err
		}
		return eng.FinishExperience()
	})
}

func (s *Server) handleAddProject(w http.ResponseWriter, r *http.Request) {
	var req types.AddProjectRequest
	if err := decodeRequest(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withSession(w, r, func(sess *session.Session) error {
		eng, err := s.wizardFor(sess)
		if err != nil {
			return err
		}
		_, err = eng.AddProject(r.Context(), req)
		return err
	})
}

func (s *Server) handleFinishProjects(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session.Session) error {
		eng, err := s.wizardFor(sess)
		if err != nil {
			return err
		}
		return eng.FinishProjects()
	})
}

func (s *Server) handleEducation(w http.ResponseWriter, r *http.Request) {
	var req types.EducationRequest
	if err := decodeRequest(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withSession(w, r, func(sess *session.Session) error {
		eng, err := s.wizardFor(sess)
		if err != nil {
			return err
		}
		return eng.SubmitEducation(req)
	})
}

func (s *Server) handleCertifications(w http.ResponseWriter, r *http.Request) {
	var req types.CertificationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	s.withSession(w, r, func(sess *session.Session) error {
		eng, err := s.wizardFor(sess)
		if err != nil {
			return err
		}
		return eng.SubmitCertifications(req.Text)
	})
}

func (s *Server) handleSkipCertifications(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session.Session) error {
		eng, err := s.wizardFor(sess)
		if err != nil {
			return err
		}
		return eng.SkipCertifications()
	})
}

// handleStepBack rewinds the wizard one step; committed sections stay.
func (s *Server) handleStepBack(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session.Session) error {
		eng, err := s.wizardFor(sess)
		if err != nil {
			return err
		}
		eng.Rewind()
		return nil
	})
}

// handleChat relays one user message to the step-scoped coach. The reply
// lands in the chat history of the returned state.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := decodeRequest(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withSession(w, r, func(sess *session.Session) error {
		eng, err := s.wizardFor(sess)
		if err != nil {
			return err
		}
		_, err = eng.Chat(r.Context(), req.Message)
		return err
	})
}
