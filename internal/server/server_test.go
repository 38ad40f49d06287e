package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerforge/resume-builder/internal/auth"
	"github.com/careerforge/resume-builder/internal/config"
	"github.com/careerforge/resume-builder/internal/flow"
	"github.com/careerforge/resume-builder/internal/render"
	"github.com/careerforge/resume-builder/internal/session"
	"github.com/careerforge/resume-builder/internal/usage"
)

type fakeText struct {
	fail bool
}

func (f *fakeText) OptimizeBulletPoint(ctx context.Context, role, rawText string) (string, error) {
	if f.fail {
		return "", fmt.Errorf("model unavailable")
	}
	return "Optimized: " + rawText, nil
}

func (f *fakeText) GenerateSummary(ctx context.Context, role, experienceLevel string, skillHints []string) (string, error) {
	if f.fail {
		return "", fmt.Errorf("model unavailable")
	}
	return "Generated summary for " + role, nil
}

func (f *fakeText) ChatWithContext(ctx context.Context, section, message, role string) (string, error) {
	if f.fail {
		return "", fmt.Errorf("model unavailable")
	}
	return "Advice about " + section, nil
}

type fakeAuth struct {
	exchanges int
}

func (f *fakeAuth) AuthorizationURL() string { return "https://provider.example/authorize" }
func (f *fakeAuth) ExchangeCode(ctx context.Context, code string) (string, error) {
	f.exchanges++
	if code != "good-code" {
		return "", &auth.ErrAuthFailed{Reason: "code rejected"}
	}
	return "dana@example.com", nil
}
func (f *fakeAuth) VerifyIdentityToken(token string) (*auth.IdentityClaims, error) {
	return nil, &auth.ErrAuthFailed{Reason: "unsupported in test"}
}

type fakeStats struct {
	report *usage.Report
}

func (f *fakeStats) Stats(ctx context.Context) (*usage.Report, error) {
	return f.report, nil
}

type testHarness struct {
	server *Server
	text   *fakeText
	auth   *fakeAuth
}

func newTestHarness(t *testing.T) *testHarness {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	admin := config.AdminConfig{BcryptCost: 10}
	hash, err := admin.HashPassword("sekrit")
	require.NoError(t, err)
	admin.PasswordHash = hash

	text := &fakeText{}
	authStub := &fakeAuth{}
	s := newServer(Deps{
		Store:    session.NewMemoryStore(),
		Nav:      flow.NewNavigator(authStub, nil),
		Text:     text,
		Exporter: render.NewExporter(&stubPDFRenderer{}),
		Usage:    &fakeStats{report: &usage.Report{TotalUsers: 2, Active24h: 1}},
		Admin:    admin,
	})
	return &testHarness{server: s, text: text, auth: authStub}
}

type stubPDFRenderer struct{}

func (stubPDFRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	return []byte("%PDF-1.7 stub"), nil
}

func (h *testHarness) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "10.0.0.1:54321"
	rec := httptest.NewRecorder()
	h.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (h *testHarness) view(t *testing.T, rec *httptest.ResponseRecorder) sessionView {
	t.Helper()
	var view sessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

// createSession makes a fresh session and returns its ID.
func (h *testHarness) createSession(t *testing.T) string {
	rec := h.do(t, "POST", "/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	return h.view(t, rec).ID
}

// toWizard walks a fresh session up to the wizard page as a guest.
func (h *testHarness) toWizard(t *testing.T, id string) {
	rec := h.do(t, "POST", "/sessions/"+id+"/auth/guest", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = h.do(t, "POST", "/sessions/"+id+"/role", map[string]string{"role": "Data Engineer"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = h.do(t, "POST", "/sessions/"+id+"/template", map[string]string{"template": "Modern Minimal"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	h := newTestHarness(t)
	rec := h.do(t, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestCreateAndGetSession(t *testing.T) {
	h := newTestHarness(t)
	id := h.createSession(t)

	rec := h.do(t, "GET", "/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := h.view(t, rec)
	assert.Equal(t, session.PageOnboarding, view.Page)
	assert.Equal(t, session.DefaultTemplate, view.Template)
}

func TestGetUnknownSession(t *testing.T) {
	h := newTestHarness(t)
	rec := h.do(t, "GET", "/sessions/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthURL(t *testing.T) {
	h := newTestHarness(t)
	rec := h.do(t, "GET", "/auth/url", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "provider.example")
}

func TestListTemplates(t *testing.T) {
	h := newTestHarness(t)
	rec := h.do(t, "GET", "/templates", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Templates []string `json:"templates"`
		Default   string   `json:"default"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, render.TemplateNames(), body.Templates)
	assert.Equal(t, session.DefaultTemplate, body.Default)
}

func TestAuthCallback(t *testing.T) {
	h := newTestHarness(t)
	id := h.createSession(t)

	rec := h.do(t, "POST", "/sessions/"+id+"/auth/callback", map[string]string{"code": "good-code"})
	require.Equal(t, http.StatusOK, rec.Code)
	view := h.view(t, rec)
	assert.Equal(t, session.PageRoleSelection, view.Page)
	assert.Equal(t, "dana@example.com", view.Identity.Email)
}

func TestAuthCallbackRejectedThenReplayed(t *testing.T) {
	h := newTestHarness(t)
	id := h.createSession(t)

	rec := h.do(t, "POST", "/sessions/"+id+"/auth/callback", map[string]string{"code": "bad-code"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The code was consumed even though the exchange failed. The replay finds
	// nothing pending and never reaches the provider a second time.
	rec = h.do(t, "POST", "/sessions/"+id+"/auth/callback", map[string]string{"code": "bad-code"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1, h.auth.exchanges)
}

func TestBackFromRoleSelection(t *testing.T) {
	h := newTestHarness(t)
	id := h.createSession(t)
	h.do(t, "POST", "/sessions/"+id+"/auth/guest", nil)

	rec := h.do(t, "POST", "/sessions/"+id+"/back", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, session.PageOnboarding, h.view(t, rec).Page)
}

func TestBackFromOnboardingConflicts(t *testing.T) {
	h := newTestHarness(t)
	id := h.createSession(t)

	rec := h.do(t, "POST", "/sessions/"+id+"/back", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestStepOutsideWizardConflicts(t *testing.T) {
	h := newTestHarness(t)
	id := h.createSession(t)

	rec := h.do(t, "POST", "/sessions/"+id+"/steps/contact", map[string]string{
		"first_name": "Dana", "last_name": "Rivera", "phone": "555-0100",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestStatsRequiresPassword(t *testing.T) {
	h := newTestHarness(t)

	rec := h.do(t, "GET", "/stats", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest("GET", "/stats", nil)
	req.RemoteAddr = "10.0.0.1:54321"
	req.Header.Set("X-Admin-Password", "sekrit")
	rec2 := httptest.NewRecorder()
	h.server.Handler().ServeHTTP(rec2, req)
	require.Equal(t, http.StatusOK, rec2.Code)
	assert.Contains(t, rec2.Body.String(), `"total_users":2`)
}

func TestCORSPreflights(t *testing.T) {
	h := newTestHarness(t)
	rec := h.do(t, "OPTIONS", "/sessions", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
