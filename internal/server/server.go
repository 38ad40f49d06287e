// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/careerforge/resume-builder/internal/ai"
	"github.com/careerforge/resume-builder/internal/auth"
	"github.com/careerforge/resume-builder/internal/config"
	"github.com/careerforge/resume-builder/internal/flow"
	"github.com/careerforge/resume-builder/internal/render"
	"github.com/careerforge/resume-builder/internal/server/ratelimit"
	"github.com/careerforge/resume-builder/internal/session"
	"github.com/careerforge/resume-builder/internal/usage"
	"github.com/careerforge/resume-builder/internal/wizard"
)

// StatsProvider reports aggregated usage; nil when analytics is disabled.
type StatsProvider interface {
	Stats(ctx context.Context) (*usage.Report, error)
}

// Deps bundles the services the server routes requests to.
type Deps struct {
	Store    session.Store
	Nav      *flow.Navigator
	Text     wizard.TextEngine
	Exporter *render.Exporter
	Usage    StatsProvider
	Admin    config.AdminConfig
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	rateLimiter *ratelimit.Limiter

	store    session.Store
	nav      *flow.Navigator
	text     wizard.TextEngine
	exporter *render.Exporter
	usage    StatsProvider
	admin    config.AdminConfig

	aiClient ai.TextService
	usageDB  *usage.Store
}

// New creates a server wired to real backends from the loaded configuration.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	aiClient, err := ai.NewClient(ctx, ai.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	engine := ai.NewEngine(aiClient, ai.DefaultCallTimeout)

	var store session.Store
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		store = session.NewRedisStore(redis.NewClient(opts), 0)
	} else {
		store = session.NewMemoryStore()
	}

	var usageStore *usage.Store
	var stats StatsProvider
	var logins flow.LoginRecorder
	if cfg.DatabaseURL != "" {
		usageStore, err = usage.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect usage store: %w", err)
		}
		stats = usageStore
		logins = usageStore
	}

	nav := flow.NewNavigator(auth.New(cfg.OAuth), logins)

	s := newServer(Deps{
		Store:    store,
		Nav:      nav,
		Text:     engine,
		Exporter: render.NewExporter(render.NewChromedpRenderer()),
		Usage:    stats,
		Admin:    cfg.Admin,
	})
	s.aiClient = aiClient
	s.usageDB = usageStore
	s.httpServer.Addr = cfg.ListenAddr
	return s, nil
}

// newServer builds the router and middleware around the given dependencies.
func newServer(deps Deps) *Server {
	s := &Server{
		store:    deps.Store,
		nav:      deps.Nav,
		text:     deps.Text,
		exporter: deps.Exporter,
		usage:    deps.Usage,
		admin:    deps.Admin,
	}
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /auth/url", s.handleAuthURL)
	mux.HandleFunc("GET /templates", s.handleTemplates)
	mux.HandleFunc("GET /stats", s.handleStats)

	// Session lifecycle
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)

	// Top-level navigation
	mux.HandleFunc("POST /sessions/{id}/auth/guest", s.handleGuest)
	mux.HandleFunc("POST /sessions/{id}/auth/callback", s.handleAuthCallback)
	mux.HandleFunc("POST /sessions/{id}/auth/token", s.handleIdentityToken)
	mux.HandleFunc("POST /sessions/{id}/role", s.handleSelectRole)
	mux.HandleFunc("POST /sessions/{id}/template", s.handleSelectTemplate)
	mux.HandleFunc("POST /sessions/{id}/back", s.handleBack)
	mux.HandleFunc("POST /sessions/{id}/finish", s.handleFinishWizard)
	mux.HandleFunc("POST /sessions/{id}/edit", s.handleEdit)
	mux.HandleFunc("POST /sessions/{id}/restart", s.handleRestart)

	// Wizard steps
	mux.HandleFunc("POST /sessions/{id}/steps/contact", s.handleContact)
	mux.HandleFunc("POST /sessions/{id}/steps/summary/generate", s.handleGenerateSummary)
	mux.HandleFunc("POST /sessions/{id}/steps/summary", s.handleSaveSummary)
	mux.HandleFunc("POST /sessions/{id}/steps/skills", s.handleSkills)
	mux.HandleFunc("POST /sessions/{id}/steps/experience", s.handleAddExperience)
	mux.HandleFunc("POST /sessions/{id}/steps/experience/finish", s.handleFinishExperience)
	mux.HandleFunc("POST /sessions/{id}/steps/projects", s.handleAddProject)
	mux.HandleFunc("POST /sessions/{id}/steps/projects/finish", s.handleFinishProjects)
	mux.HandleFunc("POST /sessions/{id}/steps/education", s.handleEducation)
	mux.HandleFunc("POST /sessions/{id}/steps/certifications", s.handleCertifications)
	mux.HandleFunc("POST /sessions/{id}/steps/certifications/skip", s.handleSkipCertifications)
	mux.HandleFunc("POST /sessions/{id}/steps/back", s.handleStepBack)
	mux.HandleFunc("POST /sessions/{id}/chat", s.handleChat)

	// Preview and export
	mux.HandleFunc("GET /sessions/{id}/preview", s.handlePreview)
	mux.HandleFunc("GET /sessions/{id}/export/pdf", s.handleExportPDF)
	mux.HandleFunc("GET /sessions/{id}/export/txt", s.handleExportText)
	mux.HandleFunc("GET /sessions/{id}/export/bundle", s.handleExportBundle)

	s.httpServer = &http.Server{
		Addr:         ":8080",
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF export can take a while
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the full middleware stack for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.aiClient != nil {
		if err := s.aiClient.Close(); err != nil {
			log.Printf("Error closing AI client: %v", err)
		}
	}
	if s.usageDB != nil {
		s.usageDB.Close()
	}
	if err := s.store.Close(); err != nil {
		log.Printf("Error closing session store: %v", err)
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Admin-Password")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
				"error":       "rate_limit_exceeded",
				"retry_after": int(info.RetryAfter.Seconds()),
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID extracts the client identifier (IP) from the request.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failResponse maps an error to its HTTP status and writes it
func (s *Server) failResponse(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}
