package ai

import (
	"context"
	"strings"
	"time"

	"github.com/careerforge/resume-builder/internal/prompts"
)

// promptFile holds the embedded templates for all engine call sites.
const promptFile = "builder.json"

// Engine wraps a TextService with the resume-domain prompt builders.
// It owns the per-call timeout; callers trap any returned error and surface
// it as inline text instead of failing the session.
type Engine struct {
	service TextService
	timeout time.Duration
}

// NewEngine creates an Engine over the given text service.
func NewEngine(service TextService, timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &Engine{service: service, timeout: timeout}
}

// OptimizeBulletPoint rewrites a rough experience/project description into an
// ATS-friendly bullet for the target role.
func (e *Engine) OptimizeBulletPoint(ctx context.Context, role, rawText string) (string, error) {
	system := prompts.Format(prompts.MustGet(promptFile, "optimize_bullet_system"), map[string]string{
		"Role": role,
	})
	return e.generate(ctx, rawText, system, TierStandard)
}

// GenerateSummary drafts a professional summary from the target role,
// experience level, and skill hints.
func (e *Engine) GenerateSummary(ctx context.Context, role, experienceLevel string, skillHints []string) (string, error) {
	prompt := prompts.Format(prompts.MustGet(promptFile, "summary_prompt"), map[string]string{
		"Role":            role,
		"ExperienceLevel": experienceLevel,
		"Skills":          strings.Join(skillHints, ", "),
	})
	system := prompts.MustGet(promptFile, "summary_system")
	return e.generate(ctx, prompt, system, TierStandard)
}

// ChatWithContext answers one coaching-chat message, scoped to the named
// wizard section and the target role.
func (e *Engine) ChatWithContext(ctx context.Context, section, message, role string) (string, error) {
	system := prompts.Format(prompts.MustGet(promptFile, "chat_system"), map[string]string{
		"Section": section,
		"Role":    role,
	})
	return e.generate(ctx, message, system, TierLite)
}

func (e *Engine) generate(ctx context.Context, prompt, system string, tier ModelTier) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.service.Generate(ctx, prompt, system, tier)
}
