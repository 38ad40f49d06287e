package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService records the last call and returns canned output.
type fakeService struct {
	lastPrompt string
	lastSystem string
	lastTier   ModelTier
	reply      string
	err        error
}

func (f *fakeService) Generate(_ context.Context, prompt, system string, tier ModelTier) (string, error) {
	f.lastPrompt = prompt
	f.lastSystem = system
	f.lastTier = tier
	return f.reply, f.err
}

func (f *fakeService) Close() error { return nil }

func TestEngineOptimizeBulletPoint(t *testing.T) {
	fake := &fakeService{reply: "Led migration of billing services."}
	engine := NewEngine(fake, time.Second)

	out, err := engine.OptimizeBulletPoint(context.Background(), "Software Engineer", "did billing stuff")
	require.NoError(t, err)
	assert.Equal(t, "Led migration of billing services.", out)
	assert.Equal(t, "did billing stuff", fake.lastPrompt)
	assert.Contains(t, fake.lastSystem, "Target Role: Software Engineer")
	assert.Equal(t, TierStandard, fake.lastTier)
}

func TestEngineGenerateSummary(t *testing.T) {
	fake := &fakeService{reply: "Seasoned analyst."}
	engine := NewEngine(fake, time.Second)

	out, err := engine.GenerateSummary(context.Background(), "Data Analyst", "entry-mid level", []string{"SQL", "Python"})
	require.NoError(t, err)
	assert.Equal(t, "Seasoned analyst.", out)
	assert.Contains(t, fake.lastPrompt, "Data Analyst")
	assert.Contains(t, fake.lastPrompt, "entry-mid level")
	assert.Contains(t, fake.lastPrompt, "SQL, Python")
	assert.Contains(t, fake.lastSystem, "professional summary")
}

func TestEngineChatWithContext(t *testing.T) {
	fake := &fakeService{reply: "Focus on measurable outcomes."}
	engine := NewEngine(fake, time.Second)

	out, err := engine.ChatWithContext(context.Background(), "Experience", "what should I write?", "SRE")
	require.NoError(t, err)
	assert.Equal(t, "Focus on measurable outcomes.", out)
	assert.Equal(t, "what should I write?", fake.lastPrompt)
	assert.Contains(t, fake.lastSystem, "'Experience' section")
	assert.Contains(t, fake.lastSystem, "SRE")
	assert.Equal(t, TierLite, fake.lastTier)
}

func TestEnginePropagatesServiceError(t *testing.T) {
	fake := &fakeService{err: errors.New("model unavailable")}
	engine := NewEngine(fake, time.Second)

	_, err := engine.GenerateSummary(context.Background(), "SRE", "senior", nil)
	assert.Error(t, err)
}
