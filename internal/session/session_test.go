package session

import (
	"context"
	"testing"

	"github.com/careerforge/resume-builder/internal/document"
	"github.com/careerforge/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	s := New()

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, PageOnboarding, s.Page)
	assert.Equal(t, DefaultTemplate, s.Template)
	assert.Equal(t, document.New(), s.Document)
	assert.False(t, s.Identity.IsGuest)
	assert.Empty(t, s.Identity.Email)
}

func TestConsumeCredential(t *testing.T) {
	s := New()

	assert.True(t, s.ConsumeCredential("code-123"))
	assert.False(t, s.ConsumeCredential("code-123"), "replayed credential must find nothing pending")
	assert.True(t, s.ConsumeCredential("code-456"))
}

func TestRestart(t *testing.T) {
	s := New()
	s.Page = PagePreview
	s.Identity = types.SessionIdentity{Email: "ada@example.com"}
	s.Wizard.TargetRole = "Data Analyst"
	s.Wizard.CurrentStep = 7
	s.Document.Summary = "done"
	s.ConsumedAuth = []string{"code-123"}
	s.Version = 4

	id := s.ID
	s.Restart()

	assert.Equal(t, id, s.ID)
	assert.Equal(t, int64(4), s.Version, "store version survives restart")
	assert.Equal(t, PageOnboarding, s.Page)
	assert.Equal(t, types.SessionIdentity{}, s.Identity)
	assert.Equal(t, types.WizardState{}, s.Wizard)
	assert.Equal(t, document.New(), s.Document)
	assert.Empty(t, s.ConsumedAuth)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("create then get round-trips", func(t *testing.T) {
		store := NewMemoryStore()
		s := New()
		s.Wizard.TargetRole = "SRE"
		require.NoError(t, store.Create(ctx, s))
		assert.Equal(t, int64(1), s.Version)

		got, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "SRE", got.Wizard.TargetRole)
		assert.Equal(t, int64(1), got.Version)
	})

	t.Run("duplicate create rejected", func(t *testing.T) {
		store := NewMemoryStore()
		s := New()
		require.NoError(t, store.Create(ctx, s))
		assert.ErrorIs(t, store.Create(ctx, s), ErrAlreadyExists)
	})

	t.Run("get unknown id returns nil without error", func(t *testing.T) {
		store := NewMemoryStore()
		got, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("update increments version", func(t *testing.T) {
		store := NewMemoryStore()
		s := New()
		require.NoError(t, store.Create(ctx, s))

		s.Page = PageRoleSelection
		require.NoError(t, store.Update(ctx, s))
		assert.Equal(t, int64(2), s.Version)

		got, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, PageRoleSelection, got.Page)
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		store := NewMemoryStore()
		s := New()
		require.NoError(t, store.Create(ctx, s))

		stale, err := store.Get(ctx, s.ID)
		require.NoError(t, err)

		s.Page = PageRoleSelection
		require.NoError(t, store.Update(ctx, s))

		stale.Page = PageWizard
		assert.ErrorIs(t, store.Update(ctx, stale), ErrVersionConflict)
	})

	t.Run("update after delete is not found", func(t *testing.T) {
		store := NewMemoryStore()
		s := New()
		require.NoError(t, store.Create(ctx, s))
		require.NoError(t, store.Delete(ctx, s.ID))
		assert.ErrorIs(t, store.Update(ctx, s), ErrNotFound)
	})

	t.Run("stored state isolated from caller mutations", func(t *testing.T) {
		store := NewMemoryStore()
		s := New()
		require.NoError(t, store.Create(ctx, s))

		s.Document.Skills = append(s.Document.Skills, "Go")

		got, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Document.Skills)
	})
}
