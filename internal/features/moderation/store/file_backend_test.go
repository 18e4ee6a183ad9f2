package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-report-bot/internal/features/moderation/models"
)

func TestFileBackendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	backend := NewFileBackend(path)
	ctx := context.Background()

	s := New()
	s.Mutate(42, "Иван", func(u *models.UserRecord) {
		u.Warnings = 2
		u.Category = models.CategoryHooligan
	})

	require.NoError(t, backend.Save(ctx, s.Snapshot()))

	snap, err := backend.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, []int64{42}, snap.RegisteredUsers)
	require.Contains(t, snap.Users, "42")
	assert.Equal(t, "Иван", snap.Users["42"].Name)
	assert.Equal(t, 2, snap.Users["42"].Warnings)
	require.NotNil(t, snap.Users["42"].Category)
	assert.Equal(t, "hooligan", *snap.Users["42"].Category)
}

func TestFileBackendMissingFile(t *testing.T) {
	backend := NewFileBackend(filepath.Join(t.TempDir(), "missing.json"))
	snap, err := backend.Load(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, snap)
}

func TestFileBackendMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	snap, err := NewFileBackend(path).Load(context.Background())
	assert.Error(t, err)
	assert.Nil(t, snap)
}
