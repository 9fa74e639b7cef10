package checks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, rel string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, nil, 0o644))
}

func TestStructureChecker(t *testing.T) {
	t.Run("all present", func(t *testing.T) {
		dir := t.TempDir()
		for _, p := range RequiredPaths {
			touch(t, dir, p)
		}
		r, err := (&StructureChecker{Dir: dir}).Check(context.Background())
		require.NoError(t, err)
		assert.True(t, r.Passed)
		require.Len(t, r.Items, len(RequiredPaths))
		for i, item := range r.Items {
			assert.True(t, item.OK)
			assert.Equal(t, RequiredPaths[i], item.Text)
		}
	})

	t.Run("one missing", func(t *testing.T) {
		dir := t.TempDir()
		for _, p := range RequiredPaths {
			if p != "README.md" {
				touch(t, dir, p)
			}
		}
		r, err := (&StructureChecker{Dir: dir}).Check(context.Background())
		require.NoError(t, err)
		assert.False(t, r.Passed)
		assert.Len(t, r.Items, len(RequiredPaths))
		assert.Equal(t, map[string]any{"missing": []string{"README.md"}}, r.Data)
		assert.Equal(t, "1 of 7 project files missing", r.Summary)
	})

	t.Run("empty dir", func(t *testing.T) {
		r, err := (&StructureChecker{Dir: t.TempDir(), Paths: []string{"a", "b/c"}}).Check(context.Background())
		require.NoError(t, err)
		assert.False(t, r.Passed)
		assert.False(t, r.Items[0].OK)
		assert.False(t, r.Items[1].OK)
	})
}
