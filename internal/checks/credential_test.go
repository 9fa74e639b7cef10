package checks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spboyer/elevenlabs-mcp/internal/config"
)

func envOf(values map[string]string) func(string) string {
	return func(k string) string { return values[k] }
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{key: "sk_1234567890abcdef", want: "sk_12345...cdef"},
		{key: "abcdefghijklm", want: "abcdefgh...jklm"},
		{key: "abcdefghijkl", want: "***"},
		{key: "short", want: "***"},
		{key: "", want: "***"},
		{key: "ключ_доступа_сервиса", want: "ключ_дос...виса"},
		{key: "ключ_доступа", want: "***"},
		{key: "🔑🔑🔑🔑🔑🔑🔑🔑_abcd", want: "🔑🔑🔑🔑🔑🔑🔑🔑...abcd"},
	}
	for _, tt := range tests {
		got := MaskKey(tt.key)
		assert.Equal(t, tt.want, got, "key %q", tt.key)
		assert.True(t, utf8.ValidString(got), "key %q", tt.key)
	}
}

func TestCredentialChecker(t *testing.T) {
	t.Run("from environment", func(t *testing.T) {
		c := &CredentialChecker{Dir: t.TempDir(), Getenv: envOf(map[string]string{"ELEVENLABS_API_KEY": "sk_1234567890abcdef"})}
		r, err := c.Check(context.Background())
		require.NoError(t, err)
		assert.True(t, r.Passed)
		assert.Equal(t, "ELEVENLABS_API_KEY is set (sk_12345...cdef)", r.Summary)
		assert.NotContains(t, r.Summary, "567890ab")
	})

	t.Run("from env file without touching the environment", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ELEVENLABS_API_KEY=file_key_0123456789\n"), 0o644))
		t.Setenv("ELEVENLABS_API_KEY", "")

		c := &CredentialChecker{Dir: dir, Getenv: envOf(nil)}
		r, err := c.Check(context.Background())
		require.NoError(t, err)
		assert.True(t, r.Passed)
		require.Len(t, r.Items, 2)
		assert.Equal(t, Item{OK: true, Text: ".env file found"}, r.Items[0])
		assert.Equal(t, "ELEVENLABS_API_KEY is set (file_key...6789)", r.Items[1].Text)
		assert.Empty(t, os.Getenv("ELEVENLABS_API_KEY"))
	})

	t.Run("environment wins over file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ELEVENLABS_API_KEY=file_key_0123456789\n"), 0o644))
		c := &CredentialChecker{Dir: dir, Getenv: envOf(map[string]string{"ELEVENLABS_API_KEY": "shortkey"})}
		r, err := c.Check(context.Background())
		require.NoError(t, err)
		assert.True(t, r.Passed)
		assert.Equal(t, "ELEVENLABS_API_KEY is set (***)", r.Items[1].Text)
	})

	t.Run("missing key lists both remediations", func(t *testing.T) {
		c := &CredentialChecker{Dir: t.TempDir(), Getenv: envOf(nil)}
		r, err := c.Check(context.Background())
		require.NoError(t, err)
		assert.False(t, r.Passed)
		require.Len(t, r.Hints, 2)
		assert.Contains(t, r.Hints[0], "export ELEVENLABS_API_KEY=")
		assert.Contains(t, r.Hints[1], "cp .env.example .env")
	})

	t.Run("custom env file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "local.env"), []byte("ELEVENLABS_API_KEY=local_key_0123456789\n"), 0o644))
		c := &CredentialChecker{Dir: dir, EnvFile: "local.env", Getenv: envOf(nil)}
		r, err := c.Check(context.Background())
		require.NoError(t, err)
		assert.True(t, r.Passed)
		assert.Equal(t, "local.env file found", r.Items[0].Text)
	})
	t.Run("unreadable env file fails even with the key exported", func(t *testing.T) {
		dir := t.TempDir()
		envPath := filepath.Join(dir, ".env")
		require.NoError(t, os.WriteFile(envPath, []byte("ELEVENLABS_API_KEY='unterminated\n"), 0o644))
		_, _, readErr := config.ReadEnvFile(envPath)
		require.Error(t, readErr)

		c := &CredentialChecker{
			Dir:       dir,
			Getenv:    envOf(map[string]string{"ELEVENLABS_API_KEY": "sk_1234567890abcdef"}),
			ConfigErr: errors.Join(readErr),
		}
		r, err := c.Check(context.Background())
		require.NoError(t, err)
		assert.False(t, r.Passed)
		require.Len(t, r.Items, 3)
		assert.Equal(t, ".env file found", r.Items[0].Text)
		assert.False(t, r.Items[1].OK)
		assert.Contains(t, r.Items[1].Text, "cannot read .env")
		assert.Contains(t, r.Items[1].Text, "parsing "+envPath)
		assert.Equal(t, Item{OK: true, Text: "ELEVENLABS_API_KEY is set (sk_12345...cdef)"}, r.Items[2])
		assert.Contains(t, r.Summary, "1 error(s)")
		require.Len(t, r.Hints, 1)
		assert.Contains(t, r.Hints[0], "init --force")
	})

	t.Run("configuration errors are listed", func(t *testing.T) {
		c := &CredentialChecker{
			Dir:    t.TempDir(),
			Getenv: envOf(map[string]string{"ELEVENLABS_API_KEY": "sk_1234567890abcdef"}),
			ConfigErr: errors.Join(
				errors.New(`invalid ELEVENLABS_TIMEOUT_SECONDS "soon"`),
				errors.Join(errors.New("invalid .elevenlabs-mcp.yaml: unknown_key")),
			),
		}
		r, err := c.Check(context.Background())
		require.NoError(t, err)
		assert.False(t, r.Passed)
		require.Len(t, r.Items, 3)
		assert.Equal(t, Item{OK: false, Text: `configuration error: invalid ELEVENLABS_TIMEOUT_SECONDS "soon"`}, r.Items[0])
		assert.Equal(t, Item{OK: false, Text: "configuration error: invalid .elevenlabs-mcp.yaml: unknown_key"}, r.Items[1])
		assert.True(t, r.Items[2].OK)
		assert.Contains(t, r.Summary, "2 error(s)")
	})
}
