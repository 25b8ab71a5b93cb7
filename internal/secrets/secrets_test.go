// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paperclip/pkg/types"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  Secrets
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeyLibraryToken, "  tok_abc123  \n")
				writeFile(t, dir, KeyNCBIAPIKey, "ncbi789")
				writeFile(t, dir, KeyCrossrefMailto, "lib@example.org\n")
				return dir
			},
			want: Secrets{
				KeyLibraryToken:   "tok_abc123",
				KeyNCBIAPIKey:     "ncbi789",
				KeyCrossrefMailto: "lib@example.org",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: Secrets{},
		},
		{
			name: "skips empty files dotfiles and directories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeyLibraryToken, "valid")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				writeFile(t, dir, ".hidden-key", "secret")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: Secrets{KeyLibraryToken: "valid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t), zerolog.Nop())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read files without permission bits")
	}
	dir := t.TempDir()
	writeFile(t, dir, "good-key", "value123")

	badPath := filepath.Join(dir, "bad-key")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	var logs bytes.Buffer
	got, err := Load(dir, zerolog.New(&logs))
	require.NoError(t, err)
	assert.Equal(t, "value123", got["good-key"])
	assert.NotContains(t, got, "bad-key")
	assert.Contains(t, logs.String(), "bad-key")
}

func TestApply(t *testing.T) {
	s := Secrets{
		KeyLibraryToken:   "from-file",
		KeyNCBIAPIKey:     "ncbi",
		KeyCrossrefMailto: "lib@example.org",
	}
	cfg := types.DefaultConfig()
	cfg.PubMed.APIKey = "from-env"

	s.Apply(&cfg)

	assert.Equal(t, "from-file", cfg.Library.Token)
	assert.Equal(t, "from-env", cfg.PubMed.APIKey, "explicit values win")
	assert.Equal(t, "lib@example.org", cfg.Crossref.Mailto)
	assert.Equal(t, []string{KeyCrossrefMailto, KeyLibraryToken, KeyNCBIAPIKey}, s.Keys())
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
