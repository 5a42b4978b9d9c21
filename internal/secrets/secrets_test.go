// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSecret(t *testing.T, dir, name, value string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value), 0o600))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeSecret(t, dir, YouTubeAPIKey, "AIza-test-key\n")
	writeSecret(t, dir, "other-secret", "  value  ")
	writeSecret(t, dir, "empty-secret", "   \n")
	writeSecret(t, dir, ".gitignore", "*")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	secrets, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "AIza-test-key", secrets[YouTubeAPIKey], "values are trimmed")
	assert.Equal(t, "value", secrets["other-secret"])
	assert.NotContains(t, secrets, "empty-secret", "blank files are skipped")
	assert.NotContains(t, secrets, ".gitignore", "dotfiles are skipped")
	assert.NotContains(t, secrets, "subdir")
}

func TestLoadMissingDir(t *testing.T) {
	secrets, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, secrets)
}

func TestGet(t *testing.T) {
	secrets := map[string]string{YouTubeAPIKey: "from-file"}

	assert.Equal(t, "from-file", Get(secrets, YouTubeAPIKey, ""))
	assert.Equal(t, "from-env", Get(secrets, YouTubeAPIKey, "from-env"), "explicit config wins over key files")
	assert.Equal(t, "", Get(secrets, "unknown", ""))
}
