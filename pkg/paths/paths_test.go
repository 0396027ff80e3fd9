package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHonoursOverrides(t *testing.T) {
	configDir := t.TempDir()
	stateDir := t.TempDir()
	t.Setenv(EnvConfigDir, configDir)
	t.Setenv(EnvStateDir, stateDir)

	p := New()

	assert.Equal(t, configDir, p.ConfigDir())
	assert.Equal(t, stateDir, p.StateDir())
	assert.Equal(t, filepath.Join(stateDir, "rigup.lock"), p.LockPath())
	assert.Equal(t, filepath.Join(stateDir, "rigup.log"), p.LogFilePath())
}

func TestNewDefaultsToXDG(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	t.Setenv(EnvStateDir, "")

	p := New()

	assert.Equal(t, "rigup", filepath.Base(p.ConfigDir()))
	assert.Equal(t, "rigup", filepath.Base(p.StateDir()))
}

func TestConfigFilePrefersToml(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	p := New()
	assert.Empty(t, p.ConfigFile())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("run: {}\n"), 0644))
	assert.Equal(t, filepath.Join(dir, "config.yaml"), p.ConfigFile())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[run]\n"), 0644))
	assert.Equal(t, filepath.Join(dir, "config.toml"), p.ConfigFile())
}

func TestExpandHome(t *testing.T) {
	t.Setenv(EnvHome, "/home/dev")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", "/home/dev"},
		{"~/.local/bin/gh", "/home/dev/.local/bin/gh"},
		{"~other/bin", "~other/bin"},
		{"/usr/bin/git", "/usr/bin/git"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}
