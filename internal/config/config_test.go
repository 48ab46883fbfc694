package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	require.Equal(t, DefaultMaxDepth, cfg.MaxDepth)
	require.Equal(t, DefaultIgnoreDirs, cfg.IgnoreDirs)
	require.Equal(t, DefaultCaps, cfg.Caps)
	require.Equal(t, DefaultDeductions, cfg.Deductions)
	require.Equal(t, 100, cfg.Caps.Sum())
}

func TestLoad_OverridesFromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
max_depth: 4
caps:
  claude_md: 30
  module_docs: 20
deductions:
  grace_days: 14
`))
	require.NoError(t, err)

	require.Equal(t, 4, cfg.MaxDepth)
	require.Equal(t, 30, cfg.Caps.ClaudeMd)
	require.Equal(t, 20, cfg.Caps.ModuleDocs)
	// Untouched keys keep their defaults.
	require.Equal(t, DefaultCaps.Freshness, cfg.Caps.Freshness)
	require.Equal(t, 14, cfg.Deductions.GraceDays)
	require.Equal(t, DefaultDeductions.CutoffCurrent, cfg.Deductions.CutoffCurrent)
}

func TestLoad_RejectsBrokenCapBudget(t *testing.T) {
	_, err := Load(writeConfig(t, `
caps:
  claude_md: 90
`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "sum to 100")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultMaxDepth, cfg.MaxDepth)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "x"), expandPath("~/x"))
	require.Equal(t, "/abs/path", expandPath("/abs/path"))
}
