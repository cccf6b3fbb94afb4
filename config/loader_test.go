package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoaderDefaults(t *testing.T) {
	loader := NewLoader(nil).WithDirs(t.TempDir(), t.TempDir())
	cfg, err := loader.Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoaderLayering(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	work := filepath.Join(project, "sub", "dir")
	require.NoError(t, os.MkdirAll(work, 0755))

	writeFile(t, filepath.Join(home, UserConfigDir, UserConfigFile), "dialect: legacy\nencoding: latin-1\nlog_level: debug\n")
	writeFile(t, filepath.Join(project, ProjectConfigFile), "encoding: cp1252\n")
	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	writeFile(t, explicit, "log_level: error\n")

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg, err := NewLoader(logger).WithDirs(home, work).Load(explicit)
	require.NoError(t, err)

	assert.Equal(t, "legacy", cfg.Dialect, "user layer")
	assert.Equal(t, "cp1252", cfg.Encoding, "project layer found upward")
	assert.Equal(t, "error", cfg.LogLevel, "explicit file wins")
	assert.Contains(t, logs.String(), "Loaded project config")
}

func TestLoaderExplicitFileMissing(t *testing.T) {
	loader := NewLoader(nil).WithDirs(t.TempDir(), t.TempDir())
	_, err := loader.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoaderRejectsInvalidResult(t *testing.T) {
	work := t.TempDir()
	writeFile(t, filepath.Join(work, ProjectConfigFile), "dialect: py9\n")
	_, err := NewLoader(nil).WithDirs(t.TempDir(), work).Load("")
	assert.ErrorContains(t, err, "dialect")
}

func TestLoaderWarnsOnBrokenUserConfig(t *testing.T) {
	home := t.TempDir()
	writeFile(t, filepath.Join(home, UserConfigDir, UserConfigFile), "rdf: [")

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	cfg, err := NewLoader(logger).WithDirs(home, t.TempDir()).Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Contains(t, logs.String(), "Failed to load user config")
}
