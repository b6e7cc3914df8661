package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/glaze/internal/config"
)

func TestConfigInitCommand_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glaze", "config.yaml")

	stdout, _, err := executeCommand(t, "config", "init", "--config", path)
	require.NoError(t, err)
	require.Equal(t, path, strings.TrimSpace(stdout))

	got, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.Default(), got)
}

func TestConfigInitCommand_RefusesToOverwrite(t *testing.T) {
	path := writeSettings(t, "default_preset: minimal\n")

	_, _, err := executeCommand(t, "config", "init", "--config", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "--force")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "default_preset: minimal\n", string(data))

	_, _, err = executeCommand(t, "config", "init", "--force", "--config", path)
	require.NoError(t, err)

	got, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.Default().DefaultPreset, got.DefaultPreset)
}
