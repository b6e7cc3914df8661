package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/glaze/internal/clipboard"
	glazeerrors "github.com/alexisbeaulieu97/glaze/pkg/errors"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, Default().Validate())
}

func TestLoadMergesOverDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
log_level: debug
default_preset: vibrant
clipboard: osc52
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "vibrant", cfg.DefaultPreset)
	assert.Equal(t, clipboard.ModeOSC52, cfg.ClipboardMode())
	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.True(t, cfg.HumanReadable)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"log level", "log_level: chatty\n", "log_level"},
		{"clipboard", "clipboard: fax\n", "clipboard"},
		{"listen", "listen: nowhere\n", "listen"},
		{"preset", "default_preset: neon\n", "default_preset"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(writeConfig(t, tt.doc))
			var validationErr *glazeerrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestLoadReportsParseLine(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "log_level: info\nlisten: [\n")

	_, err := Load(path)
	var parseErr *glazeerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, path, parseErr.Path)
	assert.Greater(t, parseErr.Line, 0)
}

func TestSaveRoundTrips(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.DefaultPreset = "minimal"
	cfg.LogFile = "/tmp/glaze.log"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSaveRejectsInvalid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Clipboard = "fax"
	require.Error(t, Save(filepath.Join(t.TempDir(), "config.yaml"), cfg))
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")

	assert.Contains(t, DefaultPath(), filepath.Join("glaze", "config.yaml"))
}
