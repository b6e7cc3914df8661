package main

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/glaze/internal/params"
	"github.com/alexisbeaulieu97/glaze/internal/preset"
)

func TestGenerateCommand_DefaultsToMarkup(t *testing.T) {
	stdout, _, err := executeCommand(t, "generate")
	require.NoError(t, err)
	require.Contains(t, stdout, "<!DOCTYPE html>")
	require.Contains(t, stdout, "Preview Card")
}

func TestGenerateCommand_SelectsTab(t *testing.T) {
	stdout, _, err := executeCommand(t, "generate", "--preset", "vibrant", "--tab", "css")
	require.NoError(t, err)
	require.Contains(t, stdout, "linear-gradient(180deg")
	require.NotContains(t, stdout, "<!DOCTYPE html>")
}

func TestGenerateCommand_UsesDefaultPresetFromSettings(t *testing.T) {
	path := writeSettings(t, "default_preset: minimal\n")

	stdout, _, err := executeCommand(t, "generate", "--tab", "css", "--config", path)
	require.NoError(t, err)

	expected, err := preset.Lookup("minimal")
	require.NoError(t, err)
	require.Contains(t, stdout, expected.BgColor1)
}

func TestGenerateCommand_FromParamsFile(t *testing.T) {
	set := params.Default()
	set.BlurAmount = 7
	data, err := set.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "panel.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	stdout, _, err := executeCommand(t, "generate", "--params", path, "--tab", "css")
	require.NoError(t, err)
	require.Contains(t, stdout, "blur(7px)")
}

func TestGenerateCommand_WritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	stdout, _, err := executeCommand(t, "generate", "--out", dir)
	require.NoError(t, err)

	for _, name := range []string{"index.html", "styles.css", "script.js"} {
		path := filepath.Join(dir, name)
		require.FileExists(t, path)
		require.Contains(t, stdout, path)
	}

	css, err := os.ReadFile(filepath.Join(dir, "styles.css"))
	require.NoError(t, err)
	require.Contains(t, string(css), ".glass-card")
}

func TestGenerateCommand_JSONOutput(t *testing.T) {
	stdout, _, err := executeCommand(t, "generate", "--preset", "stripe", "--tab", "js", "--json")
	require.NoError(t, err)

	var payload struct {
		Preset string            `json:"preset"`
		Tab    string            `json:"tab"`
		Params params.Set        `json:"params"`
		Files  map[string]string `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	require.Equal(t, "stripe", payload.Preset)
	require.Equal(t, "js", payload.Tab)
	require.Equal(t, preset.StripePreset.Params, payload.Params)
	require.Len(t, payload.Files, 3)
	require.Contains(t, payload.Files["index.html"], "<!DOCTYPE html>")
}

func TestGenerateCommand_CopiesWithOSC52(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("TERM", "xterm-256color")
	path := writeSettings(t, "clipboard: osc52\nlog_level: error\n")

	stdout, stderr, err := executeCommand(t, "generate", "--tab", "css", "--copy", "--config", path)
	require.NoError(t, err)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "\x1b]52;c;")

	css, _, err := executeCommand(t, "generate", "--tab", "css")
	require.NoError(t, err)
	require.Contains(t, stderr, base64.StdEncoding.EncodeToString([]byte(css[:len(css)-1])))
}

func TestGenerateCommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"unknown preset", []string{"generate", "--preset", "neon"}, "glaze presets"},
		{"bad tab", []string{"generate", "--tab", "svg"}, "--tab html, css or js"},
		{"missing params file", []string{"generate", "--params", "/does/not/exist.yaml"}, "load parameters"},
		{"preset and params", []string{"generate", "--preset", "ios", "--params", "x.yaml"}, "none of the others can be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestGenerateCommand_RejectsOutOfRangeParams(t *testing.T) {
	set := params.Default()
	set.Transparency = 1.5
	data, err := set.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "panel.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, _, err = executeCommand(t, "generate", "--params", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "transparency")
}

func TestGenerateCommand_SavesParams(t *testing.T) {
	set := preset.VibrantPreset.Params
	set.BgColor1 = "#F093FB"
	data, err := set.Marshal()
	require.NoError(t, err)

	dir := t.TempDir()
	source := filepath.Join(dir, "source.yaml")
	require.NoError(t, os.WriteFile(source, data, 0o644))
	saved := filepath.Join(dir, "nested", "saved.yaml")

	_, _, err = executeCommand(t, "generate", "--params", source, "--save-params", saved, "--tab", "css")
	require.NoError(t, err)

	got, err := params.Load(saved)
	require.NoError(t, err)
	require.Equal(t, preset.VibrantPreset.Params, got)

	// The saved file feeds straight back into --params.
	stdout, _, err := executeCommand(t, "generate", "--params", saved, "--tab", "css")
	require.NoError(t, err)
	require.Contains(t, stdout, "linear-gradient(180deg, #f093fb 0%, #f5576c 100%)")
}

func TestGenerateCommand_JSONIncludesInlineStyle(t *testing.T) {
	stdout, _, err := executeCommand(t, "generate", "--json")
	require.NoError(t, err)

	var payload struct {
		InlineStyle string `json:"inlineStyle"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	require.Contains(t, payload.InlineStyle, "border-radius: 24px;")
	require.Contains(t, payload.InlineStyle, "blur(12px)")
}
