package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxesandglue/cssinline"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssinline.yaml")
	configContent := `
base-url: https://example.com/mail/
keep-style-tags: true
remove-classes: false
method: xml
external-style:
  - common.css
  - print.css
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))
	require.NoError(t, loadConfigFromPath(configPath))

	opts := buildOptions(nil)
	assert.Equal(t, "https://example.com/mail/", opts.BaseURL)
	assert.True(t, opts.KeepStyleTags)
	assert.False(t, opts.RemoveClasses)
	assert.True(t, opts.StripImportant)
	assert.Equal(t, cssinline.MethodXML, opts.Method)
	assert.Equal(t, []string{"common.css", "print.css"}, opts.ExternalStyles)
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	require.NoError(t, loadConfigFromPath("/nonexistent/.cssinline.yaml"))

	opts := buildOptions(nil)
	want := cssinline.DefaultOptions()
	assert.Equal(t, want.RemoveClasses, opts.RemoveClasses)
	assert.Equal(t, want.StripImportant, opts.StripImportant)
	assert.Equal(t, want.Method, opts.Method)
	assert.Empty(t, opts.BaseURL)
	assert.Empty(t, opts.ExternalStyles)
	assert.False(t, opts.DisableValidation)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssinline.yaml")
	configContent := `
base-url: http://from-file/
strip-important: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	t.Setenv("CSSINLINE_BASE_URL", "http://from-env/")
	t.Setenv("CSSINLINE_STRIP_IMPORTANT", "false")
	t.Setenv("CSSINLINE_EXTERNAL_STYLE", "a.css, b.css")

	require.NoError(t, loadConfigFromPath(configPath))

	opts := buildOptions(nil)
	assert.Equal(t, "http://from-env/", opts.BaseURL)
	assert.False(t, opts.StripImportant)
	assert.Equal(t, []string{"a.css", "b.css"}, opts.ExternalStyles)
}
