package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

const testDocument = `<html><head><link rel="stylesheet" href="site.css"></head><body><p class="a">hi</p></body></html>`

func writeTestFiles(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	for _, fn := range []string{"a.html", filepath.Join("sub", "b.html")} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, fn), []byte(testDocument), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, filepath.Dir(fn), "site.css"), []byte(".a{color:red}"), 0o644))
	}
	return dir
}

func TestRunInlineStdout(t *testing.T) {
	resetKoanf()
	dir := writeTestFiles(t)
	require.NoError(t, k.Set("quiet", true))

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	require.NoError(t, runInline(cmd, []string{filepath.Join(dir, "a.html")}))
	assert.Equal(t, `<html><head></head><body><p style="color:red">hi</p></body></html>`, buf.String())
}

func TestRunInlineOutputDir(t *testing.T) {
	resetKoanf()
	dir := writeTestFiles(t)
	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, k.Set("quiet", true))
	require.NoError(t, k.Set("output-dir", out))

	require.NoError(t, runInline(&cobra.Command{}, []string{filepath.Join(dir, "**", "*.html")}))
	for _, fn := range []string{"a.html", "b.html"} {
		data, err := os.ReadFile(filepath.Join(out, fn))
		require.NoError(t, err)
		assert.Contains(t, string(data), `<p style="color:red">hi</p>`)
	}
}

func TestRunInlineErrors(t *testing.T) {
	resetKoanf()
	dir := writeTestFiles(t)
	require.NoError(t, k.Set("quiet", true))

	err := runInline(&cobra.Command{}, []string{filepath.Join(dir, "*.none")})
	require.EqualError(t, err, "no input files")

	err = runInline(&cobra.Command{}, []string{filepath.Join(dir, "**", "*.html")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output-dir")

	require.NoError(t, k.Set("output-dir", t.TempDir()))
	err = runInline(&cobra.Command{}, []string{filepath.Join(dir, "a.html"), filepath.Join(dir, "missing.html"), filepath.Join(dir, "gone.html")})
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
}

func TestExpandInputs(t *testing.T) {
	dir := writeTestFiles(t)
	a := filepath.Join(dir, "a.html")
	b := filepath.Join(dir, "sub", "b.html")

	files, err := expandInputs([]string{filepath.Join(dir, "**", "*.html"), a, "literal.html"})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b, "literal.html"}, files)
}

func TestOutputPath(t *testing.T) {
	testdata := []struct {
		fn   string
		want string
	}{
		{"mail/welcome.html", filepath.Join("out", "mail", "welcome.html")},
		{"./welcome.html", filepath.Join("out", "welcome.html")},
		{"../welcome.html", filepath.Join("out", "welcome.html")},
		{"/tmp/mail/welcome.html", filepath.Join("out", "welcome.html")},
	}
	for _, td := range testdata {
		assert.Equal(t, td.want, outputPath("out", filepath.FromSlash(td.fn)), td.fn)
	}
}
