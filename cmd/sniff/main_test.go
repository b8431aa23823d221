package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.Execute()

	return out.String(), err
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, formatText, cfg.Format)
	assert.Equal(t, 100000, cfg.MaxDiffSize)
	assert.InDelta(t, 0.5, cfg.MinConfidence, 0.0001)
	assert.Equal(t, "Binary file", cfg.Placeholder)
	assert.False(t, cfg.Peek)
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sniff.yaml")
	require.NoError(t, os.WriteFile(path, []byte("peek: true\nformat: yaml\nmax_diff_size: 500\n"), 0o600))

	cfg, err := loadConfig(viper.New(), path)
	require.NoError(t, err)
	assert.True(t, cfg.Peek)
	assert.Equal(t, formatYAML, cfg.Format)
	assert.Equal(t, 500, cfg.MaxDiffSize)
	assert.True(t, cfg.classifier().Peek)
	assert.Equal(t, 500, cfg.staged().MaxDiffSize)

	_, err = loadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err, "an explicit config file must exist")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("format: xml\n"), 0o600))

	_, err = loadConfig(viper.New(), bad)
	require.ErrorIs(t, err, ErrBadFormat)
}

func TestClassifyCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("some notes\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blob.dat"), []byte{1, 2, 0, 4}, 0o600))

	output, err := run(t, "", "classify", dir)
	require.NoError(t, err)
	assert.Contains(t, output, "notes.txt: text (utf-8) 0.80 text-extension")
	assert.Contains(t, output, "blob.dat: binary")

	output, err = run(t, "", "classify", "--mime", "image/png", filepath.Join(dir, "notes.txt"))
	require.NoError(t, err)
	assert.Contains(t, output, "notes.txt: binary (image/png) 0.85 mime-binary")

	output, err = run(t, "", "classify", "--format", "json", filepath.Join(dir, "notes.txt"))
	require.NoError(t, err)

	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "text-extension", results[0]["result"].(map[string]any)["rule"])
}

func TestDiffCommand(t *testing.T) {
	t.Parallel()

	output, err := run(t, "Binary files a/x.png and b/x.png differ\n", "diff", "--path", "x.png")
	require.NoError(t, err)
	assert.Equal(t, "binary: git marked the diff as binary\n", output)

	output, err = run(t, "+hello\n", "diff", "-p", "notes.txt", "--format", "yaml")
	require.NoError(t, err)

	verdict := diffVerdict{}
	require.NoError(t, yaml.Unmarshal([]byte(output), &verdict))
	assert.False(t, verdict.IsBinary)
	assert.Equal(t, "notes.txt", verdict.Path)
}

func TestLoadDotEnv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	require.NoError(t, loadDotEnv(filepath.Join(dir, ".env")), "a missing file is fine")

	bad := filepath.Join(dir, "bad.env")
	require.NoError(t, os.WriteFile(bad, []byte("SNIFF_PLACEHOLDER='unterminated\n"), 0o600))
	require.Error(t, loadDotEnv(bad))
}

func TestBadFormatFlag(t *testing.T) {
	t.Parallel()

	_, err := run(t, "", "diff", "--format", "xml")
	require.ErrorIs(t, err, ErrBadFormat)
}
