package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ".", cfg.BasePath)
	assert.True(t, cfg.PerRunReport)
	assert.False(t, cfg.JSONReport)
	assert.False(t, cfg.IncludeHidden)
	assert.Contains(t, cfg.Tools, "resize")
	assert.True(t, cfg.Tools["resize"].PerFile)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harvester.yaml")
	content := `
base_path: /data/experiments
per_run_report: false
json_report: true
log_level: debug
tools:
  sharpen:
    command: /usr/local/bin/sharpen
    args: ["--fast"]
    per_file: true
    timeout: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/experiments", cfg.BasePath)
	assert.False(t, cfg.PerRunReport)
	assert.True(t, cfg.JSONReport)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat, "unset keys keep defaults")

	tool := cfg.Tools["sharpen"]
	assert.Equal(t, "/usr/local/bin/sharpen", tool.Command)
	assert.Equal(t, []string{"--fast"}, tool.Args)
	assert.True(t, tool.PerFile)
	assert.Equal(t, 30*time.Second, tool.Timeout)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_path: [unclosed"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoad_NoDefaultFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().BasePath, cfg.BasePath)
}

func TestLoad_DefaultFileName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "harvester.yaml"), []byte("base_path: /runs\n"), 0644))
	chdir(t, dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/runs", cfg.BasePath)
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
