package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to a fresh temp dir so no stray tracker.yaml is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_ConfigFileInWorkingDir(t *testing.T) {
	dir := chdir(t)
	writeFile(t, filepath.Join(dir, "tracker.yaml"), `
db: /var/lib/tracker/apps.db
default_page_size: 25
shutdown_timeout: 3s
`)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/tracker/apps.db", cfg.DB)
	assert.Equal(t, 25, cfg.DefaultPageSize)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, DefaultAddr, cfg.Addr)
}

func TestLoad_ExplicitConfigFileMustExist(t *testing.T) {
	dir := chdir(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "addr: \":9000\"\nlog_level: warn\n")
	t.Setenv("TRACKER_ADDR", ":9100")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Addr)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_ChangedFlagsOverrideEnv(t *testing.T) {
	chdir(t)
	t.Setenv("TRACKER_DB", "env.db")
	t.Setenv("TRACKER_ADDR", ":9100")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(KeyDB, "", "")
	flags.String(KeyAddr, DefaultAddr, "")
	require.NoError(t, flags.Parse([]string{"--db", "flag.db"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, "flag.db", cfg.DB)
	assert.Equal(t, ":9100", cfg.Addr, "unset flag must not mask env")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"page size above max", "default_page_size: 200\n"},
		{"zero max", "max_page_size: 0\n"},
		{"bad level", "log_level: loud\n"},
		{"bad timeout", "shutdown_timeout: -1s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := chdir(t)
			writeFile(t, filepath.Join(dir, "tracker.yaml"), tt.content)

			_, err := Load("", nil)
			assert.Error(t, err)
		})
	}
}

func TestLevel(t *testing.T) {
	cfg := Default()

	cfg.LogLevel = "debug"
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	cfg.LogLevel = "ERROR"
	level, err = cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, level)
}
