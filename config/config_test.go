// SPDX-License-Identifier: MIT
package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/katalvlaran/matrixlink/config"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.Equal(t, "localhost", cfg.Store.Host)
	require.Equal(t, 8080, cfg.Store.Port)
	require.Equal(t, 5*time.Second, cfg.Store.DialTimeout)
	require.Zero(t, cfg.Store.IOTimeout)
	require.Equal(t, ":8080", cfg.Listen)
	require.NoError(t, cfg.Validate())
}

func TestLoad_NoPathNoEnv(t *testing.T) {
	t.Setenv(config.EnvVar, "")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoad_FromEnv(t *testing.T) {
	path := writeFile(t, "matrixlink.yaml", `
store:
  host: matrices.internal
  port: 9090
  io_timeout: 2s
log:
  level: debug
`)
	t.Setenv(config.EnvVar, path)

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "matrices.internal", cfg.Store.Host)
	require.Equal(t, 9090, cfg.Store.Port)
	require.Equal(t, 2*time.Second, cfg.Store.IOTimeout)
	require.Equal(t, 5*time.Second, cfg.Store.DialTimeout, "unset fields keep defaults")
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_ExplicitPathWins(t *testing.T) {
	t.Setenv(config.EnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	path := writeFile(t, "explicit.yaml", "listen: 127.0.0.1:7000\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:7000", cfg.Listen)
}

func TestLoadFile_JSONC(t *testing.T) {
	path := writeFile(t, "matrixlink.jsonc", `{
  // development store
  "store": {"host": "127.0.0.1", "port": 7001,},
  /* quiet */
  "log": {"level": "warn", "format": "text"},
}`)

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.Store.Host)
	require.Equal(t, 7001, cfg.Store.Port)
	require.Equal(t, "text", cfg.Log.Format)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate_ReportsEveryField(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Port = 70000
	cfg.Store.IOTimeout = -time.Second
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	require.Contains(t, msg, "store.port")
	require.Contains(t, msg, "store.io_timeout")
	require.Contains(t, msg, "log.level")
	require.Contains(t, msg, "log.format")
}

func TestParse_RejectsInvalid(t *testing.T) {
	_, err := config.Parse([]byte("store:\n  port: 0\n"), false)
	require.ErrorContains(t, err, "store.port")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := config.LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "id", 3)
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"msg":"shown"`)
	require.Contains(t, buf.String(), `"id":3`)

	_, err = config.LogConfig{Level: "info", Format: "xml"}.NewLogger(&buf)
	require.Error(t, err)
}
