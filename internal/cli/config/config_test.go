package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "model.xml", cfg.Model.Path)
	assert.Equal(t, "arrays.db", cfg.Store.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := inTempDir(t)

	yml := []byte(`project_name: wells
model:
  path: wells.xml
store:
  path: wells-arrays.db
log:
  level: debug
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "strata.yml"), yml, 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "wells", cfg.ProjectName)
	assert.Equal(t, "wells.xml", cfg.Model.Path)
	assert.Equal(t, "wells-arrays.db", cfg.Store.Path)

	level, err := cfg.ZapLevel()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level)
}

func TestLoadInvalidLevel(t *testing.T) {
	dir := inTempDir(t)

	yml := []byte("log:\n  level: shouting\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "strata.yml"), yml, 0o644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestGetStorePathEnvOverride(t *testing.T) {
	inTempDir(t)
	t.Setenv("STRATA_STORE", "/tmp/override.db")

	assert.Equal(t, "/tmp/override.db", GetStorePath())
}

func TestGetStorePathFallsBackToConfig(t *testing.T) {
	inTempDir(t)
	t.Setenv("STRATA_STORE", "")

	assert.Equal(t, "arrays.db", GetStorePath())
}

func TestLoggerBuilds(t *testing.T) {
	inTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)
	logger, err := cfg.Logger()
	require.NoError(t, err)
	logger.Sync()
}
