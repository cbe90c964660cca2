package formconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "birocrat.db", cfg.CatalogPath)
	assert.Equal(t, "./scripts", cfg.ScriptDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverridesDefault(t *testing.T) {
	t.Setenv("BIROCRAT_LOG_LEVEL", "debug")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "birocrat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog_path: custom.db\nscript_dir: /opt/scripts\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom.db", cfg.CatalogPath)
	assert.Equal(t, "/opt/scripts", cfg.ScriptDir)
}

func TestLoadEnvOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "birocrat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog_path: fromfile.db\n"), 0o644))
	t.Setenv("BIROCRAT_CATALOG_PATH", "fromenv.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fromenv.db", cfg.CatalogPath)
}

func TestLoadMissingConfigFileErrors(t *testing.T) {
	_, err := Load("/nonexistent/path/birocrat.yaml")
	assert.Error(t, err)
}
