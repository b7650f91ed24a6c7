package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNameList(t *testing.T) {
	assert.Equal(t, []string{"_", "Tr", "gettext"}, ParseNameList("_,Tr:gettext"))
	assert.Equal(t, []string{"A", "B"}, ParseNameList(" A , ,B: "))
	assert.Equal(t, []string{}, ParseNameList(""))
}

func TestLoadConfig_MissingOptionalFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), true)
	require.NoError(t, err)

	assert.Equal(t, "csharp", cfg.Scan.Language)
	assert.GreaterOrEqual(t, cfg.Scan.Jobs, 1)
	assert.Nil(t, cfg.Markers.Methods)

	m := cfg.MarkerSet()
	assert.Equal(t, []string{"Tr", "_", "_n", "_p", "_pn", "gettext"}, m.Methods())
	assert.Equal(t, []string{"Description"}, m.Attributes())
}

func TestLoadConfig_MissingRequiredFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), false)
	assert.Error(t, err)
}

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "getthetext.yaml")
	content := `
markers:
  methods: [T, Localize]
  attributes: []
scan:
  recursive: true
  jobs: 3
cache:
  path: .getthetext.db
output:
  color: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"T", "Localize"}, cfg.Markers.Methods)
	assert.NotNil(t, cfg.Markers.Attributes)
	assert.Empty(t, cfg.Markers.Attributes)
	assert.True(t, cfg.Scan.Recursive)
	assert.Equal(t, 3, cfg.Scan.Jobs)
	assert.Equal(t, ".getthetext.db", cfg.Cache.Path)
	require.NotNil(t, cfg.Output.Color)
	assert.False(t, *cfg.Output.Color)

	m := cfg.MarkerSet()
	assert.Equal(t, []string{"Localize", "T"}, m.Methods())
	assert.Empty(t, m.Attributes())
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("markers: [unclosed"), 0o644))

	_, err := LoadConfig(path, true)
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GETTHETEXT_METHODS", "Tr:_")
	t.Setenv("GETTHETEXT_ATTRIBUTES", "Display,Description")
	t.Setenv("GETTHETEXT_JOBS", "2")
	t.Setenv("GETTHETEXT_CACHE", "/tmp/cache.db")

	cfg, err := LoadConfig("", true)
	require.NoError(t, err)

	assert.Equal(t, []string{"Tr", "_"}, cfg.Markers.Methods)
	assert.Equal(t, []string{"Display", "Description"}, cfg.Markers.Attributes)
	assert.Equal(t, 2, cfg.Scan.Jobs)
	assert.Equal(t, "/tmp/cache.db", cfg.Cache.Path)
}

func TestLoadConfig_BadJobsEnv(t *testing.T) {
	t.Setenv("GETTHETEXT_JOBS", "many")
	_, err := LoadConfig("", true)
	assert.Error(t, err)
}
