package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDirReturnsNilWhenNoConfigFilePresent(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadFromDirParsesYamlAndAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	contents := []byte(`
baseline_path: old.json
current_path: new.json
disabled_lints:
  - enum_missing
lint_dirs:
  - ./extra-lints
verbose: true
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), contents, 0o600))

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "old.json", cfg.BaselinePath)
	assert.Equal(t, "new.json", cfg.CurrentPath)
	assert.Equal(t, []string{"enum_missing"}, cfg.DisabledLints)
	assert.Equal(t, []string{"./extra-lints"}, cfg.LintDirs)
	assert.True(t, cfg.Verbose)

	// Defaults fill in the fields the file left unset.
	assert.Equal(t, DefaultFormat, cfg.Format)
	assert.Equal(t, DefaultFailOn, cfg.FailOn)
}

func TestLoadFromDirPrefersYamlOverYmlExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`format: json`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileNameAlt), []byte(`format: text`), 0o600))

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoadFromDirFallsBackToYmlExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileNameAlt), []byte(`fail_on: minor`), 0o600))

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "minor", cfg.FailOn)
}

func TestApplyDefaultsLeavesExplicitValuesAlone(t *testing.T) {
	cfg := &Config{Format: "json", FailOn: "minor"}
	ApplyDefaults(cfg)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "minor", cfg.FailOn)
}

func TestApplyDefaultsOnNilConfigIsANoOp(t *testing.T) {
	ApplyDefaults(nil)
}
