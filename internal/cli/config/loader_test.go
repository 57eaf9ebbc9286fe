package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intconfig "github.com/obi1kenobi/semver-check-go/internal/config"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("semvercheck", pflag.ContinueOnError)
	fs.String("baseline-path", "", "")
	fs.String("current-path", "", "")
	fs.StringP("format", "f", "", "")
	fs.String("fail-on", "", "")
	fs.StringSlice("lint-dirs", nil, "")
	fs.StringSlice("disabled-lints", nil, "")
	fs.BoolP("verbose", "v", false, "")
	return fs
}

func TestLoadAppliesBuiltinDefaultsWhenNothingElseIsSet(t *testing.T) {
	cfg, err := Load(t.TempDir(), newFlagSet())
	require.NoError(t, err)
	assert.Equal(t, intconfig.DefaultFormat, cfg.Format)
	assert.Equal(t, intconfig.DefaultFailOn, cfg.FailOn)
}

func TestLoadMergesProjectConfigFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, intconfig.ConfigFileName), []byte(`
current_path: new.json
format: json
`), 0o600))

	cfg, err := Load(dir, newFlagSet())
	require.NoError(t, err)
	assert.Equal(t, "new.json", cfg.CurrentPath)
	assert.Equal(t, "json", cfg.Format)
	// fail_on was never set in the file, so the built-in default survives.
	assert.Equal(t, intconfig.DefaultFailOn, cfg.FailOn)
}

func TestLoadEnvVarsOverrideProjectConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, intconfig.ConfigFileName), []byte(`
format: json
`), 0o600))
	t.Setenv("SEMVERCHECK_FORMAT", "text")

	cfg, err := Load(dir, newFlagSet())
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Format)
}

func TestLoadFlagsOverrideEverything(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, intconfig.ConfigFileName), []byte(`
format: json
`), 0o600))
	t.Setenv("SEMVERCHECK_FORMAT", "text")

	fs := newFlagSet()
	require.NoError(t, fs.Set("format", "json"))
	require.NoError(t, fs.Set("current-path", "flag-provided.json"))

	cfg, err := Load(dir, fs)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "flag-provided.json", cfg.CurrentPath)
}

func TestLoadUnchangedFlagsDoNotOverrideLowerLayers(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, intconfig.ConfigFileName), []byte(`
current_path: from-file.json
`), 0o600))

	cfg, err := Load(dir, newFlagSet())
	require.NoError(t, err)
	assert.Equal(t, "from-file.json", cfg.CurrentPath)
}

func TestWithConfigAndFromContextRoundTrip(t *testing.T) {
	cfg := &Config{CurrentPath: "x.json"}
	ctx := WithConfig(context.Background(), cfg)
	assert.Same(t, cfg, FromContext(ctx))
}

func TestFromContextWithNoStashedConfigReturnsZeroValue(t *testing.T) {
	assert.Equal(t, &Config{}, FromContext(context.Background()))
}
