package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	intconfig "github.com/obi1kenobi/semver-check-go/internal/config"
)

var configFileUsed string

type contextKey struct{}
type loggerKey struct{}

// WithLogger stores a logger in ctx for commands to retrieve with
// GetLogger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger the root command stashed in ctx, or a
// discard logger if none was stashed.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithConfig stores a resolved Config in ctx for commands to retrieve.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext retrieves the Config the root command stashed in ctx during
// PersistentPreRunE, or a zero Config if none was stashed.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(contextKey{}).(*Config); ok {
		return c
	}
	return &Config{}
}

// Load resolves a Config from, in ascending precedence: built-in defaults,
// the optional project config file found in dir (intconfig.LoadFromDir),
// SEMVERCHECK_-prefixed environment variables, and finally cmd's flags —
// mirroring LoadConfigWithTarget's layering order.
func Load(dir string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"format":  intconfig.DefaultFormat,
		"fail_on": intconfig.DefaultFailOn,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	fileCfg, err := intconfig.LoadFromDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}
	if fileCfg != nil {
		configFileUsed = dir
		if err := k.Load(confmap.Provider(map[string]any{
			"baseline_path":  fileCfg.BaselinePath,
			"current_path":   fileCfg.CurrentPath,
			"format":         fileCfg.Format,
			"fail_on":        fileCfg.FailOn,
			"disabled_lints": fileCfg.DisabledLints,
			"lint_dirs":      fileCfg.LintDirs,
			"verbose":        fileCfg.Verbose,
		}, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to merge project config: %w", err)
		}
	}

	if err := k.Load(env.Provider("SEMVERCHECK_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SEMVERCHECK_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// GetConfigFileUsed returns the directory a project config file was loaded
// from, if any.
func GetConfigFileUsed() string { return configFileUsed }
