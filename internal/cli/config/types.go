// Package config layers CLI flags, environment variables, and an optional
// project config file into one resolved Config, precedence flags > env >
// file > defaults — the same precedence order as the teacher's
// internal/cli/config package, minus the project-root-inference machinery
// that package needs for its models/seeds/macros directories and this one
// has no equivalent of.
package config

// Config is the fully resolved settings for one CLI invocation.
type Config struct {
	BaselinePath  string   `koanf:"baseline_path"`
	CurrentPath   string   `koanf:"current_path"`
	Format        string   `koanf:"format"`
	FailOn        string   `koanf:"fail_on"`
	DisabledLints []string `koanf:"disabled_lints"`
	LintDirs      []string `koanf:"lint_dirs"`
	Verbose       bool     `koanf:"verbose"`
}
