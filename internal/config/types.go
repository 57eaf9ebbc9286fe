// Package config loads the optional project-level configuration for a
// semvercheck run. It is decoupled from CLI concerns so other future
// hosts (an LSP, a CI action) can load the same file without pulling in
// cobra.
package config

// Config holds the subset of a run's settings that a project can pin in
// a checked-in file rather than repeating on every invocation.
type Config struct {
	// BaselinePath and CurrentPath are default snapshot file locations,
	// overridden by --baseline-path/--current-path.
	BaselinePath string `koanf:"baseline_path"`
	CurrentPath  string `koanf:"current_path"`

	// Format selects the default output renderer: "text" or "json".
	Format string `koanf:"format"`

	// FailOn is the lowest required_update that causes a non-zero exit:
	// one of "patch", "minor", "major". A finding below this threshold is
	// still reported but does not affect the exit code.
	FailOn string `koanf:"fail_on"`

	// DisabledLints lists lint IDs to skip entirely, independent of the
	// semvergate optimization.
	DisabledLints []string `koanf:"disabled_lints"`

	// LintDirs names extra directories of *.yaml lint definitions to load
	// in addition to the embedded catalogue.
	LintDirs []string `koanf:"lint_dirs"`

	// Verbose lists the lints the semvergate skipped in the text renderer's
	// run summary and turns on debug logging. No per-lint timing is
	// reported.
	Verbose bool `koanf:"verbose"`
}
