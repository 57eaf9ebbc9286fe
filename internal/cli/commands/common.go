package commands

import (
	"os"

	"github.com/spf13/cobra"

	clicfg "github.com/obi1kenobi/semver-check-go/internal/cli/config"
	"github.com/obi1kenobi/semver-check-go/pkg/lint"
)

// configFromCmd retrieves the Config the root command stashed in the
// command's context during PersistentPreRunE.
func configFromCmd(cmd *cobra.Command) *clicfg.Config {
	return clicfg.FromContext(cmd.Context())
}

// loadCatalogue merges the embedded catalogue with any extra lint
// directories the config names, then drops disabled lint IDs.
func loadCatalogue(cfg *clicfg.Config) ([]*lint.Lint, []*lint.LintParseError, error) {
	lints, errs := lint.LoadBuiltin()

	for _, dir := range cfg.LintDirs {
		extra, extraErrs := lint.Load(os.DirFS(dir), ".")
		lints = append(lints, extra...)
		errs = append(errs, extraErrs...)
	}

	if len(cfg.DisabledLints) == 0 {
		return lints, errs, nil
	}
	disabled := make(map[string]bool, len(cfg.DisabledLints))
	for _, id := range cfg.DisabledLints {
		disabled[id] = true
	}
	filtered := make([]*lint.Lint, 0, len(lints))
	for _, l := range lints {
		if !disabled[l.ID] {
			filtered = append(filtered, l)
		}
	}
	return filtered, errs, nil
}
