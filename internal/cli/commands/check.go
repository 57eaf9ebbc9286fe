package commands

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	clicfg "github.com/obi1kenobi/semver-check-go/internal/cli/config"
	"github.com/obi1kenobi/semver-check-go/internal/output"
	"github.com/obi1kenobi/semver-check-go/internal/semvergate"
	"github.com/obi1kenobi/semver-check-go/pkg/diffroot"
	"github.com/obi1kenobi/semver-check-go/pkg/lint"
	"github.com/obi1kenobi/semver-check-go/pkg/semver"
	"github.com/obi1kenobi/semver-check-go/pkg/snapshot"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Detect SemVer-breaking changes between a baseline and a current snapshot",
		Long: `check loads a current API snapshot (and, optionally, a baseline snapshot
to compare it against), runs the lint catalogue over both, and reports every
breaking change found. The process exits non-zero when the highest required
update observed is at or above --fail-on.`,
		RunE: runCheck,
	}
	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg := configFromCmd(cmd)
	if cfg.CurrentPath == "" {
		return fmt.Errorf("check: --current-path is required")
	}

	current, err := loadSnapshotFile(cfg.CurrentPath)
	if err != nil {
		return err
	}

	var baseline *snapshot.Snapshot
	if cfg.BaselinePath != "" {
		baseline, err = loadSnapshotFile(cfg.BaselinePath)
		if err != nil {
			return err
		}
	}

	root, err := diffroot.New(current, baseline)
	if err != nil {
		return err
	}

	lints, parseErrs, err := loadCatalogue(cfg)
	if err != nil {
		return err
	}

	var skippedIDs []string
	if baseline != nil {
		gate := semvergate.New(baseline.Root().CrateVersion, current.Root().CrateVersion, cfg.Verbose)
		toRun, skipped := gate.Filter(lints)
		lints = toRun
		for _, s := range skipped {
			skippedIDs = append(skippedIDs, s.LintID)
		}
	}

	driver := lint.NewDriverWithLogger(lint.NewRegistry(lints), clicfg.GetLogger(cmd.Context()))
	findings, summary, err := driver.Run(cmd.Context(), root, uuid.NewString())
	if err != nil {
		return err
	}
	summary.ParseErrors = append(summary.ParseErrors, parseErrs...)

	var actualBump semver.Bump
	var bumpKnown bool
	if baseline != nil {
		actualBump, bumpKnown = semver.ClassifyChange(baseline.Root().CrateVersion, current.Root().CrateVersion)
	}

	renderer := output.NewRenderer(cmd.OutOrStdout(), output.ParseMode(cfg.Format))
	if err := renderer.RenderRun(output.RunResult{
		Findings:      findings,
		Summary:       summary,
		ActualBump:    actualBump,
		BumpKnown:     bumpKnown,
		SkippedByGate: skippedIDs,
		Verbose:       cfg.Verbose,
	}); err != nil {
		return err
	}

	required, ok := semver.ParseRequiredUpdate(cfg.FailOn)
	if !ok {
		required = semver.Major
	}
	if summary.HighestRequired >= required && summary.HighestRequired != semver.NotChanged {
		return errBreakingChangeDetected
	}
	return nil
}

var errBreakingChangeDetected = fmt.Errorf("breaking changes detected")

func loadSnapshotFile(path string) (*snapshot.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &snapshot.SnapshotLoadError{Path: path, Err: err}
	}
	return snapshot.Load(data)
}
