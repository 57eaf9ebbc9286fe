// Package cli provides the command-line interface for semvercheck.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/obi1kenobi/semver-check-go/internal/cli/commands"
	"github.com/obi1kenobi/semver-check-go/internal/cli/config"
)

var projectDir string

// Version information, set at build time via -ldflags.
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "semvercheck",
		Short: "semvercheck - SemVer-breaking-change detector for API snapshots",
		Long: `semvercheck compares two structured API documentation snapshots of a
library (a baseline and a current release) and reports every change that
breaks the library's declared SemVer contract, by evaluating a catalogue
of declarative lints over the two-snapshot graph.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			loaded, err := config.Load(projectDir, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			level := slog.LevelWarn
			if loaded.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			ctx := config.WithConfig(cmd.Context(), loaded)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)
			return nil
		},
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&projectDir, "project-dir", ".", "directory to search for semvercheck.yaml")
	rootCmd.PersistentFlags().String("baseline-path", "", "path to the baseline snapshot JSON file")
	rootCmd.PersistentFlags().String("current-path", "", "path to the current snapshot JSON file")
	rootCmd.PersistentFlags().StringP("format", "f", "", "output format: text|json")
	rootCmd.PersistentFlags().String("fail-on", "", "lowest required update that fails the run: patch|minor|major")
	rootCmd.PersistentFlags().StringSlice("lint-dirs", nil, "extra directories of *.yaml lint definitions to load")
	rootCmd.PersistentFlags().StringSlice("disabled-lints", nil, "lint IDs to skip")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "surface skipped lints and parse/static errors")

	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewLintsCommand())
	rootCmd.AddCommand(commands.NewExplainCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version, BuildDate, GitCommit))

	return rootCmd
}

// Execute runs the root command against os.Args, returning the process
// exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		return 1
	}
	return 0
}
