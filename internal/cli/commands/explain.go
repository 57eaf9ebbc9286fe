package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obi1kenobi/semver-check-go/internal/output"
)

// NewExplainCommand creates the explain command.
func NewExplainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <lint-id>",
		Short: "Print one lint's full record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromCmd(cmd)
			lints, _, err := loadCatalogue(cfg)
			if err != nil {
				return err
			}
			for _, l := range lints {
				if l.ID == args[0] {
					return output.NewRenderer(cmd.OutOrStdout(), output.ParseMode(cfg.Format)).RenderLintDetail(l)
				}
			}
			return fmt.Errorf("explain: no lint with id %q", args[0])
		},
	}
}
