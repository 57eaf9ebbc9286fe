package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obi1kenobi/semver-check-go/internal/output"
)

// NewLintsCommand creates the lints command.
func NewLintsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lints",
		Short: "List the loaded lint catalogue",
		Long:  `lints lists every lint in the embedded catalogue plus any --lint-dirs additions, with its ID, required update, and name.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromCmd(cmd)
			lints, errs, err := loadCatalogue(cfg)
			if err != nil {
				return err
			}
			for _, e := range errs {
				fmt.Fprintln(cmd.ErrOrStderr(), e.Error())
			}
			return output.NewRenderer(cmd.OutOrStdout(), output.ParseMode(cfg.Format)).RenderLints(lints)
		},
	}
}
