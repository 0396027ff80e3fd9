package rigup

import (
	"github.com/arthur-debert/rigup/pkg/actions"
	"github.com/arthur-debert/rigup/pkg/harness"
	"github.com/arthur-debert/rigup/pkg/ui/summary"
	"github.com/spf13/cobra"
)

func (c *cli) newStatusCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("catalog") {
				cfg.Run.Catalog = catalogPath
			}
			format, err := c.outputFormat(cfg)
			if err != nil {
				return err
			}
			cat, err := c.loadCatalog(cfg)
			if err != nil {
				return err
			}

			// Probes and guards only; actions are built but never run
			builder := actions.NewBuilder(c.app.Runner, c.app.Registry, c.app.IsRoot())
			tasks := cat.Build(c.app.Env, builder)
			plans := harness.InspectAll(cmd.Context(), tasks)
			return summary.RenderPlans(c.app.Stdout, plans, format)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", MsgFlagCatalog)
	return cmd
}
