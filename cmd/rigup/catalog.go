package rigup

import (
	"fmt"

	"github.com/arthur-debert/rigup/pkg/ui/markdown"
	"github.com/spf13/cobra"
)

func (c *cli) newCatalogCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:     "catalog",
		Short:   MsgCatalogShort,
		Long:    MsgCatalogLong,
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

			_, err = fmt.Fprint(c.app.Stdout, markdown.New(format).Markdown(markdown.Catalog(cat)))
			return err
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", MsgFlagCatalog)
	return cmd
}
