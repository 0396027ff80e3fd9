package rigup

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/rigup/internal/version"
	"github.com/arthur-debert/rigup/pkg/catalog"
	"github.com/arthur-debert/rigup/pkg/cobrax/topics"
	"github.com/arthur-debert/rigup/pkg/config"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/arthur-debert/rigup/pkg/ui"
	"github.com/arthur-debert/rigup/pkg/ui/markdown"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed help
var helpFiles embed.FS

// cli carries global flag values and the loaded config between commands
type cli struct {
	app *App

	verbosity  int
	configPath string
	format     string

	cfg *config.Config
}

// NewRootCmd creates the root command wired to the real system
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithApp(DefaultApp())
}

// NewRootCmdWithApp creates the root command around app
func NewRootCmdWithApp(app *App) *cobra.Command {
	initTemplateFormatting()
	c := &cli{app: app}

	rootCmd := &cobra.Command{
		Use:     "rigup",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(c.verbosity, c.appPaths().LogFilePath())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	rootCmd.SetOut(app.Stdout)
	rootCmd.SetErr(app.Stderr)

	rootCmd.PersistentFlags().CountVarP(&c.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&c.format, "format", "", MsgFlagFormat)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "term", "text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(c.newUpCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newCatalogCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	help, err := fs.Sub(helpFiles, "help")
	if err == nil {
		err = topics.InitializeWithOptions(rootCmd, help, topics.Options{
			Renderer: markdown.New(ui.Resolve(ui.FormatAuto, app.Stdout)),
		})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

func (c *cli) appPaths() *paths.Paths {
	if c.app.Paths == nil {
		c.app.Paths = paths.New()
	}
	return c.app.Paths
}

// loadConfig loads configuration once per process
func (c *cli) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.format != "" {
		cfg.Output.Format = c.format
	}
	c.cfg = cfg
	return cfg, nil
}

// outputFormat resolves the configured format against stdout
func (c *cli) outputFormat(cfg *config.Config) (ui.Format, error) {
	f, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return ui.FormatAuto, err
	}
	return ui.Resolve(f, c.app.Stdout), nil
}

// loadCatalog loads the configured catalog and applies name filters
func (c *cli) loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Load(paths.ExpandHome(cfg.Run.Catalog))
	if err != nil {
		return nil, err
	}
	return cat.Filter(cfg.Run.Only, cfg.Run.Skip)
}

// taskNames completes --only and --skip from the configured catalog
func (c *cli) taskNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	cat, err := catalog.Load(paths.ExpandHome(cfg.Run.Catalog))
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return cat.Names(), cobra.ShellCompDirectiveNoFileComp
}
