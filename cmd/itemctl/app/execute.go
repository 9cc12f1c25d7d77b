package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/gvdb/itemctl/internal/cmd/output"
	"github.com/gvdb/itemctl/pkg/errors"
	"github.com/gvdb/itemctl/pkg/logging"
)

// rootFlags holds the persistent flags of the root command.
type rootFlags struct {
	configFile string
	verbose    bool
	quiet      bool
	noColor    bool
	format     string
	logLevel   string
	itemsPath  string
}

// Execute runs the itemctl CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:     "itemctl",
		Short:   "Game item database maintenance",
		Version: a.version,
		Long: `itemctl maintains the game item database in items.json.

It merges name corrections from CSV sheets into the records, moves items
between subcategories with keyword rules, and exports editable templates.
Every run rewrites items.json in place, keeping field order and non-ASCII
text intact.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupCommand(cmd, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "config file (default is $HOME/.itemctl.yaml)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	pf.StringVarP(&flags.format, "format", "o", "", "output format: text, table, json, yaml, markdown")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	pf.StringVar(&flags.itemsPath, "items", "", "path to items.json (default is "+a.config.ItemsPath+")")

	rootCmd.SetVersionTemplate("itemctl {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It reloads the config
// when --config is given, applies flags, rebuilds the logger, installs it
// as the default and tags the command context with a run ID.
func (a *App) setupCommand(cmd *cobra.Command, flags *rootFlags) error {
	if flags.configFile != "" {
		config, err := LoadConfigFile(flags.configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(flags.verbose, flags.quiet, flags.noColor, flags.format, flags.logLevel, flags.itemsPath)

	format, err := output.ParseFormat(a.config.Format)
	if err != nil {
		return errors.NewValidationError("format", a.config.Format, err.Error())
	}
	a.config.Format = string(format)

	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	cmd.SetContext(runContext(cmd.Context(), a.logger))
	return nil
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + describe(err) + "\n")
		os.Exit(1)
	}
}
