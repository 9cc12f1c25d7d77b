package app

import (
	"github.com/spf13/cobra"

	"github.com/gvdb/itemctl/cmd/itemctl/cmd/merge"
	"github.com/gvdb/itemctl/cmd/itemctl/cmd/reclassify"
	"github.com/gvdb/itemctl/cmd/itemctl/cmd/template"
	"github.com/gvdb/itemctl/pkg/errors"
)

func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(merge.NewCommand(a))
	rootCmd.AddCommand(reclassify.NewCommand(a))
	rootCmd.AddCommand(template.NewCommand(a))
	rootCmd.AddCommand(a.CreateVersionCommand())
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("itemctl %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}

// describe prefixes errors for lost changes so they stand out from
// errors raised before anything was modified.
func describe(err error) string {
	if errors.IsNotPersisted(err) {
		return "NOT SAVED: " + err.Error()
	}
	return err.Error()
}
