// Package reclassify implements the reclassify command.
package reclassify

import (
	"bytes"
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/gvdb/itemctl/cmd/application"
	"github.com/gvdb/itemctl/internal/cmd/output"
	"github.com/gvdb/itemctl/internal/matcher"
	"github.com/gvdb/itemctl/internal/report"
	"github.com/gvdb/itemctl/pkg/classifier"
	"github.com/gvdb/itemctl/pkg/constants"
	"github.com/gvdb/itemctl/pkg/errors"
	"github.com/gvdb/itemctl/pkg/logging"
	engine "github.com/gvdb/itemctl/pkg/reclassify"
	"github.com/gvdb/itemctl/pkg/save"
)

// Flags holds the reclassify command flags.
type Flags struct {
	Category    string
	SubCategory string
	RulesFile   string
	KeyPattern  string
	IgnoreCase  bool
	Sample      int
	DryRun      bool
	Preview     bool
	Out         string
}

// NewCommand creates the reclassify command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "reclassify",
		GroupID: "core",
		Short:   "Move items to a new subcategory by keyword rules",
		Args:    cobra.NoArgs,
		Long: `Reclassify selects the items of one category and subcategory and
matches their name and IconFile against keyword rules.

Exclude rules are checked first and keep an item where it is. Otherwise
the first include rule whose keyword occurs in the text moves the item
to that rule's label. Matching is case-insensitive substring containment.

--key-pattern narrows the subset further. A regex must match the whole
IconFile, the same as a glob.

Without --rules the built-in rules split leg armour out of Armor > Feet
into Legs.`,
		Example: `  itemctl reclassify                                   # Armor > Feet, built-in rules
  itemctl reclassify --rules legs.yaml --dry-run
  itemctl reclassify --category Armor --subcategory Feet --key-pattern 'icon_Leg*'
  itemctl reclassify --key-pattern 'icon_leg.*' --ignore-case --preview > items.preview.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Execute(cmd.Context(), app, cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.Category, "category", "", "category to select (default from the rules)")
	cmd.Flags().StringVar(&flags.SubCategory, "subcategory", "", "subcategory to select (default from the rules)")
	cmd.Flags().StringVar(&flags.RulesFile, "rules", "", "YAML rules file (default: built-in leg armour rules)")
	cmd.Flags().StringVar(&flags.KeyPattern, "key-pattern", "", "only items whose IconFile matches this glob or regex")
	cmd.Flags().BoolVar(&flags.IgnoreCase, "ignore-case", false, "match --key-pattern without regard to case")
	cmd.Flags().IntVar(&flags.Sample, "sample", constants.ReclassifySampleSize, "example items shown per group")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "report changes without writing items.json")
	cmd.Flags().BoolVar(&flags.Preview, "preview", false, "print the rewritten items.json instead of saving it")
	cmd.Flags().StringVar(&flags.Out, "out", "", "write the result to this file instead of items.json")
	cmd.MarkFlagsMutuallyExclusive("preview", "out")

	return cmd
}

// Execute runs a reclassification and renders its result to w.
func Execute(ctx context.Context, app application.Application, w io.Writer, flags *Flags) error {
	rules, err := loadRules(flags.RulesFile)
	if err != nil {
		return err
	}
	cl, err := classifier.New(rules)
	if err != nil {
		return err
	}

	filter, err := buildFilter(rules, flags)
	if err != nil {
		return err
	}

	store := app.Store()
	ctx = logging.WithFile(ctx, store.Path())

	c, err := store.Load()
	if err != nil {
		return err
	}

	var preview bytes.Buffer
	opts := []engine.Option{engine.WithDryRun(flags.DryRun && !flags.Preview)}
	switch {
	case flags.Preview:
		opts = append(opts, engine.WithSaveOptions(save.WithWriter(&preview)))
	case flags.Out != "":
		opts = append(opts, engine.WithSaveOptions(save.WithPath(flags.Out)))
	}

	result, runErr := engine.NewEngine(cl, store, opts...).Run(ctx, c, filter)
	if result == nil {
		return runErr
	}

	if flags.Preview && result.HasChanges() && runErr == nil {
		_, err := preview.WriteTo(w)
		return err
	}

	renderErr := output.Render(w, output.Format(app.OutputFormat()), result, output.ReclassifyTable(result),
		func(w io.Writer) error {
			if err := report.WriteReclassifyReport(w, result, flags.Sample); err != nil {
				return err
			}
			switch {
			case !result.HasChanges():
				_, err := io.WriteString(w, "\nNo updates needed.\n")
				return err
			case result.DryRun:
				return report.WriteDryRun(w, len(result.Reassigned))
			default:
				return report.WriteStatus(w, result.Persisted, result.Path)
			}
		})

	if runErr != nil {
		return runErr
	}
	return renderErr
}

func loadRules(path string) (classifier.Ruleset, error) {
	if path == "" {
		return classifier.LegsRuleset(), nil
	}
	return classifier.LoadRuleset(path)
}

// buildFilter combines the flags with the subset named by the rules. Flags
// win over the rules file.
func buildFilter(rules classifier.Ruleset, flags *Flags) (engine.Filter, error) {
	f := engine.Filter{Category: rules.Category, SubCategory: rules.SubCategory}
	if flags.Category != "" {
		f.Category = flags.Category
	}
	if flags.SubCategory != "" {
		f.SubCategory = flags.SubCategory
	}
	if f.Category == "" {
		return f, errors.NewValidationError("category", nil, "set --category or category in the rules file")
	}
	if f.SubCategory == "" {
		return f, errors.NewValidationError("subcategory", nil, "set --subcategory or subcategory in the rules file")
	}

	if flags.KeyPattern != "" {
		m, err := matcher.New(matcher.Auto, flags.KeyPattern, &matcher.Options{
			CaseInsensitive: flags.IgnoreCase,
			Anchored:        true,
		})
		if err != nil {
			return f, errors.WrapValidation("key-pattern", err)
		}
		f.KeyPattern = m
	}
	return f, nil
}
