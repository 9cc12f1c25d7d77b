// Package merge implements the merge command.
package merge

import (
	"bytes"
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/gvdb/itemctl/cmd/application"
	"github.com/gvdb/itemctl/internal/cmd/output"
	"github.com/gvdb/itemctl/internal/report"
	"github.com/gvdb/itemctl/pkg/constants"
	"github.com/gvdb/itemctl/pkg/corrections"
	"github.com/gvdb/itemctl/pkg/errors"
	"github.com/gvdb/itemctl/pkg/logging"
	engine "github.com/gvdb/itemctl/pkg/merge"
	"github.com/gvdb/itemctl/pkg/save"
)

// Flags holds the merge command flags.
type Flags struct {
	Reference bool
	DryRun    bool
	Preview   bool
	Out       string
}

// NewCommand creates the merge command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "merge [file.csv]",
		GroupID: "core",
		Short:   "Merge name corrections from a CSV file into items.json",
		Args:    cobra.MaximumNArgs(1),
		Long: `Merge applies name corrections to the item database.

Without --reference the file has no header and each row is
IconFile,EnglishName[,PolishName]. A missing PolishName falls back to the
English name.

With --reference the file has a header row with IconFile,
CorrectEnglishName and CorrectPolishName columns. Rows with an empty
CorrectEnglishName are ignored. The file defaults to
database/reference_matching.csv.

Rows whose IconFile has no record are skipped. items.json is rewritten
once, and only when at least one record changed. --preview prints the
rewritten document instead, and --out writes it to another file.`,
		Example: `  itemctl merge fixes.csv                 # Header-less corrections
  itemctl merge --reference               # Reference sheet at the default path
  itemctl merge --reference sheet.csv     # Reference sheet at another path
  itemctl merge fixes.csv --dry-run -o table
  itemctl merge fixes.csv --preview > items.preview.json
  itemctl merge fixes.csv --out database/items.fixed.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Execute(cmd.Context(), app, cmd.OutOrStdout(), flags, args)
		},
	}

	cmd.Flags().BoolVar(&flags.Reference, "reference", false, "read a reference sheet with a header row")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "report changes without writing items.json")
	cmd.Flags().BoolVar(&flags.Preview, "preview", false, "print the rewritten items.json instead of saving it")
	cmd.Flags().StringVar(&flags.Out, "out", "", "write the result to this file instead of items.json")
	cmd.MarkFlagsMutuallyExclusive("preview", "out")

	return cmd
}

// Execute runs a merge and renders its report to w.
func Execute(ctx context.Context, app application.Application, w io.Writer, flags *Flags, args []string) error {
	path, format, err := source(app, flags, args)
	if err != nil {
		return err
	}

	rows, err := corrections.Open(path, format, app.HeaderColumns())
	if err != nil {
		return err
	}

	store := app.Store()
	ctx = logging.WithFile(ctx, store.Path())
	logger := logging.FromContext(ctx)
	logger.Info().
		Str("csv", path).
		Stringer("csv_format", format).
		Int("rows", len(rows)).
		Msg("Read corrections")

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

	result, applyErr := engine.NewEngine(store, opts...).Apply(ctx, c, rows)
	if result == nil {
		return applyErr
	}
	logger.Info().Msg(result.Summary())

	if flags.Preview && result.HasChanges() && applyErr == nil {
		_, err := preview.WriteTo(w)
		return err
	}

	limit := 0
	if format == corrections.FormatReference {
		limit = constants.ReferenceReportLimit
	}

	renderErr := output.Render(w, output.Format(app.OutputFormat()), result, output.MergeTable(result),
		func(w io.Writer) error {
			if err := report.WriteMergeReport(w, result, limit); err != nil {
				return err
			}
			switch {
			case !result.HasChanges():
				return nil
			case result.DryRun:
				return report.WriteDryRun(w, len(result.Changes))
			default:
				return report.WriteStatus(w, result.Persisted, result.Path)
			}
		})

	if applyErr != nil {
		return applyErr
	}
	return renderErr
}

// source picks the CSV path and layout from flags and arguments.
func source(app application.Application, flags *Flags, args []string) (string, corrections.Format, error) {
	if flags.Reference {
		if len(args) == 1 {
			return args[0], corrections.FormatReference, nil
		}
		return app.ReferenceCSV(), corrections.FormatReference, nil
	}
	if len(args) == 0 {
		return "", 0, errors.NewValidationError("file", nil, "a CSV file is required unless --reference is set")
	}
	return args[0], corrections.FormatPositional, nil
}
