// Package template implements the template command.
package template

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gvdb/itemctl/cmd/application"
	"github.com/gvdb/itemctl/internal/atomicfile"
	"github.com/gvdb/itemctl/pkg/constants"
	"github.com/gvdb/itemctl/pkg/corrections"
	"github.com/gvdb/itemctl/pkg/errors"
	"github.com/gvdb/itemctl/pkg/logging"
)

// NewCommand creates the template command.
func NewCommand(app application.Application) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:     "template",
		GroupID: "core",
		Short:   "Export an editable CSV of item names",
		Args:    cobra.NoArgs,
		Long: `Template writes the current names of the Materials and Armor items to a
UTF-8 CSV with a BOM so spreadsheet tools open it correctly. Edit the
name columns and feed the file back with "itemctl merge".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if outPath == "" {
				outPath = app.TemplatePath()
			}
			return Execute(cmd.Context(), app, cmd.OutOrStdout(), outPath)
		},
	}

	cmd.Flags().StringVar(&outPath, "output", "", "template path (default is "+constants.DefaultTemplatePath+")")

	return cmd
}

// Execute writes the template to path and reports the item count to w.
func Execute(ctx context.Context, app application.Application, w io.Writer, path string) error {
	c, err := app.Store().Load()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	n, err := corrections.WriteTemplate(&buf, c, app.TemplateGroups())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.NewIOError("mkdir", filepath.Dir(path), err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), constants.FilePermissions); err != nil {
		return err
	}

	logging.FromContext(ctx).Info().Str("template", path).Int("items", n).Msg("Wrote template")
	_, err = fmt.Fprintf(w, "Created template: %s with %d items\n", path, n)
	return err
}
