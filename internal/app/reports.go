package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"
	"time"
)

// ListReports prints every report log, current and rotated, with its size.
func (a *App) ListReports(ctx context.Context) error {
	reports, err := a.store.List(ctx)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		fmt.Fprintln(a.Out, "no reports found")
		return nil
	}

	writer := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Identity\tState\tBytes\tModified\tPath")
	for _, r := range reports {
		state := "current"
		if r.Archived {
			state = "archived"
		}
		fmt.Fprintf(writer, "%s\t%s\t%d\t%s\t%s\n", r.Identity, state, r.Size, r.ModTime.Format(time.DateTime), r.Path)
	}
	return writer.Flush()
}

// ShowReport prints the report log of an export as indented JSON.
func (a *App) ShowReport(ctx context.Context, file string) error {
	entries, err := a.store.Load(ctx, file)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(a.Out, "no report entries for %s\n", file)
		return nil
	}
	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "    ")
	return enc.Encode(entries)
}

// ClearReports deletes every generated export, report and chart under the root directory.
func (a *App) ClearReports(ctx context.Context) error {
	root := a.Config.Paths.Root
	fmt.Fprintln(a.Out, "Deleting all generated reports and directories...")

	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(a.Out, "Directory '%s' does not exist.\n", root)
			return nil
		}
		return err
	}
	if err := os.RemoveAll(root); err != nil {
		return fmt.Errorf("delete %s: %w", root, err)
	}

	a.Logger.Info().Str("root", root).Msg("generated files removed")
	fmt.Fprintf(a.Out, "Directory '%s' deleted successfully.\n", root)
	return nil
}
