package app

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"coinlens/internal/analytics"
	"coinlens/internal/dataset"
)

// Inspect prints the head of a normalized export, its shape and column kinds.
func (a *App) Inspect(ctx context.Context, opts InspectOptions) error {
	table, err := a.raw.Load(opts.File)
	if err != nil {
		return err
	}

	limit := opts.Limit
	if limit <= 0 || limit > table.Len() {
		limit = table.Len()
	}

	fmt.Fprintf(a.Out, "--- Cleaned table for: %s ---\n", opts.File)
	writer := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "#\tName\tSymbol\tRank\tPrice (USD)\t1h%\t24h%\t7d%")
	for i := 0; i < limit; i++ {
		row := table.Row(i)
		rank, _ := row.Get("rank")
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i,
			sanitizeInline(row.Name()),
			sanitizeInline(row.Symbol()),
			sanitizeInline(rank),
			formatFloat(row.PriceUSD, 2),
			formatFloat(row.PercentChange1h, 2),
			formatFloat(row.PercentChange24h, 2),
			formatFloat(row.PercentChange7d, 2),
		)
	}
	writer.Flush()

	fmt.Fprintf(a.Out, "\nShape: (%d, %d)\n", table.Len(), dataset.ColumnCount)
	fmt.Fprintln(a.Out, "Column kinds:")
	kinds := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	for i, col := range dataset.Columns {
		kind := "text"
		if dataset.IsNumeric(i) {
			kind = "numeric"
		}
		fmt.Fprintf(kinds, "  %s\t%s\n", col, kind)
	}
	kinds.Flush()

	if opts.Rank {
		fmt.Fprintln(a.Out, "\nWeighted growth ranking:")
		ranked := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
		for pos, s := range analytics.Rank(table) {
			fmt.Fprintf(ranked, "  %d.\t%s\t%s%%\n", pos+1, sanitizeInline(s.Name), decimal.NewFromFloat(s.Value).StringFixed(4))
		}
		ranked.Flush()
	}
	return nil
}

func formatFloat(f dataset.Float, places int32) string {
	if !f.Valid {
		return "NaN"
	}
	return decimal.NewFromFloat(f.Float64).StringFixed(places)
}

func sanitizeInline(v string) string {
	cleaned := strings.ReplaceAll(v, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", " ")
	cleaned = strings.ReplaceAll(cleaned, "\t", " ")
	return cleaned
}
