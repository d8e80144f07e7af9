package app

import (
	"context"
	"errors"
	"fmt"

	"coinlens/internal/analytics"
	"coinlens/internal/dataset"
	"coinlens/internal/storage"
)

// AnalyzeOutcome reports what an analysis run produced.
type AnalyzeOutcome struct {
	Result   analytics.Result
	Message  string
	NotFound bool
	Report   storage.AppendResult
}

// Analyze loads the export, runs one model and appends its result to the export's report log.
// An unknown coin is reported on the output and is not persisted.
func (a *App) Analyze(ctx context.Context, opts AnalyzeOptions) (AnalyzeOutcome, error) {
	kind, err := analytics.ParseKind(opts.Kind)
	if err != nil {
		return AnalyzeOutcome{}, err
	}
	if kind.NeedsAsset() && opts.Coin == "" {
		return AnalyzeOutcome{}, fmt.Errorf("--coin is required for %s", kind)
	}

	table, err := a.raw.Load(opts.File)
	if err != nil {
		return AnalyzeOutcome{}, err
	}
	a.Logger.Info().Str("file", opts.File).Int("rows", table.Len()).Msg("table loaded")

	result, err := runModel(kind, table, opts.Coin)
	if err != nil {
		var nf *dataset.NotFoundError
		if errors.As(err, &nf) {
			fmt.Fprintln(a.Out, nf.Error())
			return AnalyzeOutcome{Message: nf.Error(), NotFound: true}, nil
		}
		return AnalyzeOutcome{}, err
	}

	outcome := AnalyzeOutcome{Result: result, Message: result.Message()}
	a.Logger.Info().Str("kind", string(kind)).Str("coin", opts.Coin).Msg("model executed")
	fmt.Fprintf(a.Out, "\n--- Analysis Result ---\n%s\n", outcome.Message)

	outcome.Report, err = a.store.Append(ctx, opts.File, result.Record())
	if err != nil {
		return outcome, fmt.Errorf("append report: %w", err)
	}
	if outcome.Report.Reset {
		fmt.Fprintf(a.Out, "\nWarning: previous report log was unreadable and has been started over\n")
	}
	fmt.Fprintf(a.Out, "\nReport updated successfully in: %s\n", outcome.Report.Path)
	return outcome, nil
}

func runModel(kind analytics.Kind, table dataset.Table, coin string) (analytics.Result, error) {
	switch kind {
	case analytics.KindTrend:
		r, err := analytics.Trend(table, coin)
		return r, err
	case analytics.KindWeightedAverage:
		r, err := analytics.WeightedAverage(table, coin)
		return r, err
	case analytics.KindRegression:
		r, err := analytics.LinearRegression(table, coin)
		return r, err
	case analytics.KindVolatility:
		r, err := analytics.Volatility(table, coin)
		return r, err
	case analytics.KindBestGrowth:
		r, err := analytics.BestGrowth(table)
		return r, err
	}
	return nil, fmt.Errorf("unsupported analysis kind %q", kind)
}
