package cli

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dyike/levlab/internal/charts"
	"github.com/dyike/levlab/internal/config"
	"github.com/dyike/levlab/internal/dataflows"
	"github.com/dyike/levlab/internal/series"
	"github.com/dyike/levlab/internal/storage"
)

// loadSeries fetches daily history from the configured provider and
// builds the base price series.
func loadSeries(cfg *config.Config, symbol string, opts runOptions) (*series.Series, error) {
	provider, err := dataflows.NewProvider(cfg)
	if err != nil {
		return nil, err
	}

	bars, err := provider.HistoricalDaily(symbol, opts.Start, opts.End)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no price history for %s (%s)", symbol,
			dataflows.FormatDateRange(opts.Start, opts.End))
	}

	return series.New(dataflows.PricePoints(bars))
}

// firstClose finds the rescaling anchor: the first non-missing close.
func firstClose(s *series.Series) float64 {
	closes, _ := s.Column(series.KeyClose)
	for _, c := range closes {
		if !math.IsNaN(c) {
			return c
		}
	}
	return 1.0
}

func resolveInitial(s *series.Series, opts runOptions) float64 {
	if opts.InitialValue != 0 {
		return opts.InitialValue
	}
	return firstClose(s)
}

func runAnalyze(cfg *config.Config, symbol string, leverage, mer float64, opts runOptions) error {
	symbol = dataflows.NormalizeSymbol(symbol)
	base, err := loadSeries(cfg, symbol, opts)
	if err != nil {
		return err
	}
	initial := resolveInitial(base, opts)

	s, err := series.ApplyLeverage(base, leverage, initial)
	if err != nil {
		return err
	}
	s, err = series.ApplyExpenseDrag(s, mer, initial)
	if err != nil {
		return err
	}

	log.Info().Str("symbol", symbol).Float64("leverage", leverage).Float64("mer", mer).
		Int("rows", s.Len()).Msg("analysis complete")

	closeKeys := []series.Key{
		series.KeyClose,
		series.LeveragedClose(leverage),
		series.AdjustedClose(leverage, mer),
	}
	printSummary(fmt.Sprintf("%s · %gx leverage · %.2f%% MER", symbol, leverage, mer*100), s, closeKeys)

	if err := writeOutputs(cfg, s, closeKeys, fmt.Sprintf("%s Price History", symbol), opts); err != nil {
		return err
	}
	return journalRun(cfg, storage.RunRecord{
		Symbol:        symbol,
		Kind:          "analyze",
		Leverage:      leverage,
		Expense:       mer,
		Rows:          s.Len(),
		FinalClose:    s.FinalValue(series.KeyClose),
		FinalAdjusted: s.FinalValue(series.AdjustedClose(leverage, mer)),
	})
}

func runBatch(cfg *config.Config, symbol string, leverages, mers []float64, opts runOptions) error {
	symbol = dataflows.NormalizeSymbol(symbol)
	base, err := loadSeries(cfg, symbol, opts)
	if err != nil {
		return err
	}
	initial := resolveInitial(base, opts)

	s, err := series.RunBatch(base, leverages, mers, initial)
	if err != nil {
		return err
	}

	log.Info().Str("symbol", symbol).Floats64("leverages", leverages).
		Int("rows", s.Len()).Msg("batch complete")

	closeKeys := []series.Key{series.KeyClose}
	for i := range leverages {
		closeKeys = append(closeKeys, series.AdjustedClose(leverages[i], mers[i]))
	}
	printSummary(fmt.Sprintf("%s · %d parameter sets", symbol, len(leverages)), s, closeKeys)

	if err := writeOutputs(cfg, s, closeKeys, fmt.Sprintf("%s Leverage Comparison", symbol), opts); err != nil {
		return err
	}
	return journalRun(cfg, storage.RunRecord{
		Symbol:     symbol,
		Kind:       "batch",
		Leverage:   leverages[0],
		Expense:    mers[0],
		Rows:       s.Len(),
		FinalClose: s.FinalValue(series.KeyClose),
	})
}

func runRolling(cfg *config.Config, symbol string, windowYears int, leverage, mer float64, opts runOptions) error {
	if windowYears <= 0 {
		return fmt.Errorf("--window-years must be positive, got %d", windowYears)
	}
	symbol = dataflows.NormalizeSymbol(symbol)
	base, err := loadSeries(cfg, symbol, opts)
	if err != nil {
		return err
	}
	// Rolling comparisons are about relative growth; a unit anchor keeps
	// the three paths on the same footing unless overridden.
	initial := opts.InitialValue
	if initial == 0 {
		initial = 1.0
	}

	s, err := series.ApplyLeverage(base, leverage, initial)
	if err != nil {
		return err
	}
	s, err = series.ApplyExpenseDrag(s, mer, initial)
	if err != nil {
		return err
	}

	window := windowYears * series.TradingDaysPerYear
	closeKeys := []series.Key{
		series.KeyClose,
		series.LeveragedClose(leverage),
		series.AdjustedClose(leverage, mer),
	}
	rolled, err := series.RollingReturn(s, window, closeKeys)
	if err != nil {
		return err
	}

	log.Info().Str("symbol", symbol).Int("window_days", window).
		Int("rows", rolled.Len()).Msg("rolling returns complete")

	title := fmt.Sprintf("%d Year Rolling Returns for %s", windowYears, symbol)
	printSummary(title, rolled, closeKeys)

	if err := writeOutputs(cfg, rolled, closeKeys, title, opts); err != nil {
		return err
	}
	return journalRun(cfg, storage.RunRecord{
		Symbol:        symbol,
		Kind:          "rolling",
		Leverage:      leverage,
		Expense:       mer,
		Window:        window,
		Rows:          rolled.Len(),
		FinalClose:    rolled.FinalValue(series.KeyClose),
		FinalAdjusted: rolled.FinalValue(series.AdjustedClose(leverage, mer)),
	})
}

func runSimulate(cfg *config.Config, symbol string, days int, leverage, mer float64, seed int64, unseeded bool, opts runOptions) error {
	symbol = dataflows.NormalizeSymbol(symbol)
	base, err := loadSeries(cfg, symbol, opts)
	if err != nil {
		return err
	}
	derived, err := series.DeriveReturns(base)
	if err != nil {
		return err
	}
	historical, _ := derived.Column(series.KeyReturn)

	initial := opts.InitialValue
	if initial == 0 {
		initial = 1.0
	}

	sim := series.NewSimulator(seed)
	if unseeded {
		sim = series.NewUnseededSimulator()
	}
	s, err := sim.Simulate(historical, days, series.ParamSet{
		Leverage:     leverage,
		Expense:      mer,
		InitialValue: initial,
	})
	if err != nil {
		return err
	}

	log.Info().Str("symbol", symbol).Int("days", days).Bool("unseeded", unseeded).
		Msg("simulation complete")

	closeKeys := []series.Key{
		series.KeyClose,
		series.LeveragedClose(leverage),
		series.AdjustedClose(leverage, mer),
	}
	title := fmt.Sprintf("%s Simulation %d Years", symbol, days/series.TradingDaysPerYear)
	printSummary(title, s, closeKeys)

	if err := writeOutputs(cfg, s, closeKeys, title, opts); err != nil {
		return err
	}
	return journalRun(cfg, storage.RunRecord{
		Symbol:        symbol,
		Kind:          "simulate",
		Leverage:      leverage,
		Expense:       mer,
		Window:        days,
		Seed:          seed,
		Rows:          s.Len(),
		FinalClose:    s.FinalValue(series.KeyClose),
		FinalAdjusted: s.FinalValue(series.AdjustedClose(leverage, mer)),
	})
}

func runHistory(cfg *config.Config, limit int) error {
	store, err := storage.OpenRunStore(cfg.RunDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(limit)
	if err != nil {
		return err
	}
	printRunHistory(runs)
	return nil
}

// writeOutputs renders the optional chart and CSV artifacts.
func writeOutputs(cfg *config.Config, s *series.Series, keys []series.Key, title string, opts runOptions) error {
	if opts.Plot {
		path, err := charts.Save(cfg.ChartsDir, s, keys, title)
		if err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("chart written")
	}
	if opts.CSV {
		name := strings.ReplaceAll(strings.ToLower(title), " ", "_") + ".csv"
		path := filepath.Join(cfg.ResultsDir, "csvs", name)
		if err := storage.WriteSeriesCSV(path, s); err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("csv written")
	}
	return nil
}

// journalRun records the run in the SQLite journal. Journal failures are
// logged, not fatal: the analysis result has already been reported.
func journalRun(cfg *config.Config, record storage.RunRecord) error {
	store, err := storage.OpenRunStore(cfg.RunDBPath)
	if err != nil {
		log.Warn().Err(err).Msg("run journal unavailable")
		return nil
	}
	defer store.Close()

	if err := store.SaveRun(record); err != nil {
		log.Warn().Err(err).Msg("failed to journal run")
	}
	return nil
}
