package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dyike/levlab/internal/config"
	"github.com/dyike/levlab/internal/dataflows"
)

// newAnalyzeCmd creates the analyze command
func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze SYMBOL",
		Short: "Run the single-leverage pipeline for a symbol",
		Long: `Download daily history, derive returns, apply a leverage multiplier and an
annualized expense ratio, and report the resulting price paths.
Example: levlab analyze ^GSPC --leverage 2 --mer 0.01 --plot --csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := commonOptions(cmd)
			if err != nil {
				return err
			}
			leverage, _ := cmd.Flags().GetFloat64("leverage")
			mer, _ := cmd.Flags().GetFloat64("mer")
			return runAnalyze(cfg, args[0], leverage, mer, opts)
		},
	}
	addCommonFlags(cmd)
	cmd.Flags().Float64("leverage", 2.0, "Leverage multiplier (negative for inverse exposure)")
	cmd.Flags().Float64("mer", 0.01, "Annualized expense ratio, 0.01 = 1%")
	return cmd
}

// newBatchCmd creates the batch command
func newBatchCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch SYMBOL",
		Short: "Compare several leverage/expense parameter sets side by side",
		Long: `Run the pipeline once per (leverage, expense) pair against one shared base
series and merge the results into a single wide table.
Example: levlab batch ^GSPC --leverages 2,3 --mers 0.01,0.01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := commonOptions(cmd)
			if err != nil {
				return err
			}
			leverages, err := parseFloatList(cmd, "leverages")
			if err != nil {
				return err
			}
			mers, err := parseFloatList(cmd, "mers")
			if err != nil {
				return err
			}
			return runBatch(cfg, args[0], leverages, mers, opts)
		},
	}
	addCommonFlags(cmd)
	cmd.Flags().String("leverages", "2,3", "Comma-separated leverage multipliers")
	cmd.Flags().String("mers", "0.01,0.01", "Comma-separated expense ratios, one per leverage")
	return cmd
}

// newRollingCmd creates the rolling command
func newRollingCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rolling SYMBOL",
		Short: "Compute trailing rolling-window returns",
		Long: `Compute the trailing percentage change over a fixed window for the base,
leveraged and expense-adjusted price paths.
Example: levlab rolling ^GSPC --window-years 30 --leverage 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := commonOptions(cmd)
			if err != nil {
				return err
			}
			years, _ := cmd.Flags().GetInt("window-years")
			leverage, _ := cmd.Flags().GetFloat64("leverage")
			mer, _ := cmd.Flags().GetFloat64("mer")
			return runRolling(cfg, args[0], years, leverage, mer, opts)
		},
	}
	addCommonFlags(cmd)
	cmd.Flags().Int("window-years", 30, "Rolling window length in years (252 trading days each)")
	cmd.Flags().Float64("leverage", 3.0, "Leverage multiplier")
	cmd.Flags().Float64("mer", 0.01, "Annualized expense ratio")
	return cmd
}

// newSimulateCmd creates the simulate command
func newSimulateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate SYMBOL",
		Short: "Bootstrap-resample a synthetic return path",
		Long: `Draw daily returns with replacement from a symbol's history to synthesize a
path of the requested length, then apply leverage and expense drag.
Example: levlab simulate ^GSPC --days 7560 --seed 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := commonOptions(cmd)
			if err != nil {
				return err
			}
			days, _ := cmd.Flags().GetInt("days")
			leverage, _ := cmd.Flags().GetFloat64("leverage")
			mer, _ := cmd.Flags().GetFloat64("mer")
			seed, _ := cmd.Flags().GetInt64("seed")
			unseeded, _ := cmd.Flags().GetBool("unseeded")
			if unseeded && cmd.Flags().Changed("seed") {
				return fmt.Errorf("--seed and --unseeded are mutually exclusive")
			}
			return runSimulate(cfg, args[0], days, leverage, mer, seed, unseeded, opts)
		},
	}
	addCommonFlags(cmd)
	cmd.Flags().Int("days", 30*252, "Length of the simulated path in trading days")
	cmd.Flags().Float64("leverage", 2.0, "Leverage multiplier")
	cmd.Flags().Float64("mer", 0.01, "Annualized expense ratio")
	cmd.Flags().Int64("seed", 1, "Random seed; identical seeds reproduce identical paths")
	cmd.Flags().Bool("unseeded", false, "Seed from the clock instead (not reproducible)")
	return cmd
}

// newHistoryCmd creates the history command
func newHistoryCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled analysis runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return runHistory(cfg, limit)
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum number of runs to list")
	return cmd
}

// newConfigCmd creates the config command
func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	})

	return configCmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("levlab v1.0.0")
			fmt.Println("Leveraged index return laboratory")
		},
	}
}

// runOptions carries the flags shared by every pipeline command.
type runOptions struct {
	Start        time.Time
	End          time.Time
	InitialValue float64 // 0 means "first close of the series"
	Plot         bool
	CSV          bool
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("start", "1950-01-01", "History start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "History end date (YYYY-MM-DD, today if not provided)")
	cmd.Flags().Float64("initial", 0, "Rescaling anchor for compounded paths (first close if 0)")
	cmd.Flags().Bool("plot", false, "Render a PNG chart under the results directory")
	cmd.Flags().Bool("csv", false, "Write the result table as CSV under the results directory")
}

func commonOptions(cmd *cobra.Command) (runOptions, error) {
	var opts runOptions

	startStr, _ := cmd.Flags().GetString("start")
	start, err := dataflows.ParseDateString(startStr)
	if err != nil {
		return opts, fmt.Errorf("invalid --start: %w", err)
	}
	opts.Start = start

	opts.End = time.Now()
	if endStr, _ := cmd.Flags().GetString("end"); endStr != "" {
		end, err := dataflows.ParseDateString(endStr)
		if err != nil {
			return opts, fmt.Errorf("invalid --end: %w", err)
		}
		opts.End = end
	}

	opts.InitialValue, _ = cmd.Flags().GetFloat64("initial")
	opts.Plot, _ = cmd.Flags().GetBool("plot")
	opts.CSV, _ = cmd.Flags().GetBool("csv")
	return opts, nil
}

func parseFloatList(cmd *cobra.Command, name string) ([]float64, error) {
	raw, _ := cmd.Flags().GetString(name)
	parts := strings.Split(raw, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s value %q: %w", name, p, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("--%s must list at least one value", name)
	}
	return out, nil
}
