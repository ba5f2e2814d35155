package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/dyike/levlab/internal/config"
)

// runInteractiveMode walks the user through pipeline runs until they quit.
func runInteractiveMode(cfg *config.Config) error {
	fmt.Println(titleStyle.Render("levlab · leveraged index return laboratory"))

	for {
		action, err := promptForAction()
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			return err
		}

		switch action {
		case "quit":
			return nil
		case "history":
			err = runHistory(cfg, 20)
		default:
			err = runInteractiveAction(cfg, action)
		}
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			fmt.Println(dimStyle.Render("error: " + err.Error()))
		}
	}
}

func runInteractiveAction(cfg *config.Config, action string) error {
	symbol, err := promptForSymbol()
	if err != nil {
		return err
	}

	opts := runOptions{
		Start: time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Now(),
		Plot:  true,
	}

	switch action {
	case "analyze":
		leverage, err := promptForFloat("Leverage multiplier:", 2.0)
		if err != nil {
			return err
		}
		mer, err := promptForFloat("Annual expense ratio (0.01 = 1%):", 0.01)
		if err != nil {
			return err
		}
		return runAnalyze(cfg, symbol, leverage, mer, opts)

	case "batch":
		first, err := promptForFloat("First leverage multiplier:", 2.0)
		if err != nil {
			return err
		}
		second, err := promptForFloat("Second leverage multiplier:", 3.0)
		if err != nil {
			return err
		}
		mer, err := promptForFloat("Annual expense ratio for both:", 0.01)
		if err != nil {
			return err
		}
		return runBatch(cfg, symbol, []float64{first, second}, []float64{mer, mer}, opts)

	case "rolling":
		years, err := promptForInt("Rolling window in years:", 30)
		if err != nil {
			return err
		}
		leverage, err := promptForFloat("Leverage multiplier:", 3.0)
		if err != nil {
			return err
		}
		mer, err := promptForFloat("Annual expense ratio:", 0.01)
		if err != nil {
			return err
		}
		return runRolling(cfg, symbol, years, leverage, mer, opts)

	case "simulate":
		days, err := promptForInt("Simulation length in trading days:", 30*252)
		if err != nil {
			return err
		}
		leverage, err := promptForFloat("Leverage multiplier:", 2.0)
		if err != nil {
			return err
		}
		mer, err := promptForFloat("Annual expense ratio:", 0.01)
		if err != nil {
			return err
		}
		seed, err := promptForInt("Random seed:", 1)
		if err != nil {
			return err
		}
		return runSimulate(cfg, symbol, days, leverage, mer, int64(seed), false, opts)
	}

	return fmt.Errorf("unknown action %q", action)
}
