package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// promptForSymbol prompts the user for a ticker or index symbol.
func promptForSymbol() (string, error) {
	var symbol string
	prompt := &survey.Input{
		Message: "Enter the symbol to analyze (e.g., ^GSPC, SPY, QQQ):",
		Help:    "Index symbols start with ^, e.g. ^GSPC for the S&P 500",
	}

	err := survey.AskOne(prompt, &symbol, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(strings.ToUpper(val.(string)))
		if len(str) == 0 {
			return fmt.Errorf("symbol cannot be empty")
		}
		if len(str) > 10 {
			return fmt.Errorf("symbol too long (max 10 characters)")
		}
		matched, _ := regexp.MatchString(`^[\^A-Z0-9.-]+$`, str)
		if !matched {
			return fmt.Errorf("invalid symbol format")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(strings.ToUpper(symbol)), nil
}

// promptForFloat prompts for a single float value with a default.
func promptForFloat(message string, def float64) (float64, error) {
	var raw string
	prompt := &survey.Input{
		Message: message,
		Default: strconv.FormatFloat(def, 'g', -1, 64),
	}

	err := survey.AskOne(prompt, &raw, survey.WithValidator(func(val interface{}) error {
		if _, err := strconv.ParseFloat(strings.TrimSpace(val.(string)), 64); err != nil {
			return fmt.Errorf("enter a number")
		}
		return nil
	}))
	if err != nil {
		return 0, err
	}

	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

// promptForInt prompts for a single integer value with a default.
func promptForInt(message string, def int) (int, error) {
	var raw string
	prompt := &survey.Input{
		Message: message,
		Default: strconv.Itoa(def),
	}

	err := survey.AskOne(prompt, &raw, survey.WithValidator(func(val interface{}) error {
		v, err := strconv.Atoi(strings.TrimSpace(val.(string)))
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if v <= 0 {
			return fmt.Errorf("must be positive")
		}
		return nil
	}))
	if err != nil {
		return 0, err
	}

	return strconv.Atoi(strings.TrimSpace(raw))
}

// promptForAction asks which pipeline to run.
func promptForAction() (string, error) {
	var action string
	prompt := &survey.Select{
		Message: "What would you like to run?",
		Options: []string{"analyze", "batch", "rolling", "simulate", "history", "quit"},
		Default: "analyze",
	}
	if err := survey.AskOne(prompt, &action); err != nil {
		return "", err
	}
	return action, nil
}
