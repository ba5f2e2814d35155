package dataflows

import (
	"fmt"

	"github.com/dyike/levlab/internal/config"
)

// NewProvider builds the market-data provider selected in the config.
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.DataProvider {
	case "", "yahoo":
		return NewYahooClient(cfg), nil
	case "finnhub":
		return NewFinnhubClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown data provider %q (want yahoo or finnhub)", cfg.DataProvider)
	}
}
