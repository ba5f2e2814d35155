package dataflows

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/dyike/levlab/internal/config"
)

// FinnhubClient fetches daily candles from the Finnhub REST API. It is
// the alternative to Yahoo Finance for accounts with an API key.
type FinnhubClient struct {
	client *resty.Client
	cache  *CacheManager
	apiKey string
}

// NewFinnhubClient creates a new Finnhub client
func NewFinnhubClient(cfg *config.Config) *FinnhubClient {
	cacheDir := filepath.Join(cfg.DataCacheDir, "finnhub")
	cache := NewCacheManager(cacheDir, 24*time.Hour, cfg.CacheEnabled)

	client := resty.New()
	client.SetBaseURL("https://finnhub.io/api/v1")
	client.SetTimeout(30 * time.Second)

	return &FinnhubClient{
		client: client,
		cache:  cache,
		apiKey: cfg.FinnhubAPIKey,
	}
}

// finnhubCandles is the column-oriented candle payload Finnhub returns.
type finnhubCandles struct {
	Close      []float64 `json:"c"`
	High       []float64 `json:"h"`
	Low        []float64 `json:"l"`
	Open       []float64 `json:"o"`
	Timestamps []int64   `json:"t"`
	Volume     []float64 `json:"v"`
	Status     string    `json:"s"`
}

// HistoricalDaily gets daily bars for a symbol over [start, end].
func (fc *FinnhubClient) HistoricalDaily(symbol string, start, end time.Time) ([]*Bar, error) {
	if fc.apiKey == "" {
		return nil, fmt.Errorf("finnhub API key not configured")
	}
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	symbol = NormalizeSymbol(symbol)

	cacheKey := map[string]interface{}{
		"symbol": symbol,
		"start":  start.Format("2006-01-02"),
		"end":    end.Format("2006-01-02"),
	}

	var cached []*Bar
	if fc.cache.Get("finnhub", "daily", cacheKey, &cached) {
		log.Debug().Str("symbol", symbol).Int("bars", len(cached)).Msg("finnhub cache hit")
		return cached, nil
	}

	var result []*Bar
	err := WithRetry(DefaultRetryConfig(), func() error {
		resp, err := fc.client.R().
			SetQueryParams(map[string]string{
				"symbol":     symbol,
				"resolution": "D",
				"from":       fmt.Sprintf("%d", start.Unix()),
				"to":         fmt.Sprintf("%d", end.Unix()),
				"token":      fc.apiKey,
			}).
			Get("/stock/candle")
		if err != nil {
			return fmt.Errorf("failed to fetch candles for %s: %w", symbol, err)
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
		}

		var candles finnhubCandles
		if err := json.Unmarshal(resp.Body(), &candles); err != nil {
			return fmt.Errorf("failed to parse candle response: %w", err)
		}
		if candles.Status != "ok" {
			return fmt.Errorf("no candle data for %s (%s)", symbol, FormatDateRange(start, end))
		}

		result = make([]*Bar, 0, len(candles.Timestamps))
		for i, ts := range candles.Timestamps {
			bar := &Bar{
				Symbol:    symbol,
				Date:      time.Unix(ts, 0).UTC(),
				Close:     decimal.NewFromFloat(candles.Close[i]),
				AdjClose:  decimal.NewFromFloat(candles.Close[i]),
				Volume:    int64(candles.Volume[i]),
				Timestamp: time.Now(),
			}
			if i < len(candles.Open) {
				bar.Open = decimal.NewFromFloat(candles.Open[i])
			}
			if i < len(candles.High) {
				bar.High = decimal.NewFromFloat(candles.High[i])
			}
			if i < len(candles.Low) {
				bar.Low = decimal.NewFromFloat(candles.Low[i])
			}
			result = append(result, bar)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Str("symbol", symbol).Int("bars", len(result)).
		Str("range", FormatDateRange(start, end)).Msg("fetched finnhub daily history")

	fc.cache.Set("finnhub", "daily", cacheKey, result)
	return result, nil
}
