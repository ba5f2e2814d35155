package dataflows

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/rs/zerolog/log"

	"github.com/dyike/levlab/internal/config"
)

// YahooClient fetches daily price history from Yahoo Finance.
type YahooClient struct {
	cache *CacheManager
}

// NewYahooClient creates a new Yahoo Finance client
func NewYahooClient(cfg *config.Config) *YahooClient {
	cacheDir := filepath.Join(cfg.DataCacheDir, "yahoo")
	return &YahooClient{
		cache: NewCacheManager(cacheDir, 24*time.Hour, cfg.CacheEnabled),
	}
}

// HistoricalDaily gets daily bars for a symbol over [start, end].
func (yc *YahooClient) HistoricalDaily(symbol string, start, end time.Time) ([]*Bar, error) {
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
	if yc.cache.Get("yahoo", "daily", cacheKey, &cached) {
		log.Debug().Str("symbol", symbol).Int("bars", len(cached)).Msg("yahoo cache hit")
		return cached, nil
	}

	var result []*Bar
	err := WithRetry(DefaultRetryConfig(), func() error {
		params := &chart.Params{
			Symbol:   symbol,
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
			Interval: datetime.OneDay,
		}

		iter := chart.Get(params)

		result = make([]*Bar, 0)
		for iter.Next() {
			b := iter.Bar()
			result = append(result, &Bar{
				Symbol:    symbol,
				Date:      time.Unix(int64(b.Timestamp), 0).UTC(),
				Open:      b.Open,
				High:      b.High,
				Low:       b.Low,
				Close:     b.Close,
				AdjClose:  b.AdjClose,
				Volume:    int64(b.Volume),
				Timestamp: time.Now(),
			})
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to get daily history for %s: %w", symbol, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Str("symbol", symbol).Int("bars", len(result)).
		Str("range", FormatDateRange(start, end)).Msg("fetched yahoo daily history")

	yc.cache.Set("yahoo", "daily", cacheKey, result)
	return result, nil
}
