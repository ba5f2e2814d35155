package dataflows

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dyike/levlab/internal/series"
)

// Bar is one daily price sample as fetched from a provider. Prices stay
// decimal at the ingestion boundary; the core works in float64.
type Bar struct {
	Symbol    string          `json:"symbol"`
	Date      time.Time       `json:"date"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	AdjClose  decimal.Decimal `json:"adj_close"`
	Volume    int64           `json:"volume"`
	Timestamp time.Time       `json:"timestamp"`
}

// PricePoints converts fetched bars to the core's price points. A
// non-positive close is a provider gap and becomes the missing marker.
func PricePoints(bars []*Bar) []series.PricePoint {
	points := make([]series.PricePoint, len(bars))
	for i, b := range bars {
		close, _ := b.Close.Float64()
		if close <= 0 {
			close = math.NaN()
		}
		points[i] = series.PricePoint{Time: b.Date, Close: close}
	}
	return points
}

// Provider fetches a daily close-price history for a symbol. Results are
// ordered by date, free of duplicate days.
type Provider interface {
	HistoricalDaily(symbol string, start, end time.Time) ([]*Bar, error)
}
