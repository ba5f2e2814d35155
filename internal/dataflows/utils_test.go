package dataflows

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCacheManagerRoundTrip(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Hour, true)

	params := map[string]string{"symbol": "SPY"}
	want := []string{"a", "b", "c"}
	if err := cm.Set("test", "list", params, want); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got []string
	if !cm.Get("test", "list", params, &got) {
		t.Fatal("expected cache hit")
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}

	var miss []string
	if cm.Get("test", "list", map[string]string{"symbol": "QQQ"}, &miss) {
		t.Error("unexpected cache hit for different params")
	}
}

func TestCacheManagerDisabled(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Hour, false)

	if err := cm.Set("test", "x", "k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	var got string
	if cm.Get("test", "x", "k", &got) {
		t.Error("disabled cache should never hit")
	}
}

func TestValidateSymbol(t *testing.T) {
	for _, ok := range []string{"SPY", "^GSPC", "brk.b"} {
		if err := ValidateSymbol(ok); err != nil {
			t.Errorf("ValidateSymbol(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"", "   ", "WAYTOOLONGSYMBOL"} {
		if err := ValidateSymbol(bad); err == nil {
			t.Errorf("ValidateSymbol(%q): expected an error", bad)
		}
	}
}

func TestParseDateString(t *testing.T) {
	got, err := ParseDateString("2020-03-15")
	if err != nil {
		t.Fatalf("ParseDateString: %v", err)
	}
	if got.Year() != 2020 || got.Month() != time.March || got.Day() != 15 {
		t.Errorf("parsed %v", got)
	}

	if _, err := ParseDateString("not a date"); err == nil {
		t.Error("expected an error")
	}
}

func TestPricePointsMarksGaps(t *testing.T) {
	day := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := []*Bar{
		{Date: day, Close: decimal.NewFromFloat(100.5)},
		{Date: day.AddDate(0, 0, 1), Close: decimal.Zero},
		{Date: day.AddDate(0, 0, 2), Close: decimal.NewFromFloat(101.25)},
	}

	points := PricePoints(bars)
	if len(points) != 3 {
		t.Fatalf("got %d points", len(points))
	}
	if points[0].Close != 100.5 || points[2].Close != 101.25 {
		t.Errorf("closes not converted: %v, %v", points[0].Close, points[2].Close)
	}
	if !math.IsNaN(points[1].Close) {
		t.Errorf("zero close should become the missing marker, got %v", points[1].Close)
	}
}
