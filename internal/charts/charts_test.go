package charts

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dyike/levlab/internal/series"
)

func testSeries(t *testing.T) *series.Series {
	t.Helper()
	start := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	points := []series.PricePoint{
		{Time: start, Close: 100},
		{Time: start.AddDate(0, 0, 1), Close: 110},
		{Time: start.AddDate(0, 0, 2), Close: 99},
		{Time: start.AddDate(0, 0, 3), Close: 108.9},
	}
	s, err := series.New(points)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s, err = series.ApplyLeverage(s, 2.0, 100)
	if err != nil {
		t.Fatalf("ApplyLeverage: %v", err)
	}
	return s
}

func TestRenderLines(t *testing.T) {
	s := testSeries(t)

	img, err := RenderLines(s, []series.Key{series.KeyClose, series.LeveragedClose(2.0)}, "Test Price History")
	if err != nil {
		t.Fatalf("RenderLines: %v", err)
	}
	if len(img) == 0 {
		t.Fatal("empty image")
	}
	if !bytes.HasPrefix(img, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderLinesMissingColumn(t *testing.T) {
	s := testSeries(t)

	if _, err := RenderLines(s, []series.Key{series.LeveragedClose(9.0)}, "Missing"); err == nil {
		t.Error("expected an error for an absent column")
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	s := testSeries(t)

	path, err := Save(dir, s, []series.Key{series.KeyClose}, "SPY Price History")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "spy_price_history.png" {
		t.Errorf("unexpected file name %s", filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("chart file missing: %v", err)
	}
}
