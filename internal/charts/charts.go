package charts

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	charts "github.com/vicanso/go-charts/v2"

	"github.com/dyike/levlab/internal/series"
)

// RenderLines draws the named columns of a series as one labeled PNG line
// chart. Dated series get month labels on the x axis, simulated series get
// day-step labels. Every requested column must be fully defined, which the
// core guarantees for derived series.
func RenderLines(s *series.Series, keys []series.Key, title string) ([]byte, error) {
	if s.Len() < 2 {
		return nil, fmt.Errorf("render %q: not enough data points", title)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("render %q: no columns requested", title)
	}

	values := make([][]float64, 0, len(keys))
	names := make([]string, 0, len(keys))
	var yMin, yMax float64
	first := true
	for _, k := range keys {
		col, ok := s.Column(k)
		if !ok {
			return nil, fmt.Errorf("render %q: series has no %s column", title, k.Label())
		}
		for _, v := range col {
			if first {
				yMin, yMax = v, v
				first = false
				continue
			}
			if v < yMin {
				yMin = v
			}
			if v > yMax {
				yMax = v
			}
		}
		values = append(values, col)
		names = append(names, k.Label())
	}

	pad := (yMax - yMin) * 0.05
	yMin -= pad
	yMax += pad

	xLabels := make([]string, s.Len())
	for i := range xLabels {
		if s.Synthetic() {
			xLabels[i] = strconv.Itoa(s.Step(i))
		} else {
			xLabels[i] = s.Time(i).Format("2006-01")
		}
	}

	painter, err := charts.LineRender(values,
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: xLabels, BoundaryGap: charts.FalseFlag(), SplitNumber: 10}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("render %q: %w", title, err)
	}
	return painter.Bytes()
}

// Save renders the chart and writes it under dir, returning the file path.
// The file name follows the title, lowercased with spaces replaced.
func Save(dir string, s *series.Series, keys []series.Key, title string) (string, error) {
	img, err := RenderLines(s, keys, title)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}
	name := strings.ReplaceAll(strings.ToLower(title), " ", "_") + ".png"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return "", fmt.Errorf("write chart: %w", err)
	}
	return path, nil
}
