package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dyike/levlab/internal/series"
)

// WriteSeriesCSV writes a series as one wide CSV table: a Date (or Step,
// for simulated series) column followed by every derived column in its
// insertion order, headed by the column labels.
func WriteSeriesCSV(path string, s *series.Series) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create csv dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	keys := s.Keys()
	header := make([]string, 0, len(keys)+1)
	if s.Synthetic() {
		header = append(header, "Step")
	} else {
		header = append(header, "Date")
	}
	for _, k := range keys {
		header = append(header, k.Label())
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	row := make([]string, len(header))
	for i := 0; i < s.Len(); i++ {
		if s.Synthetic() {
			row[0] = strconv.Itoa(s.Step(i))
		} else {
			row[0] = s.Time(i).Format("2006-01-02")
		}
		for j, k := range keys {
			row[j+1] = strconv.FormatFloat(s.Value(k, i), 'f', -1, 64)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	return nil
}
