package series

import (
	"fmt"
	"math"
)

// RollingReturn computes the trailing percentage change over window
// periods for each named price column:
//
//	roll_i = 100 * (p_i / p_{i-window} - 1)
//
// The result keeps the input index minus the first window rows, where the
// change is undefined, and contains exactly the requested columns. A
// window of at least the series length would leave nothing and returns
// ErrWindowTooLarge; an empty series is always a misconfiguration, never
// a result.
func RollingReturn(s *Series, window int, keys []Key) (*Series, error) {
	if window <= 0 {
		return nil, fmt.Errorf("rolling return: window must be positive, got %d", window)
	}
	if window >= s.Len() {
		return nil, fmt.Errorf("rolling return: %w: window %d over %d rows", ErrWindowTooLarge, window, s.Len())
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("rolling return: no columns requested")
	}

	n := s.Len() - window
	rolled := make([][]float64, len(keys))
	for j, k := range keys {
		col, ok := s.Column(k)
		if !ok {
			return nil, fmt.Errorf("rolling return: series has no %s column", k.Label())
		}
		vals := make([]float64, n)
		for i := window; i < s.Len(); i++ {
			vals[i-window] = (col[i]/col[i-window] - 1) * 100
		}
		rolled[j] = vals
	}

	// Raw close columns can still carry missing samples; drop any row a
	// gap makes undefined, like the per-row drop in return derivation.
	keep := make([]int, 0, n)
	for i := 0; i < n; i++ {
		defined := true
		for _, vals := range rolled {
			if math.IsNaN(vals[i]) {
				defined = false
				break
			}
		}
		if defined {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return nil, fmt.Errorf("rolling return: %w: no row has %d periods of history", ErrInsufficientData, window)
	}

	out := &Series{
		n:    n,
		cols: make(map[Key][]float64, len(keys)),
	}
	if !s.Synthetic() {
		out.times = s.times[window:]
	} else {
		out.stepOffset = s.stepOffset + window
	}
	for j, k := range keys {
		out.set(k, rolled[j])
	}
	if len(keep) < n {
		out = out.filterRows(keep)
	}
	return out, nil
}
