package series

import (
	"errors"
	"testing"
)

func TestRollingReturn(t *testing.T) {
	s := datedSeries(t, 100, 110, 121, 133.1)

	got, err := RollingReturn(s, 2, []Key{KeyClose})
	if err != nil {
		t.Fatalf("RollingReturn: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.Len())
	}

	// 10% a day over a 2-day window is 21%, expressed as a percentage.
	for i := 0; i < got.Len(); i++ {
		if v := got.Value(KeyClose, i); !almostEqual(v, 21.0) {
			t.Errorf("rolling[%d] = %v, want 21.0", i, v)
		}
	}
	if !got.Time(0).Equal(s.Time(2)) {
		t.Errorf("result index starts at %v, want %v", got.Time(0), s.Time(2))
	}
}

func TestRollingReturnWindowBounds(t *testing.T) {
	s := datedSeries(t, 100, 110, 121, 133.1)

	one, err := RollingReturn(s, s.Len()-1, []Key{KeyClose})
	if err != nil {
		t.Fatalf("RollingReturn(len-1): %v", err)
	}
	if one.Len() != 1 {
		t.Errorf("window len-1: expected exactly 1 row, got %d", one.Len())
	}

	if _, err := RollingReturn(s, s.Len(), []Key{KeyClose}); !errors.Is(err, ErrWindowTooLarge) {
		t.Errorf("window = len: expected ErrWindowTooLarge, got %v", err)
	}
	if _, err := RollingReturn(s, s.Len()+5, []Key{KeyClose}); !errors.Is(err, ErrWindowTooLarge) {
		t.Errorf("window > len: expected ErrWindowTooLarge, got %v", err)
	}
	if _, err := RollingReturn(s, 0, []Key{KeyClose}); err == nil {
		t.Error("window 0: expected an error")
	}
}

func TestRollingReturnOverLeveragedColumns(t *testing.T) {
	s := datedSeries(t, 100, 110, 99, 108.9)

	lev, err := RunBatch(s, []float64{2.0, 3.0}, []float64{0.01, 0.01}, 100)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}

	keys := []Key{KeyClose, LeveragedClose(2.0), AdjustedClose(3.0, 0.01)}
	got, err := RollingReturn(lev, 1, keys)
	if err != nil {
		t.Fatalf("RollingReturn: %v", err)
	}

	if len(got.Keys()) != len(keys) {
		t.Fatalf("expected %d columns, got %d", len(keys), len(got.Keys()))
	}
	// A 1-period window over the 2x close is just the 2x return in percent.
	want := lev.Value(LeveragedReturn(2.0), 1) * 100
	if v := got.Value(LeveragedClose(2.0), 0); !almostEqual(v, want) {
		t.Errorf("2x rolling[0] = %v, want %v", v, want)
	}
}

func TestRollingReturnMissingColumn(t *testing.T) {
	s := datedSeries(t, 100, 110, 99)

	if _, err := RollingReturn(s, 1, []Key{LeveragedClose(2.0)}); err == nil {
		t.Error("expected an error for an absent column")
	}
}
