package series

import (
	"testing"
	"time"
)

func TestNewRejectsUnorderedTimestamps(t *testing.T) {
	day := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	cases := map[string][]PricePoint{
		"duplicate": {
			{Time: day, Close: 100},
			{Time: day, Close: 101},
		},
		"backwards": {
			{Time: day, Close: 100},
			{Time: day.AddDate(0, 0, -1), Close: 101},
		},
	}
	for name, points := range cases {
		if _, err := New(points); err == nil {
			t.Errorf("%s timestamps: expected an error", name)
		}
	}
}

func TestKeyLabels(t *testing.T) {
	cases := []struct {
		key  Key
		want string
	}{
		{KeyClose, "Close"},
		{KeyReturn, "Return"},
		{LeveragedClose(2.0), "2x Leveraged Close"},
		{LeveragedReturn(3.0), "3x Leveraged Return"},
		{LeveragedClose(2.5), "2.5x Leveraged Close"},
		{AdjustedClose(2.0, 0.01), "2x Adjusted Close"},
		{AdjustedReturn(0, 0.01), "Adjusted Return"},
	}
	for _, c := range cases {
		if got := c.key.Label(); got != c.want {
			t.Errorf("Label() = %q, want %q", got, c.want)
		}
	}
}

func TestKeysDisambiguateParameterSets(t *testing.T) {
	// Same role and field under different parameters must never collide.
	keys := map[Key]bool{
		LeveragedClose(2.0):      true,
		LeveragedClose(3.0):      true,
		AdjustedClose(2.0, 0.01): true,
		AdjustedClose(2.0, 0.02): true,
	}
	if len(keys) != 4 {
		t.Fatalf("expected 4 distinct keys, got %d", len(keys))
	}
}

func TestColumnOrderIsInsertionOrder(t *testing.T) {
	s := datedSeries(t, 100, 110, 99)
	lev, err := ApplyLeverage(s, 2.0, 100)
	if err != nil {
		t.Fatalf("ApplyLeverage: %v", err)
	}

	keys := lev.Keys()
	want := []Key{KeyClose, KeyReturn, LeveragedReturn(2.0), LeveragedClose(2.0)}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(keys))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key[%d] = %s, want %s", i, keys[i].Label(), want[i].Label())
		}
	}
}
