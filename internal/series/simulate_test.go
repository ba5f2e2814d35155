package series

import (
	"errors"
	"math"
	"testing"
)

func TestSimulateDeterministicWithSeed(t *testing.T) {
	historical := []float64{0.01, -0.02, 0.005}
	set := ParamSet{Leverage: 2.0, Expense: 0.01, InitialValue: 100}

	a, err := NewSimulator(42).Simulate(historical, 5, set)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	b, err := NewSimulator(42).Simulate(historical, 5, set)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	for _, k := range a.Keys() {
		av, _ := a.Column(k)
		bv, _ := b.Column(k)
		for i := range av {
			if av[i] != bv[i] {
				t.Fatalf("%s[%d] differs across same-seed runs: %v vs %v", k.Label(), i, av[i], bv[i])
			}
		}
	}
}

func TestSimulateSeedsDiverge(t *testing.T) {
	historical := []float64{0.01, -0.02, 0.005, 0.03, -0.01}
	set := ParamSet{Leverage: 1.0, Expense: 0, InitialValue: 1}

	a, err := NewSimulator(1).Simulate(historical, 50, set)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	b, err := NewSimulator(2).Simulate(historical, 50, set)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	same := true
	for i := 0; i < a.Len(); i++ {
		if a.Value(KeyReturn, i) != b.Value(KeyReturn, i) {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical draws")
	}
}

func TestSimulateDrawsFromSource(t *testing.T) {
	historical := []float64{0.01, -0.02, 0.005}
	s, err := NewSimulator(7).Simulate(historical, 200, ParamSet{Leverage: 2.0, Expense: 0.01, InitialValue: 1})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	if s.Len() != 200 {
		t.Fatalf("expected 200 rows, got %d", s.Len())
	}
	if !s.Synthetic() {
		t.Error("simulated series should carry a step index")
	}
	if s.Step(0) != 0 || s.Step(s.Len()-1) != s.Len()-1 {
		t.Errorf("step index runs %d..%d, want 0..%d", s.Step(0), s.Step(s.Len()-1), s.Len()-1)
	}

	for i := 0; i < s.Len(); i++ {
		r := s.Value(KeyReturn, i)
		found := false
		for _, h := range historical {
			if r == h {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("draw %d (%v) is not in the historical sample", i, r)
		}
	}
}

func TestSimulateCompoundsPath(t *testing.T) {
	s, err := NewSimulator(3).Simulate([]float64{0.01}, 4, ParamSet{Leverage: 2.0, Expense: 0, InitialValue: 100})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	// A one-element sample makes every draw 1%, so both paths are exact.
	for i := 0; i < s.Len(); i++ {
		wantBase := 100 * math.Pow(1.01, float64(i+1))
		if c := s.Value(KeyClose, i); !almostEqual(c, wantBase) {
			t.Errorf("close[%d] = %v, want %v", i, c, wantBase)
		}
		wantLev := 100 * math.Pow(1.02, float64(i+1))
		if c := s.Value(LeveragedClose(2.0), i); !almostEqual(c, wantLev) {
			t.Errorf("leveraged close[%d] = %v, want %v", i, c, wantLev)
		}
	}
}

func TestSimulateEmptySource(t *testing.T) {
	_, err := NewSimulator(1).Simulate(nil, 10, ParamSet{Leverage: 2.0, Expense: 0.01, InitialValue: 1})
	if !errors.Is(err, ErrEmptySource) {
		t.Fatalf("expected ErrEmptySource, got %v", err)
	}
}

func TestSimulateInvalidLength(t *testing.T) {
	if _, err := NewSimulator(1).Simulate([]float64{0.01}, 0, ParamSet{InitialValue: 1}); err == nil {
		t.Error("length 0: expected an error")
	}
}
