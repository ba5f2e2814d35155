package series

import (
	"fmt"
	"math"
)

// ParamSet bundles the knobs for one leveraged-fund scenario. InitialValue
// anchors the compounded close paths; by convention it is the first close
// of the reference series, or 1.0 for normalized comparisons.
type ParamSet struct {
	Leverage     float64
	Expense      float64 // annualized expense ratio, 0.01 = 1%
	InitialValue float64
}

// DeriveReturns computes simple daily returns between consecutive closes:
// r_i = close_i/close_{i-1} - 1. The first row has no predecessor and is
// dropped, as is any row whose return would need a missing close on either
// end. Returns ErrInsufficientData when no valid consecutive pair exists.
func DeriveReturns(s *Series) (*Series, error) {
	closes, ok := s.Column(KeyClose)
	if !ok {
		return nil, fmt.Errorf("derive returns: %w: series has no close column", ErrInsufficientData)
	}
	keep := make([]int, 0, s.Len())
	returns := make([]float64, 0, s.Len())
	for i := 1; i < s.Len(); i++ {
		prev, cur := closes[i-1], closes[i]
		if math.IsNaN(prev) || math.IsNaN(cur) {
			continue
		}
		keep = append(keep, i)
		returns = append(returns, cur/prev-1)
	}
	if len(keep) == 0 {
		return nil, fmt.Errorf("derive returns: %w: need at least 2 consecutive valid closes, have %d rows", ErrInsufficientData, s.Len())
	}
	out := s.filterRows(keep)
	out.set(KeyReturn, returns)
	return out, nil
}

// ApplyLeverage scales daily returns by the leverage multiplier and
// reconstructs a close path by cumulative compounding from initialValue.
// Negative and fractional multipliers are allowed; nothing is clamped.
// Base returns are derived first when the series does not carry them yet.
func ApplyLeverage(s *Series, leverage, initialValue float64) (*Series, error) {
	src := s
	if !src.Has(KeyReturn) {
		var err error
		if src, err = DeriveReturns(src); err != nil {
			return nil, fmt.Errorf("apply leverage: %w", err)
		}
	}
	base, _ := src.Column(KeyReturn)
	levReturns := make([]float64, len(base))
	levCloses := make([]float64, len(base))
	acc := initialValue
	for i, r := range base {
		lr := r * leverage
		acc *= 1 + lr
		levReturns[i] = lr
		levCloses[i] = acc
	}
	out := src.clone()
	out.set(LeveragedReturn(leverage), levReturns)
	out.set(LeveragedClose(leverage), levCloses)
	return out, nil
}

// ApplyExpenseDrag models an annualized expense ratio (MER) as a constant
// per-day drag of annualExpense/252 subtracted from the daily returns, and
// reconstructs the adjusted close path by compounding from initialValue.
//
// The drag applies to the most recently added leveraged-return column when
// one exists, and to the base returns otherwise. The preference is a fixed
// rule, not a caller choice: an adjusted series models the fee on top of
// whatever exposure was built last.
func ApplyExpenseDrag(s *Series, annualExpense, initialValue float64) (*Series, error) {
	src := s
	srcKey, ok := src.latestLeveragedReturn()
	if !ok {
		if !src.Has(KeyReturn) {
			var err error
			if src, err = DeriveReturns(src); err != nil {
				return nil, fmt.Errorf("apply expense drag: %w", err)
			}
		}
		srcKey = KeyReturn
	}
	return applyExpenseDragTo(src, srcKey, annualExpense, initialValue)
}

// latestLeveragedReturn finds the most recently added leveraged-return
// column, if any.
func (s *Series) latestLeveragedReturn() (Key, bool) {
	for i := len(s.order) - 1; i >= 0; i-- {
		k := s.order[i]
		if k.Role == RoleLeveraged && k.Field == FieldReturn {
			return k, true
		}
	}
	return Key{}, false
}
