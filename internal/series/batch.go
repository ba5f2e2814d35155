package series

import "fmt"

// RunBatch applies leverage scaling and expense drag for each
// (leverage, expense) pair against one shared base series, producing a
// wide table on the same index. Pairs are processed in input order, which
// fixes the column order of the result. Leveraged and adjusted columns
// left over from earlier runs are stripped first so the batch never mixes
// with stale results; the base close and return columns are preserved.
//
// Duplicate (leverage, expense) pairs map to the same column keys and the
// later pair wins; deduplication is the caller's responsibility.
func RunBatch(s *Series, leverages, expenses []float64, initialValue float64) (*Series, error) {
	if len(leverages) != len(expenses) {
		return nil, fmt.Errorf("run batch: %w: %d leverages vs %d expense ratios",
			ErrParameterLengthMismatch, len(leverages), len(expenses))
	}
	src := s
	if !src.Has(KeyReturn) {
		var err error
		if src, err = DeriveReturns(src); err != nil {
			return nil, fmt.Errorf("run batch: %w", err)
		}
	}
	src = src.selectRoles(RoleBase)
	for i := range leverages {
		var err error
		if src, err = ApplyLeverage(src, leverages[i], initialValue); err != nil {
			return nil, fmt.Errorf("run batch: %w", err)
		}
		if src, err = applyExpenseDragTo(src, LeveragedReturn(leverages[i]), expenses[i], initialValue); err != nil {
			return nil, fmt.Errorf("run batch: %w", err)
		}
	}
	return src, nil
}

// applyExpenseDragTo is ApplyExpenseDrag with an explicit source column,
// used by batch runs to pin each drag to its own leverage pass.
func applyExpenseDragTo(s *Series, srcKey Key, annualExpense, initialValue float64) (*Series, error) {
	source, ok := s.Column(srcKey)
	if !ok {
		return nil, fmt.Errorf("apply expense drag: no %s column", srcKey.Label())
	}
	daily := annualExpense / TradingDaysPerYear
	adjReturns := make([]float64, len(source))
	adjCloses := make([]float64, len(source))
	acc := initialValue
	for i, r := range source {
		ar := r - daily
		acc *= 1 + ar
		adjReturns[i] = ar
		adjCloses[i] = acc
	}
	out := s.clone()
	out.set(AdjustedReturn(srcKey.Leverage, annualExpense), adjReturns)
	out.set(AdjustedClose(srcKey.Leverage, annualExpense), adjCloses)
	return out, nil
}
