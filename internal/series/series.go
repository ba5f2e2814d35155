package series

import (
	"fmt"
	"math"
	"time"
)

// TradingDaysPerYear is the business-day count used to convert annualized
// figures (expense ratios, window lengths in years) to per-day figures.
const TradingDaysPerYear = 252

// Role identifies which stage of the pipeline produced a column.
type Role string

const (
	RoleBase      Role = "base"
	RoleLeveraged Role = "leveraged"
	RoleAdjusted  Role = "adjusted"
)

// Field identifies what a column holds.
type Field string

const (
	FieldClose  Field = "close"
	FieldReturn Field = "return"
)

// Key identifies one derived column of a Series. Base columns leave
// Leverage and Expense zero; leveraged and adjusted columns carry the
// parameters that produced them, so results from different parameter
// sets never collide in the column map.
type Key struct {
	Role     Role
	Field    Field
	Leverage float64
	Expense  float64
}

// The two raw columns every series starts from.
var (
	KeyClose  = Key{Role: RoleBase, Field: FieldClose}
	KeyReturn = Key{Role: RoleBase, Field: FieldReturn}
)

// LeveragedClose keys the compounded close path for a leverage multiplier.
func LeveragedClose(leverage float64) Key {
	return Key{Role: RoleLeveraged, Field: FieldClose, Leverage: leverage}
}

// LeveragedReturn keys the scaled daily returns for a leverage multiplier.
func LeveragedReturn(leverage float64) Key {
	return Key{Role: RoleLeveraged, Field: FieldReturn, Leverage: leverage}
}

// AdjustedClose keys the expense-adjusted close path. Leverage is zero when
// the drag was applied to the base returns rather than a leveraged column.
func AdjustedClose(leverage, expense float64) Key {
	return Key{Role: RoleAdjusted, Field: FieldClose, Leverage: leverage, Expense: expense}
}

// AdjustedReturn keys the expense-adjusted daily returns.
func AdjustedReturn(leverage, expense float64) Key {
	return Key{Role: RoleAdjusted, Field: FieldReturn, Leverage: leverage, Expense: expense}
}

// Label renders the display name used for chart legends and CSV headers,
// e.g. "Close", "2x Leveraged Close", "3x Adjusted Return".
func (k Key) Label() string {
	name := "Close"
	if k.Field == FieldReturn {
		name = "Return"
	}
	switch k.Role {
	case RoleLeveraged:
		return fmt.Sprintf("%gx Leveraged %s", k.Leverage, name)
	case RoleAdjusted:
		if k.Leverage == 0 {
			return "Adjusted " + name
		}
		return fmt.Sprintf("%gx Adjusted %s", k.Leverage, name)
	default:
		return name
	}
}

// PricePoint is a single raw observation. A NaN close marks a missing
// sample; derivations drop the affected rows rather than imputing them.
type PricePoint struct {
	Time  time.Time
	Close float64
}

// Series is an immutable ordered series of observations plus derived
// columns. Dated series index by calendar timestamp; simulated series
// use a synthetic integer step index. Transformations never modify a
// Series in place: they return a new one sharing column slices with the
// input, so a base series can be reused across parameter sets.
type Series struct {
	times      []time.Time // nil for synthetic step-indexed series
	stepOffset int
	n          int
	cols       map[Key][]float64
	order      []Key
}

// New builds a dated series from raw price points. Timestamps must be
// strictly increasing; the market-data layer guarantees this, the check
// here surfaces provider bugs early.
func New(points []PricePoint) (*Series, error) {
	times := make([]time.Time, len(points))
	closes := make([]float64, len(points))
	for i, p := range points {
		if i > 0 && !p.Time.After(points[i-1].Time) {
			return nil, fmt.Errorf("price point %d: timestamp %s is not after %s",
				i, p.Time.Format("2006-01-02"), points[i-1].Time.Format("2006-01-02"))
		}
		times[i] = p.Time
		closes[i] = p.Close
	}
	s := &Series{
		times: times,
		n:     len(points),
		cols:  make(map[Key][]float64, 2),
	}
	s.set(KeyClose, closes)
	return s, nil
}

// newSynthetic builds a step-indexed series from already-computed return
// and close columns of equal length.
func newSynthetic(closes, returns []float64) *Series {
	s := &Series{
		n:    len(closes),
		cols: make(map[Key][]float64, 2),
	}
	s.set(KeyClose, closes)
	s.set(KeyReturn, returns)
	return s
}

// Len reports the number of rows.
func (s *Series) Len() int { return s.n }

// Synthetic reports whether the series uses a step index instead of
// calendar timestamps.
func (s *Series) Synthetic() bool { return s.times == nil }

// Time returns the timestamp at row i of a dated series.
func (s *Series) Time(i int) time.Time {
	if s.Synthetic() {
		return time.Time{}
	}
	return s.times[i]
}

// Step returns the synthetic step index at row i.
func (s *Series) Step(i int) int { return s.stepOffset + i }

// Keys returns the column keys in insertion order.
func (s *Series) Keys() []Key {
	return append([]Key(nil), s.order...)
}

// Has reports whether the column exists.
func (s *Series) Has(k Key) bool {
	_, ok := s.cols[k]
	return ok
}

// Column returns the values of a column. The returned slice is shared
// with the series and must not be modified.
func (s *Series) Column(k Key) ([]float64, bool) {
	col, ok := s.cols[k]
	return col, ok
}

// Value returns the value of column k at row i.
func (s *Series) Value(k Key, i int) float64 {
	col, ok := s.cols[k]
	if !ok {
		return math.NaN()
	}
	return col[i]
}

// FinalValue returns the last value of column k.
func (s *Series) FinalValue(k Key) float64 {
	if s.n == 0 {
		return math.NaN()
	}
	return s.Value(k, s.n-1)
}

// set registers a column, replacing values in place if the key already
// exists. Only called on freshly allocated series, never on one a caller
// already holds.
func (s *Series) set(k Key, vals []float64) {
	if len(vals) != s.n {
		panic(fmt.Sprintf("series: column %q has %d values for %d rows", k.Label(), len(vals), s.n))
	}
	if _, exists := s.cols[k]; !exists {
		s.order = append(s.order, k)
	}
	s.cols[k] = vals
}

// clone copies the column map and key order while sharing the index and
// column slices, which are never mutated.
func (s *Series) clone() *Series {
	out := &Series{
		times:      s.times,
		stepOffset: s.stepOffset,
		n:          s.n,
		cols:       make(map[Key][]float64, len(s.cols)+2),
		order:      append([]Key(nil), s.order...),
	}
	for k, v := range s.cols {
		out.cols[k] = v
	}
	return out
}

// filterRows builds a new series containing only the rows at the given
// indices, in order, across every column.
func (s *Series) filterRows(keep []int) *Series {
	out := &Series{
		n:    len(keep),
		cols: make(map[Key][]float64, len(s.cols)),
	}
	if !s.Synthetic() {
		out.times = make([]time.Time, len(keep))
		for i, idx := range keep {
			out.times[i] = s.times[idx]
		}
	} else if len(keep) > 0 {
		out.stepOffset = s.stepOffset + keep[0]
	}
	for _, k := range s.order {
		src := s.cols[k]
		vals := make([]float64, len(keep))
		for i, idx := range keep {
			vals[i] = src[idx]
		}
		out.set(k, vals)
	}
	return out
}

// selectRoles builds a new series containing only the columns whose role
// is in the given set, preserving order.
func (s *Series) selectRoles(roles ...Role) *Series {
	out := &Series{
		times:      s.times,
		stepOffset: s.stepOffset,
		n:          s.n,
		cols:       make(map[Key][]float64, len(s.cols)),
	}
	for _, k := range s.order {
		for _, r := range roles {
			if k.Role == r {
				out.set(k, s.cols[k])
				break
			}
		}
	}
	return out
}
