// Package rangeval implements the Range value: an immutable interval over
// types.Value with independently optional and inclusive bounds, and the
// intersection algebra the optimizer's CombineRanges rule and the
// SortedDictIndex consume.
package rangeval

import "github.com/chaisql/indexset/internal/types"

// Bound is one endpoint of a Range. The zero value is not unbounded (it is
// an exclusive bound at a null value); use UnsetBound for an open side.
type Bound struct {
	Unset     bool
	Value     types.Value
	Inclusive bool
}

// UnsetBound is the unbounded endpoint.
func UnsetBound() Bound { return Bound{Unset: true} }

// NewBound constructs a concrete endpoint.
func NewBound(v types.Value, inclusive bool) Bound {
	return Bound{Value: v, Inclusive: inclusive}
}

// Range is a closed/half-open/open interval `[left, right]` with
// independently optional and inclusive endpoints.
type Range struct {
	Left  Bound
	Right Bound
}

// Unset is the interval with no constraint on either side.
func Unset() Range { return Range{Left: UnsetBound(), Right: UnsetBound()} }

// Combine intersects r with other. ok is false when the resulting interval
// is provably empty (left bound strictly greater than right bound, or
// equal bounds with at least one side exclusive); that is the distinguished
// "no match" signal the optimizer folds to an Empty plan.
func (r Range) Combine(other Range) (result Range, ok bool) {
	left, err := combineBound(r.Left, other.Left, func(a, b int) bool { return a > b })
	if err != nil {
		return Range{}, false
	}
	right, err := combineBound(r.Right, other.Right, func(a, b int) bool { return a < b })
	if err != nil {
		return Range{}, false
	}

	combined := Range{Left: left, Right: right}
	if empty(combined) {
		return Range{}, false
	}
	return combined, true
}

// combineBound picks the tighter of two same-side bounds. `prefer` reports
// whether the first comparison argument is the tighter bound, given the
// comparison result of Compare(a.Value, b.Value).
func combineBound(a, b Bound, prefer func(cmp, zero int) bool) (Bound, error) {
	if a.Unset {
		return b, nil
	}
	if b.Unset {
		return a, nil
	}
	cmp, err := types.Compare(a.Value, b.Value)
	if err != nil {
		return Bound{}, err
	}
	if cmp == 0 {
		return Bound{Value: a.Value, Inclusive: a.Inclusive && b.Inclusive}, nil
	}
	if prefer(cmp, 0) {
		return a, nil
	}
	return b, nil
}

func empty(r Range) bool {
	if r.Left.Unset || r.Right.Unset {
		return false
	}
	cmp, err := types.Compare(r.Left.Value, r.Right.Value)
	if err != nil {
		return true
	}
	if cmp > 0 {
		return true
	}
	if cmp == 0 {
		return !(r.Left.Inclusive && r.Right.Inclusive)
	}
	return false
}

// Equal is structural equality, used by tests asserting Range idempotence
// and commutativity.
func (r Range) Equal(other Range) bool {
	return boundEqual(r.Left, other.Left) && boundEqual(r.Right, other.Right)
}

func boundEqual(a, b Bound) bool {
	if a.Unset != b.Unset {
		return false
	}
	if a.Unset {
		return true
	}
	return a.Inclusive == b.Inclusive && a.Value.Equal(b.Value)
}
