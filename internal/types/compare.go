package types

import (
	"github.com/cockroachdb/errors"
	"github.com/dromara/carbon/v2"
)

// ErrNotComparable is returned by Compare when two values have no defined
// ordering (e.g. a string against a bool, or either side being an array).
var ErrNotComparable = errors.New("types: values are not comparable")

// Compare returns -1, 0, or 1 according to whether a is less than, equal
// to, or greater than b. Numeric kinds compare across Int/Float. A
// Timestamp compares against a String operand by parsing the string with
// carbon, matching the coercion the teacher's timestamp type performs when
// a textual literal is compared against a stored TIMESTAMP column.
func Compare(a, b Value) (int, error) {
	if a.kind == KindTimestamp || b.kind == KindTimestamp {
		return compareTimestamp(a, b)
	}

	if af, aok := numericValue(a); aok {
		if bf, bok := numericValue(b); bok {
			switch {
			case af < bf:
				return -1, nil
			case af > bf:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}

	if a.kind == KindString && b.kind == KindString {
		switch {
		case a.s < b.s:
			return -1, nil
		case a.s > b.s:
			return 1, nil
		default:
			return 0, nil
		}
	}

	if a.kind == KindBool && b.kind == KindBool {
		switch {
		case a.b == b.b:
			return 0, nil
		case !a.b && b.b:
			return -1, nil
		default:
			return 1, nil
		}
	}

	return 0, errors.Wrapf(ErrNotComparable, "%s vs %s", a.kind, b.kind)
}

func compareTimestamp(a, b Value) (int, error) {
	ta, err := asTimestamp(a)
	if err != nil {
		return 0, err
	}
	tb, err := asTimestamp(b)
	if err != nil {
		return 0, err
	}
	switch {
	case ta.Before(tb):
		return -1, nil
	case ta.After(tb):
		return 1, nil
	default:
		return 0, nil
	}
}

func asTimestamp(v Value) (carbon.Carbon, error) {
	switch v.kind {
	case KindTimestamp:
		return carbon.CreateFromStdTime(v.t), nil
	case KindString:
		c := carbon.Parse(v.s, "UTC")
		if c.Error != nil {
			return carbon.Carbon{}, errors.Wrapf(ErrNotComparable, "cannot parse %q as timestamp", v.s)
		}
		return c, nil
	default:
		return carbon.Carbon{}, errors.Wrapf(ErrNotComparable, "%s vs timestamp", v.kind)
	}
}
