package exec

import "github.com/cockroachdb/errors"

// ErrUnsupportedPlan is returned when Execute receives a plan kind with no
// dispatch entry. This should be unreachable; its presence indicates a bug
// in a custom plan node or optimizer rule.
var ErrUnsupportedPlan = errors.New("exec: unsupported plan")

// ErrUnsupportedCondition is returned when Match receives a condition kind
// (or operator) with no dispatch entry.
var ErrUnsupportedCondition = errors.New("exec: unsupported condition")
