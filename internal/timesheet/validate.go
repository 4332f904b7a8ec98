package timesheet

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultTargetHours is the weekly total a sheet must account for unless
// configured otherwise.
var DefaultTargetHours = decimal.NewFromInt(40)

// Validator applies the acceptance rules a sheet must satisfy before it
// may be saved. Validation has no side effects and caches nothing; every
// save attempt re-runs both rules.
type Validator struct {
	target decimal.Decimal
}

// NewValidator returns a validator requiring the given weekly hour total.
func NewValidator(target decimal.Decimal) *Validator {
	return &Validator{target: target}
}

// Target returns the required weekly hour total.
func (v *Validator) Target() decimal.Decimal {
	return v.target
}

// Validate evaluates both acceptance rules and returns the joined failures,
// or nil when the sheet is acceptable:
//
//  1. The sum of all row totals must equal the target exactly
//     (*HourTotalMismatchError otherwise, carrying the actual total).
//  2. No two rows may share a non-blank (project, work package) identity,
//     and no row with hours charged may leave the work package blank
//     (*InvalidRowsError otherwise, carrying the offending indices).
func (v *Validator) Validate(s *Sheet) error {
	var errs []error

	if total := s.Total(); !total.Equal(v.target) {
		errs = append(errs, &HourTotalMismatchError{Total: total, Target: v.target})
	}

	if bad := invalidRows(s.Rows); len(bad) > 0 {
		errs = append(errs, &InvalidRowsError{Rows: bad})
	}

	return errors.Join(errs...)
}

// invalidRows returns the zero-based indices of rows that duplicate an
// earlier row or charge hours without a work package. The duplicate
// predicate is applied pairwise.
func invalidRows(rows []*Row) []int {
	flagged := make(map[int]bool)

	for i, r := range rows {
		if !r.HasWorkPackage() && r.Total().IsPositive() {
			flagged[i] = true
		}
		for j := i + 1; j < len(rows); j++ {
			if r.DuplicateOf(rows[j]) {
				flagged[i] = true
				flagged[j] = true
			}
		}
	}

	out := make([]int, 0, len(flagged))
	for i := range flagged {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
