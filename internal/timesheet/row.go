package timesheet

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Row is a single project/work-package hour allocation within one week.
// Rows are owned by their Sheet; duplicate identity is the combined
// (project, work package) key.
type Row struct {
	ProjectID   int
	WorkPackage string
	Notes       string

	hours map[WorkDay]decimal.Decimal
}

// NewRow returns an empty row with no hours charged.
func NewRow() *Row {
	return &Row{hours: make(map[WorkDay]decimal.Decimal)}
}

// Hour returns the hours charged to day and whether an explicit value is
// present. An absent value counts as zero towards totals.
func (r *Row) Hour(day WorkDay) (decimal.Decimal, bool) {
	h, ok := r.hours[day]
	return h, ok
}

// SetHour charges hours to day. It fails with *InvalidDayError when day is
// outside the seven-day domain and with *InvalidHourError when hours is
// negative. The error is always signalled, never swallowed.
func (r *Row) SetHour(day WorkDay, hours decimal.Decimal) error {
	if !day.Valid() {
		return &InvalidDayError{Day: day}
	}
	if hours.IsNegative() {
		return &InvalidHourError{Hours: hours}
	}
	if r.hours == nil {
		r.hours = make(map[WorkDay]decimal.Decimal)
	}
	r.hours[day] = hours
	return nil
}

// ClearHour removes the explicit value for day, reverting it to absent.
func (r *Row) ClearHour(day WorkDay) error {
	if !day.Valid() {
		return &InvalidDayError{Day: day}
	}
	delete(r.hours, day)
	return nil
}

// Total sums the hours across the seven days, treating absent as zero.
func (r *Row) Total() decimal.Decimal {
	total := decimal.Zero
	for _, day := range WorkDays {
		if h, ok := r.hours[day]; ok {
			total = total.Add(h)
		}
	}
	return total
}

// Trim strips surrounding whitespace from the work package and notes so
// stray whitespace never causes spurious blank-field or uniqueness failures.
// Run before validation.
func (r *Row) Trim() {
	r.WorkPackage = strings.TrimSpace(r.WorkPackage)
	r.Notes = strings.TrimSpace(r.Notes)
}

// HasWorkPackage reports whether the row names a non-blank work package.
func (r *Row) HasWorkPackage() bool {
	return strings.TrimSpace(r.WorkPackage) != ""
}

// DuplicateOf reports whether r and other share the same non-blank
// (project, work package) identity. A blank work package on either side
// means the rows are never duplicates, regardless of matching project ids.
func (r *Row) DuplicateOf(other *Row) bool {
	if !r.HasWorkPackage() || !other.HasWorkPackage() {
		return false
	}
	return r.identity() == other.identity()
}

// identity is the duplicate-comparison key: the project id concatenated
// with the trimmed work package.
func (r *Row) identity() string {
	return fmt.Sprintf("%d%s", r.ProjectID, strings.TrimSpace(r.WorkPackage))
}
