package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sheet is one employee's timesheet for one reporting week: the employee,
// the week-ending Friday, and an ordered list of rows. Row order matters
// for display only, never for validation.
type Sheet struct {
	Employee   Employee
	WeekEnding time.Time
	Rows       []*Row

	approved bool
}

// New returns a transient, empty sheet for the week containing weekEnding.
// The date is normalized to that week's Friday. The sheet is not persisted
// until it passes validation and is explicitly saved.
func New(emp Employee, weekEnding time.Time) *Sheet {
	return &Sheet{Employee: emp, WeekEnding: WeekEnding(weekEnding)}
}

// AddRow appends an empty row and returns it. Adding a row voids any
// earlier validator approval.
func (s *Sheet) AddRow() *Row {
	r := NewRow()
	s.Rows = append(s.Rows, r)
	s.approved = false
	return r
}

// RemoveRow deletes the row at index i, preserving the order of the rest.
// Out-of-range indices are ignored.
func (s *Sheet) RemoveRow(i int) {
	if i < 0 || i >= len(s.Rows) {
		return
	}
	s.Rows = append(s.Rows[:i], s.Rows[i+1:]...)
	s.approved = false
}

// Total sums every row's weekly total.
func (s *Sheet) Total() decimal.Decimal {
	total := decimal.Zero
	for _, r := range s.Rows {
		total = total.Add(r.Total())
	}
	return total
}

// Trim trims every row. Run before validation.
func (s *Sheet) Trim() {
	for _, r := range s.Rows {
		r.Trim()
	}
}

// SameWeek reports whether the sheet covers the week containing t.
func (s *Sheet) SameWeek(t time.Time) bool {
	return s.WeekEnding.Equal(WeekEnding(t))
}

// Approve records that the sheet passed validation. The store refuses to
// persist a sheet without an approval; structural mutation clears it.
func (s *Sheet) Approve() {
	s.approved = true
}

// Approved reports whether the sheet carries a validator approval.
func (s *Sheet) Approved() bool {
	return s.approved
}
