// Package timesheet holds the weekly timesheet domain model: work days,
// rows, sheets, week-ending resolution, and the acceptance rules a sheet
// must satisfy before it may be persisted.
package timesheet

import "fmt"

// WorkDay identifies one of the seven chargeable days of a reporting week.
type WorkDay int

// The seven work days in week order. Monday opens the week; Friday is the
// week-ending day used as the canonical timesheet key.
const (
	Monday WorkDay = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// WorkDays lists all seven days in week order.
var WorkDays = [7]WorkDay{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayNames = [7]string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// Valid reports whether d is within the seven-day domain.
func (d WorkDay) Valid() bool {
	return d >= Monday && d <= Sunday
}

// String returns the lowercase three-letter day name, or "invalid" for a
// value outside the seven-day domain.
func (d WorkDay) String() string {
	if !d.Valid() {
		return "invalid"
	}
	return dayNames[d]
}

// ParseWorkDay converts a three-letter day name ("mon".."sun") to a WorkDay.
func ParseWorkDay(s string) (WorkDay, error) {
	for i, n := range dayNames {
		if s == n {
			return WorkDay(i), nil
		}
	}
	return 0, fmt.Errorf("unknown work day %q", s)
}
