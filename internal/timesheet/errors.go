package timesheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// InvalidDayError reports an hour assignment keyed by a day outside the
// seven-day domain.
type InvalidDayError struct {
	Day WorkDay
}

func (e *InvalidDayError) Error() string {
	return fmt.Sprintf("invalid work day %d: hours can only be charged to Monday through Sunday", int(e.Day))
}

// InvalidHourError reports a negative hour quantity.
type InvalidHourError struct {
	Hours decimal.Decimal
}

func (e *InvalidHourError) Error() string {
	return fmt.Sprintf("invalid hours %s: hours must not be negative", e.Hours)
}

// HourTotalMismatchError reports a weekly total that differs from the
// required target.
type HourTotalMismatchError struct {
	Total  decimal.Decimal
	Target decimal.Decimal
}

func (e *HourTotalMismatchError) Error() string {
	return fmt.Sprintf("work hours must add up to %s, got %s", e.Target, e.Total)
}

// InvalidRowsError reports rows that duplicate an earlier row or charge
// hours without naming a work package. Rows holds zero-based indices into
// the sheet's row list, in ascending order.
type InvalidRowsError struct {
	Rows []int
}

func (e *InvalidRowsError) Error() string {
	nums := make([]string, len(e.Rows))
	for i, r := range e.Rows {
		nums[i] = strconv.Itoa(r + 1)
	}
	return fmt.Sprintf("rows %s: the project and work package combination must be filled in and unique",
		strings.Join(nums, ", "))
}
