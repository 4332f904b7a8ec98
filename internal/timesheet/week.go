package timesheet

import "time"

// WeekEnding returns the Friday that closes the Mon-Sun week containing t,
// normalized to a date-only value in UTC. Saturday and Sunday resolve
// backwards to the Friday just passed, never forward into the next week.
func WeekEnding(t time.Time) time.Time {
	// ISO weekday, Monday = 1 .. Sunday = 7.
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	const friday = 5
	d := t.AddDate(0, 0, friday-wd)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
