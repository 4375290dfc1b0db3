package calculator

import "time"

// MonthWindow returns the half-open interval [start, end) for a summary
// period. start is midnight of (year, month, day) in loc; end is midnight of
// the first day of the FOLLOWING month, computed as a calendar-month
// increment (time.Date normalizes month 13 to January of the next year).
func MonthWindow(year int, month time.Month, day int, loc *time.Location) (start, end time.Time) {
	start = time.Date(year, month, day, 0, 0, 0, 0, loc)
	end = time.Date(year, month+1, 1, 0, 0, 0, 0, loc)
	return start, end
}

// CurrentMonthWindow returns the window for the calendar month containing now.
func CurrentMonthWindow(now time.Time) (start, end time.Time) {
	return MonthWindow(now.Year(), now.Month(), 1, now.Location())
}
