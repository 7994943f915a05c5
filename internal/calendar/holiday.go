// Package calendar decides which dates are weekends or observed holidays.
// Every check takes its reference year from the date being tested.
package calendar

import "time"

// IsWeekend reports whether d falls on a Saturday or Sunday
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsObservedIndependenceDay reports whether d is July 4 on a weekday.
// A July 4 on a weekend is not moved to Friday or Monday.
func IsObservedIndependenceDay(d time.Time) bool {
	return d.Month() == time.July && d.Day() == 4 && !IsWeekend(d)
}

// LaborDay returns the first Monday of September for the given year
func LaborDay(year int) time.Time {
	day := time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

func IsLaborDay(d time.Time) bool {
	if d.Month() != time.September {
		return false
	}
	return d.Day() == LaborDay(d.Year()).Day()
}

// IsHoliday reports whether d is one of the two recognised holidays
func IsHoliday(d time.Time) bool {
	return IsObservedIndependenceDay(d) || IsLaborDay(d)
}
