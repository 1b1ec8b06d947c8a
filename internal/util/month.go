package util

import "time"

// MonthStart returns midnight UTC on the first day of the month containing t
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonthStart returns midnight UTC on the first day of the month after t
func NextMonthStart(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0)
}

// MonthsBack returns midnight UTC on the first day of the month n months
// before the month containing t
func MonthsBack(t time.Time, n int) time.Time {
	return MonthStart(t).AddDate(0, -n, 0)
}

// SameMonth reports whether t falls in the given calendar (year, month)
func SameMonth(t time.Time, year int, month time.Month) bool {
	return t.Year() == year && t.Month() == month
}

// MonthLabel formats a (year, month) pair as a short human label, e.g. "Mar 2024"
func MonthLabel(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}
