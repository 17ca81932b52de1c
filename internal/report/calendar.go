package report

import "time"

// truncateToDate drops the clock part of t, keeping its location.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// weekStart returns the Monday of the week containing d.
func weekStart(d time.Time) time.Time {
	d = truncateToDate(d)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 … Sunday=6
	return d.AddDate(0, 0, -offset)
}

// dormancyCutoff returns the earliest date that still counts as recent activity,
// measured back from the dataset's own last trade date.
func dormancyCutoff(maxDate time.Time, windowDays int) time.Time {
	return truncateToDate(maxDate).AddDate(0, 0, -windowDays)
}
