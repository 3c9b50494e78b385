package installments

import "time"

// nextMonth advances a date by one calendar month. When the source day does
// not exist in the target month it is clamped to that month's last day
// (Jan 31 -> Feb 28, or Feb 29 in a leap year). time.AddDate would roll the
// overflow into the following month instead.
func nextMonth(d time.Time) time.Time {
	year, month, day := d.Date()
	month++

	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, d.Location())
	lastDay := firstOfMonth.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfMonth.Year(), firstOfMonth.Month(), day, 0, 0, 0, 0, d.Location())
}

// buildSchedule computes the due dates for a group's full run. Month 1 falls
// on the start date itself; each later month steps one calendar month from
// the previous due date. Stepping from the previous date means a clamp sticks
// for the rest of the schedule: starting Jan 31 2024 gives Feb 29 and then
// Mar 29, not Mar 31.
func buildSchedule(startDate time.Time, duration int) []time.Time {
	dates := make([]time.Time, duration)
	due := startDate
	for m := 1; m <= duration; m++ {
		dates[m-1] = due
		due = nextMonth(due)
	}
	return dates
}
