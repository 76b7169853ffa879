package library

import "time"

// overdueDays is the number of calendar days between the due date and at,
// counted in the due date's location. Anything not after the due date is 0.
func overdueDays(due, at time.Time) int {
	if !at.After(due) {
		return 0
	}
	dy, dm, dd := due.Date()
	ay, am, ad := at.In(due.Location()).Date()
	from := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	to := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	days := int(to.Sub(from) / day)
	if days < 0 {
		return 0
	}
	return days
}

func (p Policy) fine(days int) int {
	return days * p.FinePerDay
}
