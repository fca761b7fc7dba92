package view

import "time"

const (
	StatusOverdue = "Overdue"
	StatusPresent = "Present"
	StatusFuture  = "Future"
)

// TaskStatus classifies a due time relative to now. Anything already past is
// overdue, a later time on the same calendar day is present.
func TaskStatus(due, now time.Time) string {
	if due.Before(now) {
		return StatusOverdue
	}
	due = due.In(now.Location())
	dy, dm, dd := due.Date()
	ny, nm, nd := now.Date()
	if dy == ny && dm == nm && dd == nd {
		return StatusPresent
	}
	return StatusFuture
}
