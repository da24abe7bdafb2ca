package ticket

import (
	"math"
	"time"
)

// DeadlineStatus classifies how close a ticket's deadline is.
type DeadlineStatus string

const (
	// DeadlineNone means the ticket has no deadline set.
	DeadlineNone     DeadlineStatus = ""
	DeadlineNormal   DeadlineStatus = "normal"
	DeadlineUpcoming DeadlineStatus = "upcoming"
	DeadlineUrgent   DeadlineStatus = "urgent"
	DeadlineOverdue  DeadlineStatus = "overdue"
)

// deadline badge thresholds, in days remaining (rounded up)
const (
	urgentDays   = 2
	upcomingDays = 7
)

// DeadlineStatus classifies the ticket's deadline relative to now:
// past deadlines are overdue, within 2 days urgent, within 7 upcoming,
// anything further normal.
func (t *Ticket) DeadlineStatus(now time.Time) DeadlineStatus {
	if t.deadline == nil {
		return DeadlineNone
	}
	return ClassifyDeadline(*t.deadline, now)
}

// ClassifyDeadline applies the badge thresholds to an arbitrary deadline.
func ClassifyDeadline(deadline, now time.Time) DeadlineStatus {
	diffDays := int(math.Ceil(deadline.Sub(now).Hours() / 24))

	switch {
	case diffDays < 0:
		return DeadlineOverdue
	case diffDays <= urgentDays:
		return DeadlineUrgent
	case diffDays <= upcomingDays:
		return DeadlineUpcoming
	default:
		return DeadlineNormal
	}
}
