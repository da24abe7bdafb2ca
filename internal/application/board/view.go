package board

import (
	"flowboard/internal/domain/ticket"
	vo "flowboard/internal/domain/ticket/valueobjects"
)

// Column is one workflow stage with its tickets in store order.
type Column struct {
	Status  vo.Status
	Title   string
	Tickets []*ticket.Ticket
}

func (c Column) Count() int {
	return len(c.Tickets)
}

// Board is the derived four-column view. Unclassified counts tickets whose
// status matches no column; they appear nowhere on the board.
type Board struct {
	Columns      []Column
	Unclassified int
}

// TotalCount returns the number of tickets visible on the board.
func (b Board) TotalCount() int {
	total := 0
	for _, c := range b.Columns {
		total += c.Count()
	}
	return total
}

// Column returns the column for a status, if it exists.
func (b Board) Column(status vo.Status) (Column, bool) {
	for _, c := range b.Columns {
		if c.Status == status {
			return c, true
		}
	}
	return Column{}, false
}

// BuildBoard partitions tickets into the four fixed columns, preserving
// input order within each column. Pure function: no state, no side
// effects.
func BuildBoard(tickets []*ticket.Ticket) Board {
	statuses := vo.AllStatuses()
	byStatus := make(map[vo.Status][]*ticket.Ticket, len(statuses))

	unclassified := 0
	for _, t := range tickets {
		if !t.Status().IsValid() {
			unclassified++
			continue
		}
		byStatus[t.Status()] = append(byStatus[t.Status()], t)
	}

	columns := make([]Column, 0, len(statuses))
	for _, status := range statuses {
		columns = append(columns, Column{
			Status:  status,
			Title:   status.Title(),
			Tickets: byStatus[status],
		})
	}

	return Board{Columns: columns, Unclassified: unclassified}
}

// Board derives the current view from the store, logging when tickets are
// invisible due to an unknown status instead of dropping them silently.
func (s *Store) Board() Board {
	b := BuildBoard(s.Tickets())
	if b.Unclassified > 0 {
		s.logger.Warnw("tickets hidden from board due to unknown status", "count", b.Unclassified)
	}
	return b
}
