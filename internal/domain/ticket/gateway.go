package ticket

import "context"

// Gateway is the port to the hosted relational backend. Implementations
// return either a success payload or a structured error; nothing is
// retried here — every failure surfaces to the caller for a user-initiated
// retry.
type Gateway interface {
	// ListTickets returns all tickets ordered by creation time, newest
	// first.
	ListTickets(ctx context.Context) ([]*Ticket, error)

	// InsertTicket persists a new ticket and returns the server-confirmed
	// record, including the assigned numeric id.
	InsertTicket(ctx context.Context, t *Ticket) (*Ticket, error)

	// UpdateTicket applies the patch to the stored ticket.
	UpdateTicket(ctx context.Context, id uint, patch Patch) error

	// DeleteTicket removes the stored ticket.
	DeleteTicket(ctx context.Context, id uint) error

	// ListComments returns a ticket's comments, newest first.
	ListComments(ctx context.Context, ticketID uint) ([]*Comment, error)

	// InsertComment persists a new comment.
	InsertComment(ctx context.Context, ticketID uint, authorID uint, body string) error
}
