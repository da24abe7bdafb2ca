package board

import (
	"context"
	"sync/atomic"

	"flowboard/internal/domain/ticket"
	"flowboard/internal/shared/logger"
)

// mockGateway is a func-field test double for the remote data gateway.
// Unset funcs behave as cheap successes; call counters let tests assert
// the zero-network-call properties.
type mockGateway struct {
	ListTicketsFunc   func(ctx context.Context) ([]*ticket.Ticket, error)
	InsertTicketFunc  func(ctx context.Context, t *ticket.Ticket) (*ticket.Ticket, error)
	UpdateTicketFunc  func(ctx context.Context, id uint, patch ticket.Patch) error
	DeleteTicketFunc  func(ctx context.Context, id uint) error
	ListCommentsFunc  func(ctx context.Context, ticketID uint) ([]*ticket.Comment, error)
	InsertCommentFunc func(ctx context.Context, ticketID uint, authorID uint, body string) error

	listCalls          atomic.Int64
	insertCalls        atomic.Int64
	updateCalls        atomic.Int64
	deleteCalls        atomic.Int64
	listCommentCalls   atomic.Int64
	insertCommentCalls atomic.Int64
}

func (m *mockGateway) ListTickets(ctx context.Context) ([]*ticket.Ticket, error) {
	m.listCalls.Add(1)
	if m.ListTicketsFunc != nil {
		return m.ListTicketsFunc(ctx)
	}
	return []*ticket.Ticket{}, nil
}

func (m *mockGateway) InsertTicket(ctx context.Context, t *ticket.Ticket) (*ticket.Ticket, error) {
	m.insertCalls.Add(1)
	if m.InsertTicketFunc != nil {
		return m.InsertTicketFunc(ctx, t)
	}
	return t, nil
}

func (m *mockGateway) UpdateTicket(ctx context.Context, id uint, patch ticket.Patch) error {
	m.updateCalls.Add(1)
	if m.UpdateTicketFunc != nil {
		return m.UpdateTicketFunc(ctx, id, patch)
	}
	return nil
}

func (m *mockGateway) DeleteTicket(ctx context.Context, id uint) error {
	m.deleteCalls.Add(1)
	if m.DeleteTicketFunc != nil {
		return m.DeleteTicketFunc(ctx, id)
	}
	return nil
}

func (m *mockGateway) ListComments(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	m.listCommentCalls.Add(1)
	if m.ListCommentsFunc != nil {
		return m.ListCommentsFunc(ctx, ticketID)
	}
	return []*ticket.Comment{}, nil
}

func (m *mockGateway) InsertComment(ctx context.Context, ticketID uint, authorID uint, body string) error {
	m.insertCommentCalls.Add(1)
	if m.InsertCommentFunc != nil {
		return m.InsertCommentFunc(ctx, ticketID, authorID, body)
	}
	return nil
}

func (m *mockGateway) totalCalls() int64 {
	return m.listCalls.Load() + m.insertCalls.Load() + m.updateCalls.Load() +
		m.deleteCalls.Load() + m.listCommentCalls.Load() + m.insertCommentCalls.Load()
}

// mockLogger discards everything.
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                 {}
func (m *mockLogger) Info(msg string, args ...any)                  {}
func (m *mockLogger) Warn(msg string, args ...any)                  {}
func (m *mockLogger) Error(msg string, args ...any)                 {}
func (m *mockLogger) With(args ...any) logger.Interface             { return m }
func (m *mockLogger) Named(name string) logger.Interface            { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...any)       {}
func (m *mockLogger) Infow(msg string, keysAndValues ...any)        {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...any)        {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...any)       {}
