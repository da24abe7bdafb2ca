// Package board holds the client-side board state: the ticket store (the
// single in-memory source of truth for a session), the board view
// projection, the drag controller, and the per-ticket comment panel.
package board

import (
	"context"
	"fmt"
	"sync"

	"flowboard/internal/domain/ticket"
	vo "flowboard/internal/domain/ticket/valueobjects"
	"flowboard/internal/shared/errors"
	"flowboard/internal/shared/logger"
)

// Store caches the full ticket collection for one client session. Every
// mutation is a single atomic step behind the mutex, so readers never see
// a partial update. Tickets held in the slice are never mutated in place:
// updates clone, modify, and swap, so a *Ticket handed out by a read
// accessor stays stable.
//
// All mutations are confirmed-before-reflect except SetStatus, which is
// optimistic and rolls back by reloading the authoritative collection.
type Store struct {
	gateway ticket.Gateway
	logger  logger.Interface
	userID  uint

	mu      sync.RWMutex
	tickets []*ticket.Ticket
	loading bool
	draft   ticket.Draft
}

// NewStore wires the store to its remote gateway. userID is the signed-in
// user, recorded as creator and comment author.
func NewStore(gateway ticket.Gateway, log logger.Interface, userID uint) *Store {
	return &Store{
		gateway: gateway,
		logger:  log.Named("board.store"),
		userID:  userID,
		tickets: []*ticket.Ticket{},
		draft:   ticket.DefaultDraft(),
	}
}

// Load fetches the full collection, newest first, and replaces local state
// wholesale. On failure the prior state is left intact and the error is
// surfaced for a user-initiated retry.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	tickets, err := s.gateway.ListTickets(ctx)
	if err != nil {
		s.logger.Errorw("failed to load tickets", "error", err)
		return asNetworkError("failed to load tickets", err)
	}

	s.mu.Lock()
	s.tickets = tickets
	s.mu.Unlock()

	s.logger.Infow("tickets loaded", "count", len(tickets))
	return nil
}

// Create validates the draft locally, persists it, and reflects the
// server-confirmed record. Validation failures never reach the network.
// On gateway failure the draft is retained for retry.
func (s *Store) Create(ctx context.Context, d ticket.Draft) (*ticket.Ticket, error) {
	newTicket, err := ticket.NewTicket(d, s.userID)
	if err != nil {
		s.mu.Lock()
		s.draft = d
		s.mu.Unlock()
		return nil, errors.NewValidationError(err.Error())
	}

	created, err := s.gateway.InsertTicket(ctx, newTicket)
	if err != nil {
		s.logger.Errorw("failed to create ticket", "title", d.Title, "error", err)
		s.mu.Lock()
		s.draft = d
		s.mu.Unlock()
		return nil, asNetworkError("failed to create ticket", err)
	}

	s.mu.Lock()
	s.tickets = append([]*ticket.Ticket{created}, s.tickets...)
	s.draft = ticket.DefaultDraft()
	s.mu.Unlock()

	s.logger.Infow("ticket created", "id", created.ID(), "uuid", created.ShortRef())
	return created, nil
}

// Update applies a patch to one ticket, confirmed-before-reflect: local
// state changes only after the gateway accepts the patch.
func (s *Store) Update(ctx context.Context, id uint, patch ticket.Patch) error {
	if err := patch.Validate(); err != nil {
		return errors.NewValidationError(err.Error())
	}
	if patch.IsEmpty() {
		return nil
	}

	s.mu.RLock()
	current, idx := s.find(id)
	s.mu.RUnlock()
	if current == nil {
		return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", id))
	}

	if err := s.gateway.UpdateTicket(ctx, id, patch); err != nil {
		s.logger.Errorw("failed to update ticket", "id", id, "error", err)
		return asNetworkError("failed to update ticket", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-find: the collection may have shifted while the call was in
	// flight. A ticket deleted meanwhile simply drops the merge.
	current, idx = s.find(id)
	if current == nil {
		return nil
	}
	updated := current.Clone()
	if err := updated.Apply(patch); err != nil {
		return errors.NewInternalError("patch accepted remotely but failed locally", err.Error())
	}
	s.tickets[idx] = updated

	s.logger.Infow("ticket updated", "id", id)
	return nil
}

// Remove deletes a ticket. The yes/no confirmation gate is the caller's
// responsibility. On failure the full collection is reloaded so local
// state cannot drift from the remote source of truth.
func (s *Store) Remove(ctx context.Context, id uint) error {
	if err := s.gateway.DeleteTicket(ctx, id); err != nil {
		s.logger.Errorw("failed to delete ticket", "id", id, "error", err)
		if reloadErr := s.Load(ctx); reloadErr != nil {
			s.logger.Errorw("reload after failed delete also failed", "error", reloadErr)
		}
		return asNetworkError("failed to delete ticket", err)
	}

	s.mu.Lock()
	if _, idx := s.find(id); idx >= 0 {
		s.tickets = append(s.tickets[:idx], s.tickets[idx+1:]...)
	}
	s.mu.Unlock()

	s.logger.Infow("ticket deleted", "id", id)
	return nil
}

// SetStatus is the one optimistic path: the local ticket moves to the new
// column immediately, then the gateway is told. On failure the optimistic
// change is discarded by reloading the authoritative collection, trading
// an extra round trip for guaranteed consistency.
func (s *Store) SetStatus(ctx context.Context, id uint, newStatus vo.Status) error {
	if !newStatus.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid status: %s", newStatus))
	}

	s.mu.Lock()
	current, idx := s.find(id)
	if current == nil {
		s.mu.Unlock()
		return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", id))
	}
	if current.Status() == newStatus {
		s.mu.Unlock()
		return nil
	}

	oldStatus := current.Status()
	moved := current.Clone()
	if err := moved.ChangeStatus(newStatus); err != nil {
		s.mu.Unlock()
		return errors.NewValidationError(err.Error())
	}
	s.tickets[idx] = moved
	s.mu.Unlock()

	status := newStatus
	if err := s.gateway.UpdateTicket(ctx, id, ticket.Patch{Status: &status}); err != nil {
		s.logger.Errorw("status update rejected, reloading",
			"id", id, "from", oldStatus, "to", newStatus, "error", err)
		if reloadErr := s.Load(ctx); reloadErr != nil {
			s.logger.Errorw("rollback reload failed, local state may be stale", "error", reloadErr)
		}
		return asNetworkError("failed to update ticket status", err)
	}

	s.logger.Infow("ticket moved", "id", id, "from", oldStatus, "to", newStatus)
	return nil
}

// Tickets returns the collection in store order (newest first).
func (s *Store) Tickets() []*ticket.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ticketsCopy := make([]*ticket.Ticket, len(s.tickets))
	copy(ticketsCopy, s.tickets)
	return ticketsCopy
}

// Get returns one ticket by id.
func (s *Store) Get(id uint) (*ticket.Ticket, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, _ := s.find(id)
	return t, t != nil
}

// Loading reports whether a Load is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// CurrentDraft returns the creation form state.
func (s *Store) CurrentDraft() ticket.Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

// SetDraft stores in-progress form edits.
func (s *Store) SetDraft(d ticket.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = d
}

// UserID returns the signed-in user the store acts as.
func (s *Store) UserID() uint {
	return s.userID
}

// find returns the ticket and index for id, or (nil, -1). Callers hold the
// lock.
func (s *Store) find(id uint) (*ticket.Ticket, int) {
	for i, t := range s.tickets {
		if t.ID() == id {
			return t, i
		}
	}
	return nil, -1
}

// asNetworkError passes structured gateway errors through and wraps
// anything else as a network failure.
func asNetworkError(msg string, err error) error {
	if appErr := errors.GetAppError(err); appErr != nil {
		return appErr
	}
	return errors.NewNetworkError(msg, 0, err.Error())
}
