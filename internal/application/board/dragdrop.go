package board

import (
	"context"
	"fmt"
	"sync"

	vo "flowboard/internal/domain/ticket/valueobjects"
	"flowboard/internal/shared/errors"
	"flowboard/internal/shared/logger"
)

// NoColumn is the hover/drop target used when the pointer is over no
// column at all.
const NoColumn = vo.Status("")

// DragController runs the per-gesture state machine: Idle → Dragging →
// zero or more column hovers → drop or cancel → Idle. It is decoupled
// from any input-event API; the owner feeds it three signals
// (GestureStart, ColumnHover, GestureEnd) and reads Hover for highlight
// state.
//
// Only one gesture can be active at a time. Starting a new gesture while a
// previous drop's network call is still settling is allowed; the earlier
// optimistic state is never undone retroactively.
type DragController struct {
	store  *Store
	logger logger.Interface

	mu       sync.Mutex
	ticketID uint
	origin   vo.Status
	hover    vo.Status
}

func NewDragController(store *Store, log logger.Interface) *DragController {
	return &DragController{
		store:  store,
		logger: log.Named("board.drag"),
	}
}

// GestureStart begins a drag of the given ticket. Fails if a gesture is
// already active or the ticket is unknown.
func (d *DragController) GestureStart(ticketID uint) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ticketID != 0 {
		return errors.NewValidationError("a drag gesture is already active")
	}

	t, ok := d.store.Get(ticketID)
	if !ok {
		return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", ticketID))
	}

	d.ticketID = ticketID
	d.origin = t.Status()
	d.hover = NoColumn
	d.logger.Debugw("drag started", "id", ticketID, "origin", d.origin)
	return nil
}

// ColumnHover records the column currently under the pointer; the most
// recently entered column always wins. NoColumn clears the highlight.
// Ignored while no gesture is active.
func (d *DragController) ColumnHover(col vo.Status) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ticketID == 0 {
		return
	}
	if col != NoColumn && !col.IsValid() {
		return
	}
	d.hover = col
}

// GestureEnd finishes the gesture with the column the ticket was released
// on (NoColumn when released outside the board). Dropping on the origin
// column or on no column is a complete no-op. A drop on a new column runs
// the store's optimistic status transition; the returned error is the
// user-visible failure notice, with local state already rolled back by
// the store.
func (d *DragController) GestureEnd(ctx context.Context, dropped vo.Status) error {
	d.mu.Lock()
	if d.ticketID == 0 {
		d.mu.Unlock()
		return nil
	}
	ticketID := d.ticketID
	origin := d.origin
	d.ticketID = 0
	d.origin = NoColumn
	d.hover = NoColumn
	d.mu.Unlock()

	if dropped == NoColumn || dropped == origin {
		d.logger.Debugw("drag cancelled", "id", ticketID)
		return nil
	}
	if !dropped.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid drop column: %s", dropped))
	}

	return d.store.SetStatus(ctx, ticketID, dropped)
}

// Dragging reports the active gesture's ticket id, zero when idle.
func (d *DragController) Dragging() uint {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ticketID
}

// Hover returns the column to highlight, NoColumn when none.
func (d *DragController) Hover() vo.Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hover
}
