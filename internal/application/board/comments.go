package board

import (
	"context"
	"strings"
	"sync"

	"flowboard/internal/domain/ticket"
	"flowboard/internal/shared/errors"
	"flowboard/internal/shared/logger"
)

// CommentPanel is the per-ticket comment view. Comments are fetched lazily
// on every expand and dropped on collapse; there is deliberately no cache
// across expand cycles, so the list is always fresh relative to the last
// expand or post.
type CommentPanel struct {
	gateway  ticket.Gateway
	logger   logger.Interface
	ticketID uint
	authorID uint

	mu       sync.RWMutex
	expanded bool
	comments []*ticket.Comment
}

// NewCommentPanel binds a panel to one ticket. authorID is the signed-in
// user posting as.
func NewCommentPanel(gateway ticket.Gateway, log logger.Interface, ticketID, authorID uint) *CommentPanel {
	return &CommentPanel{
		gateway:  gateway,
		logger:   log.Named("board.comments"),
		ticketID: ticketID,
		authorID: authorID,
	}
}

// Expand opens the panel and fetches the comment list, newest first. Each
// expand refetches, even right after a collapse.
func (p *CommentPanel) Expand(ctx context.Context) error {
	comments, err := p.gateway.ListComments(ctx, p.ticketID)
	if err != nil {
		p.logger.Errorw("failed to load comments", "ticket_id", p.ticketID, "error", err)
		return asNetworkError("failed to load comments", err)
	}

	p.mu.Lock()
	p.expanded = true
	p.comments = comments
	p.mu.Unlock()
	return nil
}

// Collapse closes the panel and forgets the fetched list.
func (p *CommentPanel) Collapse() {
	p.mu.Lock()
	p.expanded = false
	p.comments = nil
	p.mu.Unlock()
}

// Post submits a comment and refetches the list. Blank or whitespace-only
// text is rejected locally with no network call; there is no optimistic
// insert.
func (p *CommentPanel) Post(ctx context.Context, body string) error {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return errors.NewValidationError("comment text cannot be empty")
	}

	if err := p.gateway.InsertComment(ctx, p.ticketID, p.authorID, trimmed); err != nil {
		p.logger.Errorw("failed to post comment", "ticket_id", p.ticketID, "error", err)
		return asNetworkError("failed to post comment", err)
	}

	return p.Expand(ctx)
}

// Comments returns the last fetched list.
func (p *CommentPanel) Comments() []*ticket.Comment {
	p.mu.RLock()
	defer p.mu.RUnlock()
	commentsCopy := make([]*ticket.Comment, len(p.comments))
	copy(commentsCopy, p.comments)
	return commentsCopy
}

// Expanded reports whether the panel is open.
func (p *CommentPanel) Expanded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.expanded
}

// TicketID returns the ticket this panel belongs to.
func (p *CommentPanel) TicketID() uint {
	return p.ticketID
}
