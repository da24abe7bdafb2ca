package ticket

import (
	"fmt"
	"strings"
	"time"
)

// Comment belongs to exactly one ticket. AuthorName is resolved by the
// gateway's join against the users table; it is display-only.
type Comment struct {
	id         uint
	ticketID   uint
	authorID   uint
	authorName string
	body       string
	createdAt  time.Time
}

func NewComment(ticketID uint, authorID uint, body string) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, fmt.Errorf("comment body cannot be empty")
	}
	if len(trimmed) > 5000 {
		return nil, fmt.Errorf("comment body exceeds maximum length of 5000 characters")
	}

	return &Comment{
		ticketID:  ticketID,
		authorID:  authorID,
		body:      trimmed,
		createdAt: time.Now().UTC(),
	}, nil
}

func ReconstructComment(
	id uint,
	ticketID uint,
	authorID uint,
	authorName string,
	body string,
	createdAt time.Time,
) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	return &Comment{
		id:         id,
		ticketID:   ticketID,
		authorID:   authorID,
		authorName: authorName,
		body:       body,
		createdAt:  createdAt,
	}, nil
}

func (c *Comment) ID() uint {
	return c.id
}

func (c *Comment) TicketID() uint {
	return c.ticketID
}

func (c *Comment) AuthorID() uint {
	return c.authorID
}

func (c *Comment) AuthorName() string {
	return c.authorName
}

func (c *Comment) Body() string {
	return c.body
}

func (c *Comment) CreatedAt() time.Time {
	return c.createdAt
}
