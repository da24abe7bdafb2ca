package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"flowboard/internal/domain/ticket"
	vo "flowboard/internal/domain/ticket/valueobjects"
	"flowboard/internal/shared/errors"
)

// ticketRow is the tickets table shape on the wire.
type ticketRow struct {
	ID             uint       `json:"id,omitempty"`
	UUID           string     `json:"uuid"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	TicketType     string     `json:"ticket_type"`
	Priority       string     `json:"priority"`
	Status         string     `json:"status"`
	Labels         []string   `json:"labels"`
	MediaURL       string     `json:"media_url"`
	Deadline       *time.Time `json:"deadline"`
	StoryPoints    int        `json:"story_points"`
	EstimatedHours *float64   `json:"estimated_hours"`
	ActualHours    *float64   `json:"actual_hours"`
	CreatedBy      uint       `json:"created_by"`
	AssigneeID     *uint      `json:"assignee_id"`
	CreatedAt      time.Time  `json:"created_at"`
	InProgressAt   *time.Time `json:"in_progress_at"`
	DoneAt         *time.Time `json:"done_at"`
}

type commentRow struct {
	ID        uint      `json:"id"`
	TicketID  uint      `json:"ticket_id"`
	AuthorID  uint      `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Users     *struct {
		Name string `json:"name"`
	} `json:"users"`
}

func toDomainTicket(row ticketRow) (*ticket.Ticket, error) {
	return ticket.ReconstructTicket(
		row.ID,
		row.UUID,
		row.Title,
		row.Description,
		vo.TicketType(row.TicketType),
		vo.Priority(row.Priority),
		vo.Status(row.Status),
		row.Labels,
		row.MediaURL,
		row.Deadline,
		row.StoryPoints,
		row.EstimatedHours,
		row.ActualHours,
		row.CreatedBy,
		row.AssigneeID,
		row.CreatedAt,
		row.InProgressAt,
		row.DoneAt,
	)
}

func toTicketRow(t *ticket.Ticket) ticketRow {
	return ticketRow{
		UUID:           t.UUID(),
		Title:          t.Title(),
		Description:    t.Description(),
		TicketType:     t.Type().String(),
		Priority:       t.Priority().String(),
		Status:         t.Status().String(),
		Labels:         t.Labels(),
		MediaURL:       t.MediaURL(),
		Deadline:       t.Deadline(),
		StoryPoints:    t.StoryPoints(),
		EstimatedHours: t.EstimatedHours(),
		ActualHours:    t.ActualHours(),
		CreatedBy:      t.CreatedBy(),
		AssigneeID:     t.Assignee(),
		CreatedAt:      t.CreatedAt(),
	}
}

func toDomainComment(row commentRow) (*ticket.Comment, error) {
	authorName := "Unknown"
	if row.Users != nil && row.Users.Name != "" {
		authorName = row.Users.Name
	}
	return ticket.ReconstructComment(row.ID, row.TicketID, row.AuthorID, authorName, row.Body, row.CreatedAt)
}

// ListTickets returns all tickets, newest first. Rows that cannot be
// mapped to a ticket are logged and skipped rather than failing the load.
func (c *Client) ListTickets(ctx context.Context) ([]*ticket.Ticket, error) {
	reqURL := c.baseURL + "/rest/v1/tickets?select=*&order=created_at.desc"

	var rows []ticketRow
	if err := c.doRequest(ctx, http.MethodGet, reqURL, nil, &rows, nil); err != nil {
		return nil, err
	}

	tickets := make([]*ticket.Ticket, 0, len(rows))
	for _, row := range rows {
		t, err := toDomainTicket(row)
		if err != nil {
			c.logger.Warnw("skipping malformed ticket row", "id", row.ID, "error", err)
			continue
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

// InsertTicket persists the ticket and returns the server-confirmed record
// carrying the assigned id.
func (c *Client) InsertTicket(ctx context.Context, t *ticket.Ticket) (*ticket.Ticket, error) {
	reqURL := c.baseURL + "/rest/v1/tickets"
	headers := map[string]string{"Prefer": "return=representation"}

	var rows []ticketRow
	if err := c.doRequest(ctx, http.MethodPost, reqURL, toTicketRow(t), &rows, headers); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.NewInternalError("insert returned no record")
	}

	inserted, err := toDomainTicket(rows[0])
	if err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("map inserted ticket: %v", err))
	}
	return inserted, nil
}

// UpdateTicket sends only the fields the patch carries.
func (c *Client) UpdateTicket(ctx context.Context, id uint, patch ticket.Patch) error {
	reqURL := fmt.Sprintf("%s/rest/v1/tickets?id=eq.%d", c.baseURL, id)
	headers := map[string]string{"Prefer": "return=minimal"}
	return c.doRequest(ctx, http.MethodPatch, reqURL, patchBody(patch), nil, headers)
}

// patchBody translates a patch into the sparse column map PostgREST
// expects. Outer-nil fields are absent; a present-but-nil inner pointer
// becomes an explicit null and clears the column.
func patchBody(p ticket.Patch) map[string]any {
	body := map[string]any{}
	if p.Title != nil {
		body["title"] = *p.Title
	}
	if p.Description != nil {
		body["description"] = *p.Description
	}
	if p.TicketType != nil {
		body["ticket_type"] = p.TicketType.String()
	}
	if p.Priority != nil {
		body["priority"] = p.Priority.String()
	}
	if p.Status != nil {
		body["status"] = p.Status.String()
	}
	if p.Labels != nil {
		body["labels"] = *p.Labels
	}
	if p.MediaURL != nil {
		body["media_url"] = *p.MediaURL
	}
	if p.Deadline != nil {
		body["deadline"] = *p.Deadline
	}
	if p.StoryPoints != nil {
		body["story_points"] = *p.StoryPoints
	}
	if p.EstimatedHours != nil {
		body["estimated_hours"] = *p.EstimatedHours
	}
	if p.ActualHours != nil {
		body["actual_hours"] = *p.ActualHours
	}
	if p.Assignee != nil {
		body["assignee_id"] = *p.Assignee
	}
	return body
}

// DeleteTicket removes the stored ticket.
func (c *Client) DeleteTicket(ctx context.Context, id uint) error {
	reqURL := fmt.Sprintf("%s/rest/v1/tickets?id=eq.%d", c.baseURL, id)
	return c.doRequest(ctx, http.MethodDelete, reqURL, nil, nil, nil)
}

// ListComments returns a ticket's comments, newest first, with author names
// resolved through the users join.
func (c *Client) ListComments(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	reqURL := fmt.Sprintf(
		"%s/rest/v1/ticket_comments?ticket_id=eq.%d&select=*,users:author_id(name)&order=created_at.desc",
		c.baseURL, ticketID,
	)

	var rows []commentRow
	if err := c.doRequest(ctx, http.MethodGet, reqURL, nil, &rows, nil); err != nil {
		return nil, err
	}

	comments := make([]*ticket.Comment, 0, len(rows))
	for _, row := range rows {
		cm, err := toDomainComment(row)
		if err != nil {
			c.logger.Warnw("skipping malformed comment row", "id", row.ID, "error", err)
			continue
		}
		comments = append(comments, cm)
	}
	return comments, nil
}

// InsertComment persists a new comment.
func (c *Client) InsertComment(ctx context.Context, ticketID uint, authorID uint, body string) error {
	reqURL := c.baseURL + "/rest/v1/ticket_comments"
	headers := map[string]string{"Prefer": "return=minimal"}

	payload := map[string]any{
		"ticket_id": ticketID,
		"author_id": authorID,
		"body":      body,
	}
	return c.doRequest(ctx, http.MethodPost, reqURL, payload, nil, headers)
}

type userRow struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ResolveUser maps a signed-in email to the numeric users-table record the
// board operates with.
func (c *Client) ResolveUser(ctx context.Context, email string) (uint, string, error) {
	reqURL := fmt.Sprintf("%s/rest/v1/users?select=id,name&email=eq.%s", c.baseURL, url.QueryEscape(email))

	var rows []userRow
	if err := c.doRequest(ctx, http.MethodGet, reqURL, nil, &rows, nil); err != nil {
		return 0, "", err
	}
	if len(rows) == 0 {
		return 0, "", errors.NewNotFoundError(fmt.Sprintf("no user record for %s", email))
	}
	return rows[0].ID, rows[0].Name, nil
}
