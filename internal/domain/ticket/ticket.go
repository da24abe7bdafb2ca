package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	vo "flowboard/internal/domain/ticket/valueobjects"
)

// Ticket is the board's central entity. The numeric id is the storage
// primary key assigned by the backend; the uuid is the display identity,
// generated client-side and never changed afterwards.
type Ticket struct {
	id             uint
	uuid           string
	title          string
	description    string
	ticketType     vo.TicketType
	priority       vo.Priority
	status         vo.Status
	labels         []string
	mediaURL       string
	deadline       *time.Time
	storyPoints    int
	estimatedHours *float64
	actualHours    *float64
	createdBy      uint
	assignee       *uint
	createdAt      time.Time
	inProgressAt   *time.Time
	doneAt         *time.Time
}

// NewTicket builds a ticket from a validated draft. The backend assigns
// the numeric id on insert; SetID records it afterwards.
func NewTicket(d Draft, createdBy uint) (*Ticket, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if createdBy == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	status := vo.Status(d.Status)

	t := &Ticket{
		uuid:           uuid.NewString(),
		title:          d.Title,
		description:    d.Description,
		ticketType:     vo.TicketType(d.TicketType),
		priority:       vo.Priority(d.Priority),
		status:         status,
		labels:         append([]string{}, d.Labels...),
		mediaURL:       d.MediaURL,
		deadline:       d.Deadline,
		storyPoints:    d.StoryPoints,
		estimatedHours: d.EstimatedHours,
		createdBy:      createdBy,
		assignee:       d.Assignee,
		createdAt:      time.Now().UTC(),
	}

	return t, nil
}

// ReconstructTicket rebuilds a ticket from a gateway row.
func ReconstructTicket(
	id uint,
	ticketUUID string,
	title string,
	description string,
	ticketType vo.TicketType,
	priority vo.Priority,
	status vo.Status,
	labels []string,
	mediaURL string,
	deadline *time.Time,
	storyPoints int,
	estimatedHours *float64,
	actualHours *float64,
	createdBy uint,
	assignee *uint,
	createdAt time.Time,
	inProgressAt, doneAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(ticketUUID) == 0 {
		return nil, fmt.Errorf("ticket uuid is required")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if !ticketType.IsValid() {
		return nil, fmt.Errorf("invalid ticket type")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if storyPoints < 0 {
		return nil, fmt.Errorf("story points cannot be negative")
	}

	if labels == nil {
		labels = []string{}
	}

	// An unknown status is kept as-is: the ticket still exists, the board
	// view just has no column to show it in.
	return &Ticket{
		id:             id,
		uuid:           ticketUUID,
		title:          title,
		description:    description,
		ticketType:     ticketType,
		priority:       priority,
		status:         status,
		labels:         labels,
		mediaURL:       mediaURL,
		deadline:       deadline,
		storyPoints:    storyPoints,
		estimatedHours: estimatedHours,
		actualHours:    actualHours,
		createdBy:      createdBy,
		assignee:       assignee,
		createdAt:      createdAt,
		inProgressAt:   inProgressAt,
		doneAt:         doneAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) UUID() string {
	return t.uuid
}

// ShortRef returns the first uuid segment used on ticket cards.
func (t *Ticket) ShortRef() string {
	if len(t.uuid) < 8 {
		return t.uuid
	}
	return t.uuid[:8]
}

// BranchName derives a git branch for working on this ticket:
// feature/<short ref>/<sanitized title>. Title characters outside
// [a-z0-9] become dashes, runs of dashes collapse to one.
func (t *Ticket) BranchName() string {
	var sb strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(t.title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			sb.WriteByte('-')
			lastDash = true
		}
	}
	return fmt.Sprintf("feature/%s/%s", t.ShortRef(), sb.String())
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Type() vo.TicketType {
	return t.ticketType
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Status() vo.Status {
	return t.status
}

func (t *Ticket) Labels() []string {
	labelsCopy := make([]string, len(t.labels))
	copy(labelsCopy, t.labels)
	return labelsCopy
}

func (t *Ticket) MediaURL() string {
	return t.mediaURL
}

func (t *Ticket) Deadline() *time.Time {
	return t.deadline
}

func (t *Ticket) StoryPoints() int {
	return t.storyPoints
}

func (t *Ticket) EstimatedHours() *float64 {
	return t.estimatedHours
}

func (t *Ticket) ActualHours() *float64 {
	return t.actualHours
}

func (t *Ticket) CreatedBy() uint {
	return t.createdBy
}

func (t *Ticket) Assignee() *uint {
	return t.assignee
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) InProgressAt() *time.Time {
	return t.inProgressAt
}

func (t *Ticket) DoneAt() *time.Time {
	return t.doneAt
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// ChangeStatus moves the ticket to a new column. Any known column may move
// to any other; moving to the current column is a no-op. Workflow
// timestamps are stamped on first entry only.
func (t *Ticket) ChangeStatus(newStatus vo.Status) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}

	if t.status == newStatus {
		return nil
	}

	t.status = newStatus

	now := time.Now().UTC()
	if newStatus.IsInProgress() && t.inProgressAt == nil {
		t.inProgressAt = &now
	}
	if newStatus.IsDone() && t.doneAt == nil {
		t.doneAt = &now
	}

	return nil
}

// Apply merges the fields present in the patch into the ticket. The patch
// must already be validated; a present-but-empty title is rejected here as
// a last line of defense.
func (t *Ticket) Apply(p Patch) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if p.Title != nil {
		t.title = *p.Title
	}
	if p.Description != nil {
		t.description = *p.Description
	}
	if p.TicketType != nil {
		t.ticketType = *p.TicketType
	}
	if p.Priority != nil {
		t.priority = *p.Priority
	}
	if p.Status != nil {
		if err := t.ChangeStatus(*p.Status); err != nil {
			return err
		}
	}
	if p.Labels != nil {
		t.labels = append([]string{}, *p.Labels...)
	}
	if p.MediaURL != nil {
		t.mediaURL = *p.MediaURL
	}
	if p.Deadline != nil {
		t.deadline = *p.Deadline
	}
	if p.StoryPoints != nil {
		t.storyPoints = *p.StoryPoints
	}
	if p.EstimatedHours != nil {
		t.estimatedHours = *p.EstimatedHours
	}
	if p.ActualHours != nil {
		t.actualHours = *p.ActualHours
	}
	if p.Assignee != nil {
		t.assignee = *p.Assignee
	}

	return nil
}

// Clone returns an independent copy, so optimistic updates never alias
// state shared with a caller.
func (t *Ticket) Clone() *Ticket {
	clone := *t
	clone.labels = append([]string{}, t.labels...)
	return &clone
}
