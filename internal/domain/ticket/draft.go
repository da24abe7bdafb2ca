package ticket

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	vo "flowboard/internal/domain/ticket/valueobjects"
)

var validate = validator.New()

// Draft is the in-progress ticket creation form. String-typed enum fields
// mirror form inputs; they are narrowed to value objects once validated.
type Draft struct {
	Title          string     `validate:"required"`
	Description    string     `validate:"max=5000"`
	TicketType     string     `validate:"oneof=feature bug task improvement"`
	Priority       string     `validate:"oneof=low medium high critical"`
	Status         string     `validate:"oneof=todo inProgress review done"`
	Labels         []string   `validate:"dive,min=1"`
	MediaURL       string     `validate:"omitempty,url"`
	Deadline       *time.Time
	StoryPoints    int      `validate:"gte=0"`
	EstimatedHours *float64 `validate:"omitempty,gte=0"`
	Assignee       *uint
}

// DefaultDraft returns the form defaults: a todo feature at medium
// priority with zero points.
func DefaultDraft() Draft {
	return Draft{
		TicketType:  vo.TypeFeature.String(),
		Priority:    vo.PriorityMedium.String(),
		Status:      vo.StatusTodo.String(),
		Labels:      []string{},
		StoryPoints: 0,
	}
}

// Validate checks the draft without touching the network. Title presence
// is checked on the trimmed value so all-whitespace titles fail too.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if err := validate.Struct(d); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) && len(vErrs) > 0 {
			fe := vErrs[0]
			return fmt.Errorf("invalid draft field %s (%s)", fe.Field(), fe.Tag())
		}
		return err
	}
	return nil
}

// Patch is a partial update. Nil fields are untouched; a double pointer is
// used where "set to empty" and "leave alone" both matter.
type Patch struct {
	Title          *string
	Description    *string
	TicketType     *vo.TicketType
	Priority       *vo.Priority
	Status         *vo.Status
	Labels         *[]string
	MediaURL       *string
	Deadline       **time.Time
	StoryPoints    *int
	EstimatedHours **float64
	ActualHours    **float64
	Assignee       **uint
}

// Validate rejects patches no gateway call should be made for.
func (p Patch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if p.TicketType != nil && !p.TicketType.IsValid() {
		return fmt.Errorf("invalid ticket type: %s", *p.TicketType)
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", *p.Priority)
	}
	if p.Status != nil && !p.Status.IsValid() {
		return fmt.Errorf("invalid status: %s", *p.Status)
	}
	if p.StoryPoints != nil && *p.StoryPoints < 0 {
		return fmt.Errorf("story points cannot be negative")
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}
