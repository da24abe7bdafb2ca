package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"flowboard/internal/domain/ticket"
	"flowboard/internal/shared/errors"
)

const deadlineLayout = "2006-01-02"

// Form field indexes.
const (
	fieldTitle = iota
	fieldDescription
	fieldType
	fieldPriority
	fieldDeadline
	fieldPoints
	fieldCount
)

// createForm is the new-ticket entry form. It edits a Draft; fields the
// form does not expose (labels, media, assignee) ride along unchanged in
// base.
type createForm struct {
	inputs [fieldCount]textinput.Model
	labels [fieldCount]string
	idx    int
	base   ticket.Draft
}

func newCreateForm(d ticket.Draft) createForm {
	f := createForm{
		labels: [fieldCount]string{
			"Title", "Description", "Type", "Priority", "Deadline (YYYY-MM-DD)", "Story points",
		},
		base: d,
	}

	for i := range f.inputs {
		input := textinput.New()
		input.CharLimit = 200
		f.inputs[i] = input
	}
	f.inputs[fieldDescription].CharLimit = 5000

	f.inputs[fieldTitle].SetValue(d.Title)
	f.inputs[fieldDescription].SetValue(d.Description)
	f.inputs[fieldType].SetValue(d.TicketType)
	f.inputs[fieldPriority].SetValue(d.Priority)
	if d.Deadline != nil {
		f.inputs[fieldDeadline].SetValue(d.Deadline.Format(deadlineLayout))
	}
	f.inputs[fieldPoints].SetValue(strconv.Itoa(d.StoryPoints))

	f.inputs[fieldTitle].Focus()
	return f
}

func (f *createForm) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (f *createForm) onLastField() bool {
	return f.idx == fieldCount-1
}

func (f *createForm) next() tea.Cmd {
	f.inputs[f.idx].Blur()
	f.idx = (f.idx + 1) % fieldCount
	return f.inputs[f.idx].Focus()
}

func (f *createForm) prev() tea.Cmd {
	f.inputs[f.idx].Blur()
	f.idx = (f.idx - 1 + fieldCount) % fieldCount
	return f.inputs[f.idx].Focus()
}

func (f *createForm) update(message tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.idx], cmd = f.inputs[f.idx].Update(message)
	return cmd
}

// draft snapshots the form back into a Draft without validating, so a
// cancelled form can be resumed later. Unparseable deadline or points
// fall back to the values the form opened with.
func (f *createForm) draft() ticket.Draft {
	d := f.base
	d.Title = f.inputs[fieldTitle].Value()
	d.Description = f.inputs[fieldDescription].Value()
	d.TicketType = strings.TrimSpace(f.inputs[fieldType].Value())
	d.Priority = strings.TrimSpace(f.inputs[fieldPriority].Value())

	if raw := strings.TrimSpace(f.inputs[fieldDeadline].Value()); raw == "" {
		d.Deadline = nil
	} else if parsed, err := time.Parse(deadlineLayout, raw); err == nil {
		d.Deadline = &parsed
	}
	if points, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldPoints].Value())); err == nil {
		d.StoryPoints = points
	}

	return d
}

// buildDraft parses the form for submission. Field-level problems come
// back as ValidationError so the status bar can show them; the Draft's
// own Validate runs later in the store.
func (f *createForm) buildDraft() (ticket.Draft, error) {
	d := f.base
	d.Title = f.inputs[fieldTitle].Value()
	d.Description = f.inputs[fieldDescription].Value()
	d.TicketType = strings.TrimSpace(f.inputs[fieldType].Value())
	d.Priority = strings.TrimSpace(f.inputs[fieldPriority].Value())

	d.Deadline = nil
	if raw := strings.TrimSpace(f.inputs[fieldDeadline].Value()); raw != "" {
		parsed, err := time.Parse(deadlineLayout, raw)
		if err != nil {
			return ticket.Draft{}, errors.NewValidationError(
				fmt.Sprintf("deadline must be %s", deadlineLayout),
			)
		}
		d.Deadline = &parsed
	}

	d.StoryPoints = 0
	if raw := strings.TrimSpace(f.inputs[fieldPoints].Value()); raw != "" {
		points, err := strconv.Atoi(raw)
		if err != nil || points < 0 {
			return ticket.Draft{}, errors.NewValidationError("story points must be a non-negative number")
		}
		d.StoryPoints = points
	}

	return d, nil
}

// commentInput is the single-line input at the bottom of the comment
// panel.
type commentInput struct {
	input textinput.Model
}

func newCommentInput() commentInput {
	input := textinput.New()
	input.Placeholder = "Write a comment"
	input.CharLimit = 5000
	input.Focus()
	return commentInput{input: input}
}

func (c commentInput) Update(message tea.Msg) (commentInput, tea.Cmd) {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(message)
	return c, cmd
}

func (c commentInput) Value() string {
	return c.input.Value()
}

func (c *commentInput) Reset() {
	c.input.SetValue("")
}

func (c commentInput) View() string {
	return c.input.View()
}
