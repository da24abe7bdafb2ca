package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"flowboard/internal/application/board"
	"flowboard/internal/domain/ticket"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading board..."
	}

	switch m.focus {
	case FocusForm:
		return m.viewForm()
	case FocusComments:
		return m.viewComments()
	case FocusConfirmDelete:
		return m.viewConfirmDelete()
	}
	return m.viewBoard()
}

func (m Model) viewBoard() string {
	b := m.store.Board()
	now := time.Now()

	header := fmt.Sprintf("flowboard · %d tickets", b.TotalCount())
	if m.store.Loading() {
		header += " · loading"
	}

	columnWidth := m.width/len(b.Columns) - 2
	if columnWidth < 16 {
		columnWidth = 16
	}

	hover := m.drag.Hover()
	grabbedID := m.drag.Dragging()

	rendered := make([]string, 0, len(b.Columns))
	for colIdx, col := range b.Columns {
		title := m.theme.ColumnTitle.Render(fmt.Sprintf("%s (%d)", col.Title, col.Count()))

		lines := []string{title}
		for rowIdx, t := range col.Tickets {
			selected := m.focus == FocusBoard && colIdx == m.col && rowIdx == m.row
			lines = append(lines, m.renderCard(t, now, columnWidth-2, selected, t.ID() == grabbedID))
		}

		body := strings.Join(lines, "\n")
		style := m.theme.Column
		if m.grabbed && col.Status == hover {
			style = m.theme.ColumnHover
		}
		rendered = append(rendered, style.Width(columnWidth).Render(body))
	}

	columns := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	return strings.Join([]string{header, columns, m.statusBar(b)}, "\n")
}

func (m Model) renderCard(t *ticket.Ticket, now time.Time, width int, selected, grabbed bool) string {
	ref := m.theme.CardRef.Render(t.ShortRef())
	title := truncate(t.Title(), width)
	badges := m.theme.Badge.Render(fmt.Sprintf(
		"%s · %s · %s", t.Priority(), t.Type().Label(), m.roster.NameFor(t.Assignee()),
	))

	lines := []string{ref, title, badges}
	if d := t.Deadline(); d != nil {
		label := "due " + d.Format("Jan 2")
		lines = append(lines, m.deadlineStyle(t.DeadlineStatus(now)).Render(label))
	}

	style := m.theme.Card
	switch {
	case grabbed:
		style = m.theme.CardGrabbed
	case selected:
		style = m.theme.CardSelected
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) deadlineStyle(status ticket.DeadlineStatus) lipgloss.Style {
	switch status {
	case ticket.DeadlineOverdue:
		return m.theme.DeadlineOverdue
	case ticket.DeadlineUrgent:
		return m.theme.DeadlineUrgent
	case ticket.DeadlineUpcoming:
		return m.theme.DeadlineUpcoming
	default:
		return m.theme.DeadlineNormal
	}
}

func (m Model) statusBar(b board.Board) string {
	if m.notice != "" {
		if m.noticeErr {
			return m.theme.ErrorNotice.Render(m.notice)
		}
		return m.theme.StatusBar.Render(m.notice)
	}

	help := "space grab · enter drop · n new · d delete · c comments · g branch · r reload · q quit"
	if m.grabbed {
		help = "←/→ choose column · enter drop · esc release"
	}
	if n := b.Unclassified; n > 0 {
		help += fmt.Sprintf(" · %d off-board", n)
	}
	return m.theme.StatusBar.Render(help)
}

func (m Model) viewForm() string {
	var sb strings.Builder
	sb.WriteString("New ticket\n\n")
	for i := range m.form.inputs {
		marker := "  "
		if i == m.form.idx {
			marker = "> "
		}
		fmt.Fprintf(&sb, "%s%s\n%s  %s\n", marker, m.form.labels[i], marker, m.form.inputs[i].View())
	}
	sb.WriteString("\nenter next/submit · tab next · esc cancel")
	if m.notice != "" {
		sb.WriteString("\n" + m.theme.ErrorNotice.Render(m.notice))
	}
	return m.theme.Overlay.Render(sb.String())
}

func (m Model) viewComments() string {
	var sb strings.Builder
	if t, ok := m.store.Get(m.comments.TicketID()); ok {
		fmt.Fprintf(&sb, "Comments · %s\n\n", truncate(t.Title(), 48))
	} else {
		sb.WriteString("Comments\n\n")
	}

	comments := m.comments.Comments()
	if !m.comments.Expanded() {
		sb.WriteString("loading...\n")
	} else if len(comments) == 0 {
		sb.WriteString("no comments yet\n")
	}
	for _, c := range comments {
		fmt.Fprintf(&sb, "%s · %s\n%s\n\n",
			c.AuthorName(), c.CreatedAt().Format("Jan 2 15:04"), c.Body())
	}

	sb.WriteString("\n" + m.input.View())
	sb.WriteString("\nenter post · esc close")
	if m.notice != "" {
		sb.WriteString("\n" + m.theme.ErrorNotice.Render(m.notice))
	}
	return m.theme.Overlay.Render(sb.String())
}

func (m Model) viewConfirmDelete() string {
	t := m.selectedTicket()
	if t == nil {
		return m.theme.Overlay.Render("nothing selected")
	}
	return m.theme.Overlay.Render(fmt.Sprintf(
		"Delete %q?\n\nThis cannot be undone.\n\ny delete · n keep", truncate(t.Title(), 48),
	))
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 1 || len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
