package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"flowboard/internal/application/board"
	"flowboard/internal/domain/team"
	"flowboard/internal/domain/ticket"
	vo "flowboard/internal/domain/ticket/valueobjects"
	"flowboard/internal/shared/logger"
)

// FocusRegion identifies which surface has keyboard focus.
type FocusRegion int

const (
	// FocusBoard means navigation keys move the card cursor (or the
	// grabbed card's hover column).
	FocusBoard FocusRegion = iota
	// FocusForm means keystrokes go to the ticket creation form.
	FocusForm
	// FocusComments means the comment panel is open and keystrokes go to
	// the comment input.
	FocusComments
	// FocusConfirmDelete means the yes/no delete gate is showing.
	FocusConfirmDelete
)

// noticeFadeDelay is how long an error notice stays in the status bar.
const noticeFadeDelay = 5 * time.Second

// Async results carry the generation they were issued under. A result
// from a view the user has already left is dropped on arrival; the
// underlying call is never cancelled.
type ticketsLoadedMsg struct {
	gen int
	err error
}

type ticketCreatedMsg struct {
	gen int
	err error
}

type dropSettledMsg struct {
	gen int
	err error
}

type removeDoneMsg struct {
	gen int
	err error
}

type commentsLoadedMsg struct {
	gen int
	err error
}

type commentPostedMsg struct {
	gen int
	err error
}

type noticeFadeMsg struct {
	gen int
}

// Model is the top-level bubbletea model for the board.
type Model struct {
	store   *board.Store
	drag    *board.DragController
	gateway ticket.Gateway
	roster  *team.Roster
	logger  logger.Interface
	keys    KeyMap
	theme   Theme

	width  int
	height int
	ready  bool

	focus FocusRegion
	col   int
	row   int

	grabbed bool

	form     *createForm
	comments *board.CommentPanel
	input    commentInput

	// viewGen increments on every focus change so in-flight results for a
	// surface the user has left are ignored.
	viewGen   int
	noticeGen int
	notice    string
	noticeErr bool
}

// NewModel wires the board surfaces together. The store must already hold
// the signed-in user; call Init to trigger the initial load.
func NewModel(store *board.Store, drag *board.DragController, gateway ticket.Gateway, roster *team.Roster, log logger.Interface) Model {
	return Model{
		store:   store,
		drag:    drag,
		gateway: gateway,
		roster:  roster,
		logger:  log.Named("tui"),
		keys:    DefaultKeyMap,
		theme:   DefaultTheme,
	}
}

// Init implements tea.Model: it kicks off the initial board load.
func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// Update implements tea.Model.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		return m, nil

	case ticketsLoadedMsg:
		if message.gen != m.viewGen {
			return m, nil
		}
		if message.err != nil {
			return m.showError(message.err)
		}
		m.clampCursor()
		return m, nil

	case ticketCreatedMsg:
		if message.gen != m.viewGen {
			return m, nil
		}
		if message.err != nil {
			return m.showError(message.err)
		}
		m.focus = FocusBoard
		m.form = nil
		m.viewGen++
		m.col, m.row = 0, 0
		return m, nil

	case dropSettledMsg:
		if message.gen != m.viewGen {
			return m, nil
		}
		if message.err != nil {
			model, cmd := m.showError(message.err)
			model.clampCursor()
			return model, cmd
		}
		m.clampCursor()
		return m, nil

	case removeDoneMsg:
		if message.gen != m.viewGen {
			return m, nil
		}
		if message.err != nil {
			return m.showError(message.err)
		}
		m.clampCursor()
		return m, nil

	case commentsLoadedMsg:
		if message.gen != m.viewGen {
			return m, nil
		}
		if message.err != nil {
			model, cmd := m.showError(message.err)
			model.focus = FocusBoard
			model.comments = nil
			return model, cmd
		}
		return m, nil

	case commentPostedMsg:
		if message.gen != m.viewGen {
			return m, nil
		}
		if message.err != nil {
			return m.showError(message.err)
		}
		m.input.Reset()
		return m, nil

	case noticeFadeMsg:
		if message.gen == m.noticeGen {
			m.notice = ""
			m.noticeErr = false
		}
		return m, nil

	case tea.KeyMsg:
		switch m.focus {
		case FocusForm:
			return m.updateForm(message)
		case FocusComments:
			return m.updateComments(message)
		case FocusConfirmDelete:
			return m.updateConfirmDelete(message)
		default:
			return m.updateBoard(message)
		}
	}

	return m, nil
}

func (m Model) updateBoard(message tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(message, m.keys.Up):
		if m.row > 0 {
			m.row--
		}

	case key.Matches(message, m.keys.Down):
		if m.row < m.columnLen(m.col)-1 {
			m.row++
		}

	case key.Matches(message, m.keys.Left):
		if m.col > 0 {
			m.col--
			if m.grabbed {
				m.drag.ColumnHover(m.columnStatus(m.col))
			} else {
				m.clampCursor()
			}
		}

	case key.Matches(message, m.keys.Right):
		if m.col < len(vo.AllStatuses())-1 {
			m.col++
			if m.grabbed {
				m.drag.ColumnHover(m.columnStatus(m.col))
			} else {
				m.clampCursor()
			}
		}

	case key.Matches(message, m.keys.Grab):
		if m.grabbed {
			return m, nil
		}
		t := m.selectedTicket()
		if t == nil {
			return m, nil
		}
		if err := m.drag.GestureStart(t.ID()); err != nil {
			return m.showError(err)
		}
		m.grabbed = true
		m.drag.ColumnHover(m.columnStatus(m.col))

	case key.Matches(message, m.keys.Confirm):
		if !m.grabbed {
			return m, nil
		}
		m.grabbed = false
		target := m.drag.Hover()
		return m, m.dropCmd(target)

	case key.Matches(message, m.keys.Cancel):
		if m.grabbed {
			m.grabbed = false
			// Releasing outside the board never touches the network.
			_ = m.drag.GestureEnd(context.Background(), board.NoColumn)
			m.clampCursor()
		}

	case key.Matches(message, m.keys.New):
		m.focus = FocusForm
		m.viewGen++
		form := newCreateForm(m.store.CurrentDraft())
		m.form = &form
		return m, m.form.focusCmd()

	case key.Matches(message, m.keys.Delete):
		if m.grabbed {
			return m, nil
		}
		if m.selectedTicket() == nil {
			return m, nil
		}
		m.focus = FocusConfirmDelete
		m.viewGen++

	case key.Matches(message, m.keys.Comments):
		if m.grabbed {
			return m, nil
		}
		t := m.selectedTicket()
		if t == nil {
			return m, nil
		}
		m.focus = FocusComments
		m.viewGen++
		m.comments = board.NewCommentPanel(m.gateway, m.logger, t.ID(), m.store.UserID())
		m.input = newCommentInput()
		return m, m.expandCommentsCmd(m.comments)

	case key.Matches(message, m.keys.Branch):
		if m.grabbed {
			return m, nil
		}
		t := m.selectedTicket()
		if t == nil {
			return m, nil
		}
		return m.showNotice(t.BranchName())

	case key.Matches(message, m.keys.Reload):
		return m, m.loadCmd()
	}

	return m, nil
}

func (m Model) updateConfirmDelete(message tea.KeyMsg) (Model, tea.Cmd) {
	switch message.String() {
	case "y", "Y":
		t := m.selectedTicket()
		m.focus = FocusBoard
		m.viewGen++
		if t == nil {
			return m, nil
		}
		return m, m.removeCmd(t.ID())
	case "n", "N", "esc":
		m.focus = FocusBoard
		m.viewGen++
	}
	return m, nil
}

func (m Model) updateComments(message tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Cancel):
		m.comments.Collapse()
		m.comments = nil
		m.focus = FocusBoard
		m.viewGen++
		return m, nil

	case key.Matches(message, m.keys.Confirm):
		body := m.input.Value()
		return m, m.postCommentCmd(m.comments, body)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(message)
	return m, cmd
}

func (m Model) updateForm(message tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Cancel):
		// The draft survives the cancel so reopening the form resumes it.
		m.store.SetDraft(m.form.draft())
		m.form = nil
		m.focus = FocusBoard
		m.viewGen++
		return m, nil

	case message.Type == tea.KeyEnter && m.form.onLastField():
		draft, err := m.form.buildDraft()
		if err != nil {
			return m.showError(err)
		}
		return m, m.createCmd(draft)

	case message.Type == tea.KeyEnter, message.Type == tea.KeyTab, message.Type == tea.KeyDown:
		return m, m.form.next()

	case message.Type == tea.KeyShiftTab, message.Type == tea.KeyUp:
		return m, m.form.prev()
	}

	cmd := m.form.update(message)
	return m, cmd
}

func (m Model) showError(err error) (Model, tea.Cmd) {
	m.logger.Warnw("surface notice", "error", err)
	m.notice = err.Error()
	m.noticeErr = true
	m.noticeGen++
	gen := m.noticeGen
	return m, tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{gen: gen}
	})
}

// showNotice puts an informational line in the status bar with the same
// fade as error notices.
func (m Model) showNotice(text string) (Model, tea.Cmd) {
	m.notice = text
	m.noticeErr = false
	m.noticeGen++
	gen := m.noticeGen
	return m, tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{gen: gen}
	})
}

func (m *Model) clampCursor() {
	if m.col < 0 {
		m.col = 0
	}
	if max := len(vo.AllStatuses()) - 1; m.col > max {
		m.col = max
	}
	if n := m.columnLen(m.col); m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m Model) columnStatus(idx int) vo.Status {
	statuses := vo.AllStatuses()
	if idx < 0 || idx >= len(statuses) {
		return board.NoColumn
	}
	return statuses[idx]
}

func (m Model) columnLen(idx int) int {
	b := m.store.Board()
	if idx < 0 || idx >= len(b.Columns) {
		return 0
	}
	return b.Columns[idx].Count()
}

// selectedTicket returns the card under the cursor, nil when the column is
// empty.
func (m Model) selectedTicket() *ticket.Ticket {
	b := m.store.Board()
	if m.col < 0 || m.col >= len(b.Columns) {
		return nil
	}
	cards := b.Columns[m.col].Tickets
	if m.row < 0 || m.row >= len(cards) {
		return nil
	}
	return cards[m.row]
}

func (m Model) loadCmd() tea.Cmd {
	gen := m.viewGen
	store := m.store
	return func() tea.Msg {
		return ticketsLoadedMsg{gen: gen, err: store.Load(context.Background())}
	}
}

func (m Model) createCmd(draft ticket.Draft) tea.Cmd {
	gen := m.viewGen
	store := m.store
	return func() tea.Msg {
		_, err := store.Create(context.Background(), draft)
		return ticketCreatedMsg{gen: gen, err: err}
	}
}

func (m Model) dropCmd(target vo.Status) tea.Cmd {
	gen := m.viewGen
	drag := m.drag
	return func() tea.Msg {
		return dropSettledMsg{gen: gen, err: drag.GestureEnd(context.Background(), target)}
	}
}

func (m Model) removeCmd(id uint) tea.Cmd {
	gen := m.viewGen
	store := m.store
	return func() tea.Msg {
		return removeDoneMsg{gen: gen, err: store.Remove(context.Background(), id)}
	}
}

func (m Model) expandCommentsCmd(panel *board.CommentPanel) tea.Cmd {
	gen := m.viewGen
	return func() tea.Msg {
		return commentsLoadedMsg{gen: gen, err: panel.Expand(context.Background())}
	}
}

func (m Model) postCommentCmd(panel *board.CommentPanel, body string) tea.Cmd {
	gen := m.viewGen
	return func() tea.Msg {
		return commentPostedMsg{gen: gen, err: panel.Post(context.Background(), body)}
	}
}
