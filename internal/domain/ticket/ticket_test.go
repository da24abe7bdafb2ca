package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "flowboard/internal/domain/ticket/valueobjects"
)

// newValidTicket creates a ticket with sensible defaults for testing.
func newValidTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket(Draft{
		Title:       "Fix login spinner",
		Description: "Spinner never stops on bad credentials",
		TicketType:  "bug",
		Priority:    "high",
		Status:      "todo",
		StoryPoints: 3,
	}, 1)
	require.NoError(t, err)
	return tk
}

// reconstructedTicket builds a persisted-style ticket via ReconstructTicket.
func reconstructedTicket(t *testing.T, id uint, status vo.Status) *Ticket {
	t.Helper()
	now := time.Now().UTC()
	tk, err := ReconstructTicket(
		id, "4f8a2c1e-0000-0000-0000-000000000000",
		"Persisted ticket", "desc",
		vo.TypeTask, vo.PriorityMedium,
		status,
		[]string{"backend"},
		"",
		nil, // deadline
		2,   // storyPoints
		nil, nil,
		1,   // createdBy
		nil, // assignee
		now,
		nil, nil,
	)
	require.NoError(t, err)
	return tk
}

func TestNewTicket_ValidDraft(t *testing.T) {
	tk := newValidTicket(t)

	assert.Equal(t, uint(0), tk.ID(), "backend assigns the id")
	assert.NotEmpty(t, tk.UUID())
	assert.Len(t, tk.ShortRef(), 8)
	assert.Equal(t, "Fix login spinner", tk.Title())
	assert.Equal(t, vo.TypeBug, tk.Type())
	assert.Equal(t, vo.PriorityHigh, tk.Priority())
	assert.Equal(t, vo.StatusTodo, tk.Status())
	assert.Equal(t, 3, tk.StoryPoints())
	assert.False(t, tk.CreatedAt().IsZero())
	assert.Nil(t, tk.InProgressAt())
	assert.Nil(t, tk.DoneAt())
}

func TestNewTicket_InvalidDraft(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
	}{
		{
			name:  "empty title",
			draft: Draft{TicketType: "bug", Priority: "low", Status: "todo"},
		},
		{
			name: "whitespace title",
			draft: Draft{
				Title: "   ", TicketType: "bug", Priority: "low", Status: "todo",
			},
		},
		{
			name: "unknown priority",
			draft: Draft{
				Title: "x", TicketType: "bug", Priority: "blocker", Status: "todo",
			},
		},
		{
			name: "negative story points",
			draft: Draft{
				Title: "x", TicketType: "bug", Priority: "low", Status: "todo",
				StoryPoints: -1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTicket(tt.draft, 1)
			assert.Error(t, err)
		})
	}
}

func TestNewTicket_UUIDsAreUnique(t *testing.T) {
	a := newValidTicket(t)
	b := newValidTicket(t)
	assert.NotEqual(t, a.UUID(), b.UUID())
}

func TestTicket_SetID(t *testing.T) {
	tk := newValidTicket(t)

	require.NoError(t, tk.SetID(42))
	assert.Equal(t, uint(42), tk.ID())

	assert.Error(t, tk.SetID(43), "id is immutable once set")
	assert.Error(t, reconstructedTicket(t, 7, vo.StatusTodo).SetID(8))
}

func TestTicket_ChangeStatus(t *testing.T) {
	tk := reconstructedTicket(t, 1, vo.StatusTodo)

	require.NoError(t, tk.ChangeStatus(vo.StatusInProgress))
	assert.Equal(t, vo.StatusInProgress, tk.Status())
	require.NotNil(t, tk.InProgressAt())
	firstStarted := *tk.InProgressAt()

	require.NoError(t, tk.ChangeStatus(vo.StatusDone))
	require.NotNil(t, tk.DoneAt())

	// Going back and forth keeps the first-entry timestamps.
	require.NoError(t, tk.ChangeStatus(vo.StatusReview))
	require.NoError(t, tk.ChangeStatus(vo.StatusInProgress))
	assert.Equal(t, firstStarted, *tk.InProgressAt())
}

func TestTicket_ChangeStatus_SameStatusIsNoop(t *testing.T) {
	tk := reconstructedTicket(t, 1, vo.StatusReview)

	require.NoError(t, tk.ChangeStatus(vo.StatusReview))
	assert.Equal(t, vo.StatusReview, tk.Status())
	assert.Nil(t, tk.InProgressAt())
}

func TestTicket_ChangeStatus_RejectsUnknown(t *testing.T) {
	tk := reconstructedTicket(t, 1, vo.StatusTodo)

	err := tk.ChangeStatus(vo.Status("archived"))
	assert.Error(t, err)
	assert.Equal(t, vo.StatusTodo, tk.Status())
}

func TestTicket_Apply(t *testing.T) {
	tk := reconstructedTicket(t, 1, vo.StatusTodo)

	newTitle := "Renamed"
	points := 8
	hours := 4.5
	hoursPtr := &hours
	require.NoError(t, tk.Apply(Patch{
		Title:          &newTitle,
		StoryPoints:    &points,
		EstimatedHours: &hoursPtr,
	}))

	assert.Equal(t, "Renamed", tk.Title())
	assert.Equal(t, 8, tk.StoryPoints())
	require.NotNil(t, tk.EstimatedHours())
	assert.Equal(t, 4.5, *tk.EstimatedHours())
	// untouched fields survive
	assert.Equal(t, vo.TypeTask, tk.Type())
}

func TestTicket_Apply_EmptyTitleRejected(t *testing.T) {
	tk := reconstructedTicket(t, 1, vo.StatusTodo)

	empty := "  "
	err := tk.Apply(Patch{Title: &empty})
	assert.Error(t, err)
	assert.Equal(t, "Persisted ticket", tk.Title())
}

func TestTicket_CloneIsIndependent(t *testing.T) {
	tk := reconstructedTicket(t, 1, vo.StatusTodo)
	clone := tk.Clone()

	require.NoError(t, clone.ChangeStatus(vo.StatusDone))

	assert.Equal(t, vo.StatusTodo, tk.Status())
	assert.Equal(t, vo.StatusDone, clone.Status())

	labels := clone.Labels()
	labels[0] = "mutated"
	assert.Equal(t, []string{"backend"}, tk.Labels())
}

func TestReconstructTicket_Validation(t *testing.T) {
	now := time.Now().UTC()

	_, err := ReconstructTicket(
		0, "uuid", "title", "", vo.TypeBug, vo.PriorityLow, vo.StatusTodo,
		nil, "", nil, 0, nil, nil, 1, nil, now, nil, nil,
	)
	assert.Error(t, err, "zero id")

	_, err = ReconstructTicket(
		1, "", "title", "", vo.TypeBug, vo.PriorityLow, vo.StatusTodo,
		nil, "", nil, 0, nil, nil, 1, nil, now, nil, nil,
	)
	assert.Error(t, err, "missing uuid")

	// Unknown statuses are preserved rather than rejected; the board view
	// decides what to do with them.
	tk, err := ReconstructTicket(
		1, "uuid", "title", "", vo.TypeBug, vo.PriorityLow, vo.Status("archived"),
		nil, "", nil, 0, nil, nil, 1, nil, now, nil, nil,
	)
	require.NoError(t, err)
	assert.False(t, tk.Status().IsValid())
}

func TestTicket_BranchName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Fix Login Flow", "feature/4f8a2c1e/fix-login-flow"},
		{"Add  OAuth2 (PKCE)!", "feature/4f8a2c1e/add-oauth2-pkce-"},
		{"already-kebab-case", "feature/4f8a2c1e/already-kebab-case"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			tk := reconstructedTicket(t, 1, vo.StatusTodo)
			patched := tk.Clone()
			title := tt.title
			require.NoError(t, patched.Apply(Patch{Title: &title}))
			assert.Equal(t, tt.want, patched.BranchName())
		})
	}
}
