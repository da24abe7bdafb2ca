package board

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowboard/internal/domain/ticket"
	vo "flowboard/internal/domain/ticket/valueobjects"
)

func TestBuildBoard_PartitionsByStatus(t *testing.T) {
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	tickets := []*ticket.Ticket{
		makeTicket(t, 5, "eee", vo.StatusTodo, base.Add(4*time.Hour)),
		makeTicket(t, 4, "ddd", vo.StatusDone, base.Add(3*time.Hour)),
		makeTicket(t, 3, "ccc", vo.StatusTodo, base.Add(2*time.Hour)),
		makeTicket(t, 2, "bbb", vo.StatusReview, base.Add(time.Hour)),
		makeTicket(t, 1, "aaa", vo.StatusTodo, base),
	}

	b := BuildBoard(tickets)

	require.Len(t, b.Columns, 4)
	assert.Equal(t, vo.StatusTodo, b.Columns[0].Status)
	assert.Equal(t, vo.StatusInProgress, b.Columns[1].Status)
	assert.Equal(t, vo.StatusReview, b.Columns[2].Status)
	assert.Equal(t, vo.StatusDone, b.Columns[3].Status)

	todo, ok := b.Column(vo.StatusTodo)
	require.True(t, ok)
	assert.Equal(t, 3, todo.Count())
	assert.Equal(t, uint(5), todo.Tickets[0].ID(), "input order preserved within a column")
	assert.Equal(t, uint(3), todo.Tickets[1].ID())
	assert.Equal(t, uint(1), todo.Tickets[2].ID())

	inProgress, _ := b.Column(vo.StatusInProgress)
	assert.Equal(t, 0, inProgress.Count(), "empty columns still present")

	assert.Equal(t, 5, b.TotalCount())
	assert.Equal(t, 0, b.Unclassified)
}

func TestBuildBoard_UnknownStatusExcludedFromAllColumns(t *testing.T) {
	base := time.Now().UTC()
	tickets := []*ticket.Ticket{
		makeTicket(t, 1, "aaa", vo.StatusTodo, base),
		makeTicket(t, 2, "bbb", vo.Status("archived"), base),
	}

	b := BuildBoard(tickets)

	assert.Equal(t, 1, b.TotalCount())
	assert.Equal(t, 1, b.Unclassified)
	for _, c := range b.Columns {
		for _, tk := range c.Tickets {
			assert.NotEqual(t, uint(2), tk.ID())
		}
	}
}

func TestBuildBoard_Empty(t *testing.T) {
	b := BuildBoard(nil)

	require.Len(t, b.Columns, 4)
	assert.Equal(t, 0, b.TotalCount())

	_, ok := b.Column(vo.Status("nope"))
	assert.False(t, ok)
}

func TestStore_Board(t *testing.T) {
	gw := &mockGateway{
		ListTicketsFunc: func(ctx context.Context) ([]*ticket.Ticket, error) {
			return boardFixture(t), nil
		},
	}
	store := newTestStore(t, gw)
	require.NoError(t, store.Load(context.Background()))

	b := store.Board()
	assert.Equal(t, 3, b.TotalCount())

	review, _ := b.Column(vo.StatusReview)
	require.Equal(t, 1, review.Count())
	assert.Equal(t, uint(9), review.Tickets[0].ID())
}
