package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComment(t *testing.T) {
	c, err := NewComment(7, 3, "  looks good to me  ")
	require.NoError(t, err)

	assert.Equal(t, uint(7), c.TicketID())
	assert.Equal(t, uint(3), c.AuthorID())
	assert.Equal(t, "looks good to me", c.Body(), "body is stored trimmed")
	assert.False(t, c.CreatedAt().IsZero())
}

func TestNewComment_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		ticketID uint
		authorID uint
		body     string
	}{
		{"zero ticket id", 0, 1, "hello"},
		{"zero author id", 1, 0, "hello"},
		{"empty body", 1, 1, ""},
		{"whitespace body", 1, 1, "   \t\n"},
		{"oversized body", 1, 1, strings.Repeat("a", 5001)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewComment(tt.ticketID, tt.authorID, tt.body)
			assert.Error(t, err)
		})
	}
}

func TestReconstructComment(t *testing.T) {
	created := time.Now().UTC().Add(-time.Hour)
	c, err := ReconstructComment(11, 7, 3, "Hilesh", "done in #42", created)
	require.NoError(t, err)

	assert.Equal(t, uint(11), c.ID())
	assert.Equal(t, "Hilesh", c.AuthorName())
	assert.Equal(t, created, c.CreatedAt())

	_, err = ReconstructComment(0, 7, 3, "", "x", created)
	assert.Error(t, err)
}
