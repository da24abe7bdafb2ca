package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriority_IsValid(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical} {
		assert.True(t, p.IsValid(), p.String())
	}

	assert.False(t, Priority("urgent").IsValid())
	assert.False(t, Priority("").IsValid())
}

func TestPriority_Rank(t *testing.T) {
	assert.Less(t, PriorityLow.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityHigh.Rank())
	assert.Less(t, PriorityHigh.Rank(), PriorityCritical.Rank())
	assert.Equal(t, -1, Priority("bogus").Rank())
}

func TestNewPriority(t *testing.T) {
	p, err := NewPriority("critical")
	require.NoError(t, err)
	assert.True(t, p.IsCritical())

	_, err = NewPriority("p0")
	assert.Error(t, err)
}

func TestNewTicketType(t *testing.T) {
	tt, err := NewTicketType("improvement")
	require.NoError(t, err)
	assert.Equal(t, "Improvement", tt.Label())

	_, err = NewTicketType("chore")
	assert.Error(t, err)
}
