package valueobjects

import "fmt"

type TicketType string

const (
	TypeFeature     TicketType = "feature"
	TypeBug         TicketType = "bug"
	TypeTask        TicketType = "task"
	TypeImprovement TicketType = "improvement"
)

var validTicketTypes = map[TicketType]bool{
	TypeFeature:     true,
	TypeBug:         true,
	TypeTask:        true,
	TypeImprovement: true,
}

var ticketTypeLabels = map[TicketType]string{
	TypeFeature:     "Feature",
	TypeBug:         "Bug",
	TypeTask:        "Task",
	TypeImprovement: "Improvement",
}

func (t TicketType) String() string {
	return string(t)
}

// Label returns the display name for the type.
func (t TicketType) Label() string {
	if label, ok := ticketTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

func (t TicketType) IsValid() bool {
	return validTicketTypes[t]
}

func NewTicketType(s string) (TicketType, error) {
	tt := TicketType(s)
	if !tt.IsValid() {
		return "", fmt.Errorf("invalid ticket type: %s", s)
	}
	return tt, nil
}
