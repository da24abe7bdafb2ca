package valueobjects

import "fmt"

// Status is the board column a ticket lives in. Unlike a guarded workflow,
// kanban drag allows any known column to move to any other; the only
// invalid move is into an unknown status.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inProgress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

var validStatuses = map[Status]bool{
	StatusTodo:       true,
	StatusInProgress: true,
	StatusReview:     true,
	StatusDone:       true,
}

var statusTitles = map[Status]string{
	StatusTodo:       "To Do",
	StatusInProgress: "In Progress",
	StatusReview:     "Review",
	StatusDone:       "Done",
}

// AllStatuses returns the columns in board order.
func AllStatuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusReview, StatusDone}
}

func (s Status) String() string {
	return string(s)
}

// Title returns the column heading shown on the board.
func (s Status) Title() string {
	if title, ok := statusTitles[s]; ok {
		return title
	}
	return string(s)
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

func (s Status) IsTodo() bool {
	return s == StatusTodo
}

func (s Status) IsInProgress() bool {
	return s == StatusInProgress
}

func (s Status) IsReview() bool {
	return s == StatusReview
}

func (s Status) IsDone() bool {
	return s == StatusDone
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return st, nil
}
