package tasksrepo

import "fmt"

// Status is the closed set of task states. Raw strings enter the system only
// through ParseStatus; an unrecognized value is an error, never a default.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses returns all members of the status set.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusDone}
}

// StatusValues returns the raw string values of the status set.
func StatusValues() []string {
	statuses := Statuses()
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	return values
}

// ParseStatus converts a raw string into a Status, failing on anything
// outside the set.
func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusPending, StatusInProgress, StatusDone:
		return Status(value), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
}

func (s Status) String() string {
	return string(s)
}
