package types

import "fmt"

// HistoryAction represents the kind of change recorded in the audit trail
type HistoryAction string

const (
	HistoryActionCreated HistoryAction = "CREATED"
	HistoryActionUpdated HistoryAction = "UPDATED"
	HistoryActionDeleted HistoryAction = "DELETED"
)

// AllHistoryActions returns all valid history actions
func AllHistoryActions() []HistoryAction {
	return []HistoryAction{
		HistoryActionCreated,
		HistoryActionUpdated,
		HistoryActionDeleted,
	}
}

// IsValid checks if the history action is valid
func (a HistoryAction) IsValid() bool {
	switch a {
	case HistoryActionCreated, HistoryActionUpdated, HistoryActionDeleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the history action
func (a HistoryAction) String() string {
	return string(a)
}

// ParseHistoryAction parses a string into a HistoryAction
func ParseHistoryAction(s string) (HistoryAction, error) {
	action := HistoryAction(s)
	if !action.IsValid() {
		return "", fmt.Errorf("invalid history action: %s", s)
	}
	return action, nil
}
