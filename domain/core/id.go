package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	TeamID    ID
	UserID    ID
	TaskID    ID
	CheckInID ID
	InsightID ID
)

// String conversions for domain IDs
func (id TeamID) String() string    { return ID(id).String() }
func (id UserID) String() string    { return ID(id).String() }
func (id TaskID) String() string    { return ID(id).String() }
func (id CheckInID) String() string { return ID(id).String() }
func (id InsightID) String() string { return ID(id).String() }

// ParseTeamID parses a string into TeamID
func ParseTeamID(s string) (TeamID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("team ID cannot be empty")
	}
	return TeamID(s), nil
}

// ParseUserID parses a string into UserID
func ParseUserID(s string) (UserID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("user ID cannot be empty")
	}
	return UserID(s), nil
}

// ParseTaskID parses a string into TaskID
func ParseTaskID(s string) (TaskID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("task ID cannot be empty")
	}
	return TaskID(s), nil
}
