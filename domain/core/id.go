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
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
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
	PlanID   ID
	SourceID ID
)

// String conversions for domain IDs
func (id PlanID) String() string   { return ID(id).String() }
func (id SourceID) String() string { return ID(id).String() }

// ParsePlanID parses a string into PlanID
func ParsePlanID(s string) (PlanID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("plan ID cannot be empty")
	}
	return PlanID(s), nil
}

// ParseSourceID parses a string into SourceID
func ParseSourceID(s string) (SourceID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("source ID cannot be empty")
	}
	return SourceID(s), nil
}
