package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchemaViolation matches every *SchemaViolation, zone failures included.
var ErrSchemaViolation = errors.New("schema violation")

// Edit errors
var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrUnknownEdit    = errors.New("unknown edit operation")
	ErrInvalidEdit    = errors.New("invalid edit")
)

// FieldViolation describes one field that failed its static constraint.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v FieldViolation) String() string {
	if v.Field == "" {
		return v.Message
	}
	return v.Field + " " + v.Message
}

// SchemaViolation is returned when a Zone, Player or TacticalPlan cannot be
// constructed because one or more fields break their constraints.
type SchemaViolation struct {
	Subject    string           `json:"subject"`
	Violations []FieldViolation `json:"violations"`
}

func (e *SchemaViolation) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s: %s: %s", e.Subject, ErrSchemaViolation, strings.Join(parts, "; "))
}

func (e *SchemaViolation) Is(target error) bool {
	return target == ErrSchemaViolation
}
