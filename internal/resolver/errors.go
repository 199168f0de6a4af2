package resolver

import (
	"errors"
	"fmt"
	"strings"
)

// ErrReferenceResolution is matched by every error the resolver returns for
// a reference it could not turn into a plan.
var ErrReferenceResolution = errors.New("plan reference could not be resolved")

const inputPreviewLimit = 100

// NotFoundError means the reference named a plan identifier but no stored
// plan carries it.
type NotFoundError struct {
	Identifier string
	Filename   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Plan not found: %s. The plan may not have been saved yet (looked for %s).",
		e.Identifier, e.Filename)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrReferenceResolution
}

// InvalidReferenceError means no interpretation of the input produced a plan.
type InvalidReferenceError struct {
	Input     string
	Attempted []string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("Could not resolve plan reference %q. Tried: %s. "+
		"Expected a plan object, a JSON or YAML mapping, a plan_id=UUID('...') reference, a bare UUID, or a saved plan filename.",
		e.Input, strings.Join(e.Attempted, ", "))
}

func (e *InvalidReferenceError) Is(target error) bool {
	return target == ErrReferenceResolution
}

// UnsupportedTypeError means the input was not a plan, mapping, or text.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("Unsupported plan reference type: %s", e.Type)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrReferenceResolution
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= inputPreviewLimit {
		return s
	}
	return string(r[:inputPreviewLimit])
}
