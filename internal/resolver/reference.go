package resolver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Reference is the classified form of a resolver input. Exactly one of the
// concrete types below implements it.
type Reference interface {
	kind() string
}

// PlanRef wraps a plan object that is used as-is.
type PlanRef struct {
	Plan *domain.TacticalPlan
}

// MappingRef holds structured fields to be constructed into a plan.
type MappingRef struct {
	Fields map[string]any
}

// IdentifierRef names a stored plan by its identifier.
type IdentifierRef struct {
	ID string
}

// FilenameRef names a stored plan by filename, used when nothing else matched.
type FilenameRef struct {
	Filename string
	Raw      string
}

func (PlanRef) kind() string       { return "plan object" }
func (MappingRef) kind() string    { return "structured mapping" }
func (IdentifierRef) kind() string { return "plan identifier" }
func (FilenameRef) kind() string   { return "filename" }

var planIDCall = regexp.MustCompile(`plan_id=(?:[A-Za-z_][A-Za-z0-9_]*)?\(\s*['"]([^'"]*)['"]\s*\)`)

// planKeys are the top-level keys that mark a YAML document as a plan.
var planKeys = []string{"name", "formation", "players", "plan_id"}

// Classify decides what kind of reference input is. It never touches the
// store; text that is neither a mapping nor an identifier falls through to a
// FilenameRef.
func Classify(input any) (Reference, error) {
	switch v := input.(type) {
	case *domain.TacticalPlan:
		if v == nil {
			return nil, &UnsupportedTypeError{Type: "nil plan"}
		}
		return PlanRef{Plan: v}, nil
	case domain.TacticalPlan:
		return PlanRef{Plan: &v}, nil
	case map[string]any:
		return MappingRef{Fields: v}, nil
	case json.RawMessage:
		return classifyText(string(v))
	case []byte:
		return classifyText(string(v))
	case string:
		return classifyText(v)
	case nil:
		return nil, &UnsupportedTypeError{Type: "nil"}
	default:
		return nil, &UnsupportedTypeError{Type: fmt.Sprintf("%T", input)}
	}
}

func classifyText(raw string) (Reference, error) {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "{") {
		if fields, ok := parseJSONObject(text); ok {
			return MappingRef{Fields: fields}, nil
		}
	}
	if fields, ok := parseYAMLPlan(text); ok {
		return MappingRef{Fields: fields}, nil
	}
	if m := planIDCall.FindStringSubmatch(text); m != nil {
		return IdentifierRef{ID: m[1]}, nil
	}
	if id, err := uuid.Parse(text); err == nil {
		return IdentifierRef{ID: id.String()}, nil
	}
	return FilenameRef{Filename: asPlanFilename(text), Raw: raw}, nil
}

func parseJSONObject(text string) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}

// parseYAMLPlan accepts only a mapping carrying at least one plan key, so a
// bare filename (which YAML reads as a scalar) is never mistaken for a plan.
func parseYAMLPlan(text string) (map[string]any, bool) {
	if !strings.Contains(text, ":") {
		return nil, false
	}
	var fields map[string]any
	if err := yaml.Unmarshal([]byte(text), &fields); err != nil || fields == nil {
		return nil, false
	}
	for _, key := range planKeys {
		if _, ok := fields[key]; ok {
			return fields, true
		}
	}
	return nil, false
}

// asPlanFilename forces a .json extension, replacing any other extension.
func asPlanFilename(text string) string {
	if strings.HasSuffix(text, ".json") {
		return text
	}
	if dot := strings.LastIndex(text, "."); dot > 0 && !strings.ContainsAny(text[dot:], `/\`) {
		return text[:dot] + ".json"
	}
	return text + ".json"
}
