package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Metadata keys maintained on every plan.
const (
	MetadataCreatedAt  = "created_at"
	MetadataModifiedAt = "modified_at"
)

// Conventional transition instruction keys.
const (
	TransitionAttackToDefense = "attack_to_defense"
	TransitionDefenseToAttack = "defense_to_attack"
)

// TimestampLayout is the ISO-8601 layout used for metadata timestamps.
const TimestampLayout = time.RFC3339Nano

// TacticalPlan is the aggregate root: a formation, its roster and the
// team-level instructions that go with it.
//
// Only field-level constraints are enforced on construction. Roster-wide
// rules (one keeper, unique numbers, phases, pressing triggers) are left to
// the validation engine so a plan may break them mid-edit.
type TacticalPlan struct {
	PlanID                 uuid.UUID         `json:"plan_id"`
	Name                   string            `json:"name" validate:"required"`
	Formation              string            `json:"formation"`
	Players                []*Player         `json:"players" validate:"dive,required"`
	Zones                  map[string]*Zone  `json:"zones" validate:"dive,required"`
	PressingTriggers       []string          `json:"pressing_triggers"`
	TransitionInstructions map[string]string `json:"transition_instructions"`
	Metadata               map[string]string `json:"metadata"`
}

// NewPlan creates a plan with a fresh identifier and creation metadata.
func NewPlan(name, formation string, players []*Player) (*TacticalPlan, error) {
	p := &TacticalPlan{
		PlanID:    uuid.New(),
		Name:      name,
		Formation: formation,
		Players:   players,
	}
	p.applyDefaults(time.Now())
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// DecodePlan builds a plan from a JSON document, applying every field-level
// constraint. An invalid plan_id is dropped and replaced with a fresh one.
func DecodePlan(data []byte) (*TacticalPlan, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("decode plan: document is not an object")
	}
	return PlanFromMap(fields)
}

// PlanFromMap builds a plan from a structured mapping such as a decoded JSON
// or YAML object. The input map is not modified.
func PlanFromMap(fields map[string]any) (*TacticalPlan, error) {
	raw, err := json.Marshal(CoercePlanID(fields))
	if err != nil {
		return nil, fmt.Errorf("encode plan fields: %w", err)
	}

	var plan TacticalPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, decodeViolation(err)
	}
	plan.applyDefaults(time.Now())
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

// CoercePlanID returns a copy of fields whose plan_id is either a canonical
// UUID string or absent.
func CoercePlanID(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	raw, ok := out["plan_id"]
	if !ok {
		return out
	}
	s, isString := raw.(string)
	if !isString {
		delete(out, "plan_id")
		return out
	}
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		delete(out, "plan_id")
		return out
	}
	out["plan_id"] = id.String()
	return out
}

func decodeViolation(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &SchemaViolation{
			Subject: "plan",
			Violations: []FieldViolation{{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("must be %s (got %s)", typeErr.Type, typeErr.Value),
			}},
		}
	}
	return &SchemaViolation{
		Subject:    "plan",
		Violations: []FieldViolation{{Message: err.Error()}},
	}
}

// Validate checks the field-level constraints of the plan and its players.
func (p *TacticalPlan) Validate() error {
	return checkSchema("plan", p)
}

// GetPlayerByNumber looks up a player by jersey number. Absence is reported
// through ok, never as an error.
func (p *TacticalPlan) GetPlayerByNumber(number int) (*Player, bool) {
	for _, player := range p.Players {
		if player != nil && player.Number == number {
			return player, true
		}
	}
	return nil, false
}

// IsFormationSizeConsistent reports whether the roster size matches the
// formation. Custom formations always report consistent.
func (p *TacticalPlan) IsFormationSizeConsistent() bool {
	expected, ok := ExpectedRosterSize(p.Formation)
	if !ok {
		return true
	}
	return len(p.Players) == expected
}

// Goalkeepers returns every player whose position marks them as a keeper.
func (p *TacticalPlan) Goalkeepers() []*Player {
	var keepers []*Player
	for _, player := range p.Players {
		if player != nil && IsGoalkeeper(player.Position) {
			keepers = append(keepers, player)
		}
	}
	return keepers
}

// Touch refreshes modified_at. Only the persistence boundary calls it.
func (p *TacticalPlan) Touch() {
	p.TouchAt(time.Now())
}

func (p *TacticalPlan) TouchAt(t time.Time) {
	if p.Metadata == nil {
		p.Metadata = map[string]string{}
	}
	p.Metadata[MetadataModifiedAt] = formatTimestamp(t)
}

func (p *TacticalPlan) CreatedAt() (time.Time, bool) {
	return p.metadataTime(MetadataCreatedAt)
}

func (p *TacticalPlan) ModifiedAt() (time.Time, bool) {
	return p.metadataTime(MetadataModifiedAt)
}

func (p *TacticalPlan) metadataTime(key string) (time.Time, bool) {
	raw, ok := p.Metadata[key]
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(TimestampLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DefaultFilename is the store key used when no explicit filename is given.
func (p *TacticalPlan) DefaultFilename() string {
	return p.PlanID.String() + ".json"
}

// Clone returns a deep copy that shares no mutable state with p.
func (p *TacticalPlan) Clone() *TacticalPlan {
	c := &TacticalPlan{
		PlanID:           p.PlanID,
		Name:             p.Name,
		Formation:        p.Formation,
		PressingTriggers: cloneStrings(p.PressingTriggers),
	}
	if p.Players != nil {
		c.Players = make([]*Player, len(p.Players))
		for i, player := range p.Players {
			c.Players[i] = player.clone()
		}
	}
	if p.Zones != nil {
		c.Zones = make(map[string]*Zone, len(p.Zones))
		for name, zone := range p.Zones {
			if zone == nil {
				c.Zones[name] = nil
				continue
			}
			z := *zone
			c.Zones[name] = &z
		}
	}
	c.TransitionInstructions = cloneStringMap(p.TransitionInstructions)
	c.Metadata = cloneStringMap(p.Metadata)
	return c
}

func (p *TacticalPlan) applyDefaults(now time.Time) {
	if p.PlanID == uuid.Nil {
		p.PlanID = uuid.New()
	}
	if p.Players == nil {
		p.Players = []*Player{}
	}
	for _, player := range p.Players {
		if player != nil {
			player.applyDefaults()
		}
	}
	if p.Zones == nil {
		p.Zones = map[string]*Zone{}
	}
	if p.PressingTriggers == nil {
		p.PressingTriggers = []string{}
	}
	if p.TransitionInstructions == nil {
		p.TransitionInstructions = map[string]string{}
	}
	if p.Metadata == nil {
		p.Metadata = map[string]string{}
	}
	stamp := formatTimestamp(now)
	if _, ok := p.Metadata[MetadataCreatedAt]; !ok {
		p.Metadata[MetadataCreatedAt] = stamp
	}
	if _, ok := p.Metadata[MetadataModifiedAt]; !ok {
		p.Metadata[MetadataModifiedAt] = stamp
	}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func cloneStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
