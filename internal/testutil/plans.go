package testutil

import (
	"context"
	"testing"

	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/dom/touchline-tactician/internal/repository"
)

type playerSeed struct {
	number   int
	position string
	zone     domain.Zone
}

// pressHighRoster is a balanced 4-3-3 whose zones all sit inside the field.
var pressHighRoster = []playerSeed{
	{1, "GK", domain.Zone{XMin: 0, XMax: 10, YMin: 35, YMax: 65}},
	{2, "RB", domain.Zone{XMin: 15, XMax: 60, YMin: 0, YMax: 25}},
	{3, "LB", domain.Zone{XMin: 15, XMax: 60, YMin: 75, YMax: 100}},
	{4, "CB", domain.Zone{XMin: 10, XMax: 35, YMin: 25, YMax: 50}},
	{5, "CB", domain.Zone{XMin: 10, XMax: 35, YMin: 50, YMax: 75}},
	{6, "CDM", domain.Zone{XMin: 30, XMax: 55, YMin: 30, YMax: 70}},
	{8, "CM", domain.Zone{XMin: 40, XMax: 70, YMin: 20, YMax: 50}},
	{10, "CAM", domain.Zone{XMin: 50, XMax: 80, YMin: 50, YMax: 80}},
	{7, "RW", domain.Zone{XMin: 65, XMax: 95, YMin: 0, YMax: 30}},
	{11, "LW", domain.Zone{XMin: 65, XMax: 95, YMin: 70, YMax: 100}},
	{9, "ST", domain.Zone{XMin: 75, XMax: 100, YMin: 35, YMax: 65}},
}

// PlayerBuilder creates test players with a builder pattern
type PlayerBuilder struct {
	number     int
	name       *string
	position   string
	zone       domain.Zone
	withPhases bool
}

// NewPlayerBuilder creates a midfielder with instructions for every phase
func NewPlayerBuilder() *PlayerBuilder {
	return &PlayerBuilder{
		number:     8,
		position:   "CM",
		zone:       domain.Zone{XMin: 40, XMax: 60, YMin: 30, YMax: 70},
		withPhases: true,
	}
}

func (b *PlayerBuilder) WithNumber(number int) *PlayerBuilder {
	b.number = number
	return b
}

func (b *PlayerBuilder) WithName(name string) *PlayerBuilder {
	b.name = &name
	return b
}

func (b *PlayerBuilder) WithPosition(position string) *PlayerBuilder {
	b.position = position
	return b
}

func (b *PlayerBuilder) WithZone(zone domain.Zone) *PlayerBuilder {
	b.zone = zone
	return b
}

// WithoutPhases leaves the phase map empty
func (b *PlayerBuilder) WithoutPhases() *PlayerBuilder {
	b.withPhases = false
	return b
}

// Build returns the player, failing the test on schema errors
func (b *PlayerBuilder) Build(t *testing.T) *domain.Player {
	t.Helper()

	player, err := domain.NewPlayer(b.number, b.position, b.zone)
	if err != nil {
		t.Fatalf("failed to build player %d: %v", b.number, err)
	}
	player.Name = b.name
	if b.withPhases {
		for _, phase := range domain.RequiredPhases {
			player.Phases[phase] = domain.PlayerPhase{
				Position:         b.position,
				Responsibilities: []string{phase + " duties"},
				MovementPatterns: []string{},
				KeyActions:       []string{},
			}
		}
	}
	return player
}

// PlanBuilder creates test plans with a builder pattern
type PlanBuilder struct {
	name             string
	formation        string
	players          []*PlayerBuilder
	pressingTriggers []string
	transitions      map[string]string
	zones            map[string]domain.Zone
}

// NewPlanBuilder defaults to "Press High", a 4-3-3 that passes every check
func NewPlanBuilder() *PlanBuilder {
	b := &PlanBuilder{
		name:             "Press High",
		formation:        "4-3-3",
		pressingTriggers: []string{"back pass to keeper", "heavy touch"},
		transitions: map[string]string{
			domain.TransitionAttackToDefense: "counter-press for six seconds",
			domain.TransitionDefenseToAttack: "play through the lines",
		},
		zones: map[string]domain.Zone{
			"high_press": {XMin: 60, XMax: 100, YMin: 0, YMax: 100},
		},
	}
	for _, seed := range pressHighRoster {
		b.players = append(b.players, NewPlayerBuilder().
			WithNumber(seed.number).
			WithPosition(seed.position).
			WithZone(seed.zone))
	}
	return b
}

func (b *PlanBuilder) WithName(name string) *PlanBuilder {
	b.name = name
	return b
}

func (b *PlanBuilder) WithFormation(formation string) *PlanBuilder {
	b.formation = formation
	return b
}

// WithPlayers replaces the whole roster
func (b *PlanBuilder) WithPlayers(players ...*PlayerBuilder) *PlanBuilder {
	b.players = players
	return b
}

// WithoutPlayers drops the given shirt numbers from the roster
func (b *PlanBuilder) WithoutPlayers(numbers ...int) *PlanBuilder {
	drop := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		drop[n] = true
	}
	kept := b.players[:0:0]
	for _, p := range b.players {
		if !drop[p.number] {
			kept = append(kept, p)
		}
	}
	b.players = kept
	return b
}

// WithPlayer applies fn to the roster entry wearing number
func (b *PlanBuilder) WithPlayer(number int, fn func(*PlayerBuilder)) *PlanBuilder {
	for _, p := range b.players {
		if p.number == number {
			fn(p)
		}
	}
	return b
}

func (b *PlanBuilder) WithPressingTriggers(triggers ...string) *PlanBuilder {
	b.pressingTriggers = triggers
	return b
}

func (b *PlanBuilder) WithTeamZone(name string, zone domain.Zone) *PlanBuilder {
	b.zones[name] = zone
	return b
}

// Build returns an unsaved plan
func (b *PlanBuilder) Build(t *testing.T) *domain.TacticalPlan {
	t.Helper()

	players := make([]*domain.Player, 0, len(b.players))
	for _, pb := range b.players {
		players = append(players, pb.Build(t))
	}

	plan, err := domain.NewPlan(b.name, b.formation, players)
	if err != nil {
		t.Fatalf("failed to build plan %q: %v", b.name, err)
	}
	plan.PressingTriggers = append([]string{}, b.pressingTriggers...)
	for k, v := range b.transitions {
		plan.TransitionInstructions[k] = v
	}
	for name, zone := range b.zones {
		z := zone
		plan.Zones[name] = &z
	}
	return plan
}

// Save builds the plan and stores it under its default filename
func (b *PlanBuilder) Save(t *testing.T, repo repository.PlanRepository) *domain.TacticalPlan {
	t.Helper()

	plan := b.Build(t)
	if _, err := repo.Save(context.Background(), plan, ""); err != nil {
		t.Fatalf("failed to save plan %q: %v", plan.Name, err)
	}
	return plan
}
