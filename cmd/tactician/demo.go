package main

import (
	"fmt"
	"os"

	"github.com/dom/touchline-tactician/internal/domain"
	"gopkg.in/yaml.v3"
)

type demoSeat struct {
	number   int
	name     string
	position string
	zone     domain.Zone
	duties   [3]string // attack, defense, transition
}

var gegenpressRoster = []demoSeat{
	{1, "Keeper", "GK", domain.Zone{XMin: 0, XMax: 12, YMin: 30, YMax: 70},
		[3]string{"start build-up short", "sweep behind the high line", "distribute fast to the full-backs"}},
	{2, "Right Back", "RB", domain.Zone{XMin: 15, XMax: 65, YMin: 0, YMax: 25},
		[3]string{"overlap the winger", "tuck in when the ball is far side", "recover the wide channel"}},
	{4, "Right Centre Back", "CB", domain.Zone{XMin: 10, XMax: 40, YMin: 25, YMax: 50},
		[3]string{"split wide in build-up", "hold the line at halfway", "step into the free man"}},
	{5, "Left Centre Back", "CB", domain.Zone{XMin: 10, XMax: 40, YMin: 50, YMax: 75},
		[3]string{"carry into midfield when free", "cover the left channel", "stay goal side of the striker"}},
	{3, "Left Back", "LB", domain.Zone{XMin: 15, XMax: 65, YMin: 75, YMax: 100},
		[3]string{"underlap into the half space", "press the winger on the touchline", "recover the wide channel"}},
	{6, "Anchor", "CDM", domain.Zone{XMin: 30, XMax: 55, YMin: 30, YMax: 70},
		[3]string{"offer the line-breaking angle", "screen the back four", "counter-press the ball carrier"}},
	{8, "Right Eight", "CM", domain.Zone{XMin: 40, XMax: 75, YMin: 15, YMax: 50},
		[3]string{"arrive late in the box", "jump to the opposing pivot", "sprint to close the passing lane"}},
	{10, "Left Eight", "CM", domain.Zone{XMin: 40, XMax: 75, YMin: 50, YMax: 85},
		[3]string{"receive between the lines", "shadow the deep midfielder", "sprint to close the passing lane"}},
	{7, "Right Winger", "RW", domain.Zone{XMin: 65, XMax: 95, YMin: 0, YMax: 30},
		[3]string{"stretch the last line", "curve the press onto the centre back", "attack the space behind"}},
	{11, "Left Winger", "LW", domain.Zone{XMin: 65, XMax: 95, YMin: 70, YMax: 100},
		[3]string{"isolate the full-back", "curve the press onto the centre back", "attack the space behind"}},
	{9, "Nine", "ST", domain.Zone{XMin: 75, XMax: 100, YMin: 35, YMax: 65},
		[3]string{"pin both centre backs", "press the keeper on back passes", "first runner in behind"}},
}

// demoPlan is a complete 4-3-3 that passes every check.
func demoPlan() (*domain.TacticalPlan, error) {
	players := make([]*domain.Player, 0, len(gegenpressRoster))
	for _, seat := range gegenpressRoster {
		p, err := domain.NewPlayer(seat.number, seat.position, seat.zone)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", seat.number, err)
		}
		name := seat.name
		p.Name = &name
		for i, phase := range domain.RequiredPhases {
			p.Phases[phase] = domain.PlayerPhase{
				Position:         seat.position,
				Responsibilities: []string{seat.duties[i]},
				MovementPatterns: []string{},
				KeyActions:       []string{},
			}
		}
		players = append(players, p)
	}

	plan, err := domain.NewPlan("Gegenpress", "4-3-3", players)
	if err != nil {
		return nil, err
	}
	plan.PressingTriggers = []string{"back pass to keeper", "heavy touch", "pass into the full-back"}
	plan.TransitionInstructions = map[string]string{
		domain.TransitionAttackToDefense: "counter-press for six seconds",
		domain.TransitionDefenseToAttack: "first pass forward into the channels",
	}
	plan.Zones = map[string]*domain.Zone{
		"press_line": {XMin: 55, XMax: 100, YMin: 0, YMax: 100},
	}
	return plan, nil
}

// loadPlanFile reads a JSON or YAML plan document into a mapping. JSON is
// valid YAML, so one decoder handles both.
func loadPlanFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("parse %s: document is empty", path)
	}
	return fields, nil
}
