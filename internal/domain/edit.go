package domain

import (
	"fmt"
	"strings"
)

// EditOp names a single plan mutation.
type EditOp string

const (
	EditRename              EditOp = "rename"
	EditSetFormation        EditOp = "set_formation"
	EditAddPlayer           EditOp = "add_player"
	EditRemovePlayer        EditOp = "remove_player"
	EditMovePlayer          EditOp = "move_player"
	EditSetPosition         EditOp = "set_position"
	EditRenumberPlayer      EditOp = "renumber_player"
	EditSetPhase            EditOp = "set_phase"
	EditSetPressingTriggers EditOp = "set_pressing_triggers"
	EditSetTransition       EditOp = "set_transition"
	EditSetTeamZone         EditOp = "set_team_zone"
)

// Edit is one change to apply to a plan. Which fields are read depends on Op.
type Edit struct {
	Op           EditOp       `json:"op"`
	Number       int          `json:"number,omitempty"`
	NewNumber    int          `json:"new_number,omitempty"`
	Name         string       `json:"name,omitempty"`
	Formation    string       `json:"formation,omitempty"`
	Position     string       `json:"position,omitempty"`
	Zone         *Zone        `json:"zone,omitempty"`
	Phase        string       `json:"phase,omitempty"`
	Instructions *PlayerPhase `json:"instructions,omitempty"`
	Player       *Player      `json:"player,omitempty"`
	Triggers     []string     `json:"triggers,omitempty"`
	Key          string       `json:"key,omitempty"`
	Value        string       `json:"value,omitempty"`
}

// Apply runs edits in order and stops at the first one that fails. The plan
// identifier is never touched. Roster-wide rules are not checked here.
func (p *TacticalPlan) Apply(edits ...Edit) error {
	for i, e := range edits {
		if err := p.applyEdit(e); err != nil {
			return fmt.Errorf("edit %d (%s): %w", i, e.Op, err)
		}
	}
	return nil
}

func (p *TacticalPlan) applyEdit(e Edit) error {
	switch e.Op {
	case EditRename:
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("%w: name is required", ErrInvalidEdit)
		}
		p.Name = e.Name

	case EditSetFormation:
		if strings.TrimSpace(e.Formation) == "" {
			return fmt.Errorf("%w: formation is required", ErrInvalidEdit)
		}
		p.Formation = strings.TrimSpace(e.Formation)

	case EditAddPlayer:
		if e.Player == nil {
			return fmt.Errorf("%w: player is required", ErrInvalidEdit)
		}
		player := e.Player.clone()
		player.applyDefaults()
		if err := player.Validate(); err != nil {
			return err
		}
		p.Players = append(p.Players, player)

	case EditRemovePlayer:
		for i, player := range p.Players {
			if player != nil && player.Number == e.Number {
				p.Players = append(p.Players[:i], p.Players[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: number %d", ErrPlayerNotFound, e.Number)

	case EditMovePlayer:
		player, err := p.mustPlayer(e.Number)
		if err != nil {
			return err
		}
		if e.Zone == nil {
			return fmt.Errorf("%w: zone is required", ErrInvalidEdit)
		}
		zone, err := NewZone(e.Zone.XMin, e.Zone.XMax, e.Zone.YMin, e.Zone.YMax)
		if err != nil {
			return err
		}
		player.Zone = &zone

	case EditSetPosition:
		player, err := p.mustPlayer(e.Number)
		if err != nil {
			return err
		}
		if strings.TrimSpace(e.Position) == "" {
			return fmt.Errorf("%w: position is required", ErrInvalidEdit)
		}
		player.Position = strings.TrimSpace(e.Position)

	case EditRenumberPlayer:
		player, err := p.mustPlayer(e.Number)
		if err != nil {
			return err
		}
		if e.NewNumber < 1 || e.NewNumber > 99 {
			return &SchemaViolation{
				Subject: "player",
				Violations: []FieldViolation{{
					Field:   "number",
					Message: fmt.Sprintf("must be between 1 and 99 (got %d)", e.NewNumber),
				}},
			}
		}
		player.Number = e.NewNumber

	case EditSetPhase:
		player, err := p.mustPlayer(e.Number)
		if err != nil {
			return err
		}
		if strings.TrimSpace(e.Phase) == "" || e.Instructions == nil {
			return fmt.Errorf("%w: phase and instructions are required", ErrInvalidEdit)
		}
		phase := e.Instructions.clone()
		if phase.Position == "" {
			phase.Position = player.Position
		}
		phase.applyDefaults()
		if player.Phases == nil {
			player.Phases = map[string]PlayerPhase{}
		}
		player.Phases[strings.ToLower(strings.TrimSpace(e.Phase))] = phase

	case EditSetPressingTriggers:
		p.PressingTriggers = cloneStrings(e.Triggers)
		if p.PressingTriggers == nil {
			p.PressingTriggers = []string{}
		}

	case EditSetTransition:
		if strings.TrimSpace(e.Key) == "" {
			return fmt.Errorf("%w: key is required", ErrInvalidEdit)
		}
		if p.TransitionInstructions == nil {
			p.TransitionInstructions = map[string]string{}
		}
		if e.Value == "" {
			delete(p.TransitionInstructions, e.Key)
			return nil
		}
		p.TransitionInstructions[e.Key] = e.Value

	case EditSetTeamZone:
		if strings.TrimSpace(e.Key) == "" {
			return fmt.Errorf("%w: key is required", ErrInvalidEdit)
		}
		if p.Zones == nil {
			p.Zones = map[string]*Zone{}
		}
		if e.Zone == nil {
			delete(p.Zones, e.Key)
			return nil
		}
		zone, err := NewZone(e.Zone.XMin, e.Zone.XMax, e.Zone.YMin, e.Zone.YMax)
		if err != nil {
			return err
		}
		p.Zones[e.Key] = &zone

	default:
		return fmt.Errorf("%w: %q", ErrUnknownEdit, e.Op)
	}
	return nil
}

func (p *TacticalPlan) mustPlayer(number int) (*Player, error) {
	player, ok := p.GetPlayerByNumber(number)
	if !ok {
		return nil, fmt.Errorf("%w: number %d", ErrPlayerNotFound, number)
	}
	return player, nil
}
