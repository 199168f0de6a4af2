package domain

// Recognised game phases.
const (
	PhaseAttack     = "attack"
	PhaseDefense    = "defense"
	PhaseTransition = "transition"
)

// RequiredPhases lists the phases every player needs instructions for.
var RequiredPhases = []string{PhaseAttack, PhaseDefense, PhaseTransition}

// PlayerPhase holds a player's directives for a single game phase.
type PlayerPhase struct {
	Position         string   `json:"position" validate:"required"`
	Responsibilities []string `json:"responsibilities"`
	MovementPatterns []string `json:"movement_patterns"`
	KeyActions       []string `json:"key_actions"`
}

type Player struct {
	Number           int                    `json:"number" validate:"min=1,max=99"`
	Name             *string                `json:"name"`
	Position         string                 `json:"position" validate:"required"`
	Zone             *Zone                  `json:"zone" validate:"required"`
	Responsibilities map[string]string      `json:"responsibilities"`
	Phases           map[string]PlayerPhase `json:"phases" validate:"dive"`
}

// NewPlayer builds a player with empty responsibility and phase maps.
func NewPlayer(number int, position string, zone Zone) (*Player, error) {
	p := &Player{
		Number:   number,
		Position: position,
		Zone:     &zone,
	}
	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Player) Validate() error {
	return checkSchema("player", p)
}

// DisplayName returns the player's name, or an empty string when unnamed.
func (p *Player) DisplayName() string {
	if p.Name == nil {
		return ""
	}
	return *p.Name
}

// HasPhase reports whether the player has instructions for phase.
func (p *Player) HasPhase(phase string) bool {
	_, ok := p.Phases[phase]
	return ok
}

func (p *Player) applyDefaults() {
	if p.Responsibilities == nil {
		p.Responsibilities = map[string]string{}
	}
	if p.Phases == nil {
		p.Phases = map[string]PlayerPhase{}
	}
	for name, phase := range p.Phases {
		phase.applyDefaults()
		p.Phases[name] = phase
	}
}

func (ph *PlayerPhase) applyDefaults() {
	if ph.Responsibilities == nil {
		ph.Responsibilities = []string{}
	}
	if ph.MovementPatterns == nil {
		ph.MovementPatterns = []string{}
	}
	if ph.KeyActions == nil {
		ph.KeyActions = []string{}
	}
}

func (p *Player) clone() *Player {
	if p == nil {
		return nil
	}
	c := *p
	if p.Name != nil {
		name := *p.Name
		c.Name = &name
	}
	if p.Zone != nil {
		zone := *p.Zone
		c.Zone = &zone
	}
	if p.Responsibilities != nil {
		c.Responsibilities = make(map[string]string, len(p.Responsibilities))
		for k, v := range p.Responsibilities {
			c.Responsibilities[k] = v
		}
	}
	if p.Phases != nil {
		c.Phases = make(map[string]PlayerPhase, len(p.Phases))
		for k, v := range p.Phases {
			c.Phases[k] = v.clone()
		}
	}
	return &c
}

func (ph PlayerPhase) clone() PlayerPhase {
	return PlayerPhase{
		Position:         ph.Position,
		Responsibilities: cloneStrings(ph.Responsibilities),
		MovementPatterns: cloneStrings(ph.MovementPatterns),
		KeyActions:       cloneStrings(ph.KeyActions),
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
