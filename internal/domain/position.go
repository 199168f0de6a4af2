package domain

import "strings"

// Position is a recognised player position code.
type Position string

const (
	PositionGK  Position = "GK"
	PositionCB  Position = "CB"
	PositionLB  Position = "LB"
	PositionRB  Position = "RB"
	PositionLWB Position = "LWB"
	PositionRWB Position = "RWB"
	PositionCDM Position = "CDM"
	PositionCM  Position = "CM"
	PositionCAM Position = "CAM"
	PositionLM  Position = "LM"
	PositionRM  Position = "RM"
	PositionLW  Position = "LW"
	PositionRW  Position = "RW"
	PositionST  Position = "ST"
	PositionCF  Position = "CF"
)

// AllPositions contains the recognised position vocabulary, back to front.
var AllPositions = []Position{
	PositionGK,
	PositionCB, PositionLB, PositionRB, PositionLWB, PositionRWB,
	PositionCDM, PositionCM, PositionCAM, PositionLM, PositionRM,
	PositionLW, PositionRW, PositionST, PositionCF,
}

// goalkeeperCodes are the position codes that mark a player as the keeper.
// "GOALKEEPER" is accepted here even though it is not in AllPositions.
var goalkeeperCodes = map[string]bool{
	"GK":         true,
	"GOALKEEPER": true,
}

// ParsePosition matches a position code case-insensitively.
func ParsePosition(code string) (Position, bool) {
	p := Position(strings.ToUpper(strings.TrimSpace(code)))
	return p, p.IsValid()
}

// IsValid checks if a position is in the recognised vocabulary
func (p Position) IsValid() bool {
	switch p {
	case PositionGK, PositionCB, PositionLB, PositionRB, PositionLWB, PositionRWB,
		PositionCDM, PositionCM, PositionCAM, PositionLM, PositionRM,
		PositionLW, PositionRW, PositionST, PositionCF:
		return true
	}
	return false
}

func (p Position) String() string {
	return string(p)
}

// DisplayName returns a coach-friendly name for the position
func (p Position) DisplayName() string {
	switch p {
	case PositionGK:
		return "Goalkeeper"
	case PositionCB:
		return "Centre Back"
	case PositionLB:
		return "Left Back"
	case PositionRB:
		return "Right Back"
	case PositionLWB:
		return "Left Wing Back"
	case PositionRWB:
		return "Right Wing Back"
	case PositionCDM:
		return "Defensive Midfielder"
	case PositionCM:
		return "Central Midfielder"
	case PositionCAM:
		return "Attacking Midfielder"
	case PositionLM:
		return "Left Midfielder"
	case PositionRM:
		return "Right Midfielder"
	case PositionLW:
		return "Left Winger"
	case PositionRW:
		return "Right Winger"
	case PositionST:
		return "Striker"
	case PositionCF:
		return "Centre Forward"
	default:
		return string(p)
	}
}

// IsGoalkeeper reports whether a raw position code denotes a goalkeeper.
func IsGoalkeeper(code string) bool {
	return goalkeeperCodes[strings.ToUpper(strings.TrimSpace(code))]
}
