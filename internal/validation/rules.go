package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dom/touchline-tactician/internal/domain"
)

type rule struct {
	issues    func(*domain.TacticalPlan) []string
	okMessage string
}

var rules = map[Check]rule{
	CheckFormation:   {issues: formationIssues, okMessage: "Formation is valid"},
	CheckPositions:   {issues: positionIssues, okMessage: "Player positions are valid"},
	CheckZones:       {issues: zoneIssues, okMessage: "Zones are valid"},
	CheckConsistency: {issues: consistencyIssues, okMessage: "Tactical plan is consistent"},
}

func formationIssues(plan *domain.TacticalPlan) []string {
	var issues []string

	if plan.Formation == "" || !strings.Contains(plan.Formation, "-") {
		issues = append(issues, fmt.Sprintf("Formation must be in format like '4-3-3' (got %q)", plan.Formation))
	}

	if !plan.IsFormationSizeConsistent() {
		expected, _ := domain.ExpectedRosterSize(plan.Formation)
		issues = append(issues, fmt.Sprintf(
			"Number of players (%d) doesn't match expected for formation %s (expected %d)",
			len(plan.Players), plan.Formation, expected,
		))
	}

	switch keepers := len(plan.Goalkeepers()); {
	case keepers == 0:
		issues = append(issues, "Team must have a goalkeeper (GK)")
	case keepers > 1:
		issues = append(issues, fmt.Sprintf("Team must have exactly one goalkeeper, found %d", keepers))
	}

	return issues
}

func positionIssues(plan *domain.TacticalPlan) []string {
	var issues []string

	counts := make(map[int]int, len(plan.Players))
	for i, player := range plan.Players {
		if player == nil {
			issues = append(issues, fmt.Sprintf("Roster entry %d is empty", i))
			continue
		}
		if _, ok := domain.ParsePosition(player.Position); !ok {
			issues = append(issues, fmt.Sprintf("Player %d has invalid position: %s", player.Number, player.Position))
		}
		counts[player.Number]++
	}

	var duplicated []int
	for number, count := range counts {
		if count > 1 {
			duplicated = append(duplicated, number)
		}
	}
	sort.Ints(duplicated)
	for _, number := range duplicated {
		issues = append(issues, fmt.Sprintf("Duplicate player number: %d (%d players)", number, counts[number]))
	}

	return issues
}

func zoneIssues(plan *domain.TacticalPlan) []string {
	var issues []string

	for _, player := range plan.Players {
		if player == nil {
			continue
		}
		if player.Zone == nil {
			issues = append(issues, fmt.Sprintf("Player %d is missing a zone", player.Number))
			continue
		}
		if problem := zoneProblem(*player.Zone); problem != "" {
			issues = append(issues, fmt.Sprintf("Player %d zone %s", player.Number, problem))
		}
	}

	names := make([]string, 0, len(plan.Zones))
	for name := range plan.Zones {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		zone := plan.Zones[name]
		if zone == nil {
			issues = append(issues, fmt.Sprintf("Team zone %q is missing its bounds", name))
			continue
		}
		if problem := zoneProblem(*zone); problem != "" {
			issues = append(issues, fmt.Sprintf("Team zone %q %s", name, problem))
		}
	}

	return issues
}

func zoneProblem(z domain.Zone) string {
	if !z.InBounds() {
		return "is out of bounds"
	}
	if !z.Ordered() {
		return "has empty or inverted bounds"
	}
	return ""
}

func consistencyIssues(plan *domain.TacticalPlan) []string {
	var issues []string

	for _, player := range plan.Players {
		if player == nil {
			continue
		}
		if len(player.Phases) == 0 {
			issues = append(issues, fmt.Sprintf("Player %d missing phase instructions", player.Number))
			continue
		}
		for _, phase := range domain.RequiredPhases {
			if !player.HasPhase(phase) {
				issues = append(issues, fmt.Sprintf("Player %d missing %s phase instructions", player.Number, phase))
			}
		}
	}

	if !hasTrigger(plan.PressingTriggers) {
		issues = append(issues, "No pressing triggers defined")
	}

	return issues
}

func hasTrigger(triggers []string) bool {
	for _, t := range triggers {
		if strings.TrimSpace(t) != "" {
			return true
		}
	}
	return false
}
