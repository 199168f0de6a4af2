package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dom/touchline-tactician/internal/domain"
)

// FormatMarkdown prefixes content with a heading of the given level (1-6)
// when title is set.
func FormatMarkdown(content, title string, level int) string {
	if title == "" {
		return content
	}
	level = clamp(level, 1, 6)
	return strings.Repeat("#", level) + " " + title + "\n\n" + content
}

// MarkdownReport is the executive summary of a plan: shape, roster, phase
// instructions, pressing triggers and transitions.
func MarkdownReport(plan *domain.TacticalPlan) string {
	var b strings.Builder

	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&b, "- **Formation:** %s\n", orDash(plan.Formation))
	fmt.Fprintf(&b, "- **Players:** %d\n", len(plan.Players))
	if keepers := plan.Goalkeepers(); len(keepers) > 0 {
		fmt.Fprintf(&b, "- **Goalkeeper:** #%d %s\n", keepers[0].Number, keepers[0].DisplayName())
	}
	fmt.Fprintf(&b, "- **Pressing triggers:** %d\n\n", len(plan.PressingTriggers))

	b.WriteString("## Roster\n\n")
	b.WriteString("| # | Name | Position | Zone |\n|---|---|---|---|\n")
	players := sortedPlayers(plan)
	for _, p := range players {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", p.Number, orDash(p.DisplayName()), p.Position, zoneLabel(p.Zone))
	}
	b.WriteString("\n")

	b.WriteString("## Game Phases\n\n")
	for _, phase := range domain.RequiredPhases {
		fmt.Fprintf(&b, "### %s\n\n", titleCase(phase))
		wrote := false
		for _, p := range players {
			instr, ok := p.Phases[phase]
			if !ok {
				continue
			}
			wrote = true
			fmt.Fprintf(&b, "- **#%d %s**", p.Number, instr.Position)
			if len(instr.Responsibilities) > 0 {
				fmt.Fprintf(&b, ": %s", strings.Join(instr.Responsibilities, "; "))
			}
			b.WriteString("\n")
			for _, action := range instr.KeyActions {
				fmt.Fprintf(&b, "  - %s\n", action)
			}
		}
		if !wrote {
			b.WriteString("_No instructions._\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## Pressing Triggers\n\n")
	if len(plan.PressingTriggers) == 0 {
		b.WriteString("_None defined._\n")
	}
	for _, t := range plan.PressingTriggers {
		fmt.Fprintf(&b, "- %s\n", t)
	}
	b.WriteString("\n")

	b.WriteString("## Transitions\n\n")
	if len(plan.TransitionInstructions) == 0 {
		b.WriteString("_None defined._\n")
	}
	for _, k := range sortedKeys(plan.TransitionInstructions) {
		fmt.Fprintf(&b, "- **%s:** %s\n", k, plan.TransitionInstructions[k])
	}

	if len(plan.Zones) > 0 {
		b.WriteString("\n## Team Zones\n\n")
		names := make([]string, 0, len(plan.Zones))
		for name := range plan.Zones {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "- **%s:** %s\n", name, zoneLabel(plan.Zones[name]))
		}
	}

	return FormatMarkdown(strings.TrimRight(b.String(), "\n"), plan.Name, 1)
}

// PlayerReport covers a single player's zone and phase instructions.
func PlayerReport(plan *domain.TacticalPlan, number int) (string, error) {
	p, ok := plan.GetPlayerByNumber(number)
	if !ok {
		return "", fmt.Errorf("%w: number %d", domain.ErrPlayerNotFound, number)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "- **Position:** %s\n", p.Position)
	fmt.Fprintf(&b, "- **Zone:** %s\n", zoneLabel(p.Zone))
	for _, k := range sortedKeys(p.Responsibilities) {
		fmt.Fprintf(&b, "- **%s:** %s\n", k, p.Responsibilities[k])
	}

	for _, phase := range domain.RequiredPhases {
		fmt.Fprintf(&b, "\n### %s\n\n", titleCase(phase))
		instr, ok := p.Phases[phase]
		if !ok {
			b.WriteString("_No instructions._\n")
			continue
		}
		writeList(&b, "Responsibilities", instr.Responsibilities)
		writeList(&b, "Movement", instr.MovementPatterns)
		writeList(&b, "Key actions", instr.KeyActions)
	}

	title := fmt.Sprintf("#%d %s (%s)", p.Number, orDash(p.DisplayName()), plan.Name)
	return FormatMarkdown(strings.TrimRight(b.String(), "\n"), title, 2), nil
}

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s**\n\n", label)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

func zoneLabel(z *domain.Zone) string {
	if z == nil {
		return "-"
	}
	return fmt.Sprintf("x %g-%g, y %g-%g", z.XMin, z.XMax, z.YMin, z.YMax)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
