package render

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/dom/touchline-tactician/internal/domain"
)

const (
	DefaultSVGWidth  = 800
	DefaultSVGHeight = 600
	minSVGWidth      = 200
	minSVGHeight     = 200
	MaxSVGWidth      = 4000
	MaxSVGHeight     = 3000

	fieldMargin    = 20
	fieldTop       = 60
	legendReserve  = 100
	playerRadius   = 18
	legendPerRow   = 6
	legendColWidth = 100
)

const svgStyle = `  <defs>
    <style>
      .field { fill: #2d5016; stroke: #ffffff; stroke-width: 2; }
      .line { stroke: #ffffff; stroke-width: 2; fill: none; }
      .player-circle { fill: #1a4d00; stroke: #ffffff; stroke-width: 2; }
      .player-text { fill: #ffffff; font-family: Arial, sans-serif; font-weight: bold; font-size: 14px; text-anchor: middle; dominant-baseline: central; }
      .title { fill: #000000; font-family: Arial, sans-serif; font-size: 20px; font-weight: bold; }
      .subtitle { fill: #333333; font-family: Arial, sans-serif; font-size: 14px; }
      .legend-text { fill: #000000; font-family: Arial, sans-serif; font-size: 12px; }
    </style>
  </defs>
`

// SVGBoard renders the plan as a standalone SVG document.
func SVGBoard(plan *domain.TacticalPlan, width, height int) string {
	width, height = svgSize(width, height)

	fw := float64(width - 2*fieldMargin)
	fh := float64(height - legendReserve)
	fx := float64(fieldMargin)
	fy := float64(fieldTop)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n", width, height)
	b.WriteString(svgStyle)
	fmt.Fprintf(&b, `  <text x="%d" y="25" class="title" text-anchor="middle">%s</text>`+"\n", width/2, html.EscapeString(plan.Name))
	fmt.Fprintf(&b, `  <text x="%d" y="45" class="subtitle" text-anchor="middle">Formation: %s</text>`+"\n", width/2, html.EscapeString(plan.Formation))

	// Pitch markings.
	fmt.Fprintf(&b, `  <rect x="%g" y="%g" width="%g" height="%g" class="field" rx="5"/>`+"\n", fx, fy, fw, fh)
	fmt.Fprintf(&b, `  <line x1="%g" y1="%g" x2="%g" y2="%g" class="line"/>`+"\n", fx+fw/2, fy, fx+fw/2, fy+fh)
	fmt.Fprintf(&b, `  <circle cx="%g" cy="%g" r="%g" class="line"/>`+"\n", fx+fw/2, fy+fh/2, min(fw, fh)/8)
	for _, box := range []struct{ w, h float64 }{{fw / 6, fh / 3}, {fw / 12, fh / 5}} {
		top := fy + (fh-box.h)/2
		fmt.Fprintf(&b, `  <rect x="%g" y="%g" width="%g" height="%g" class="line"/>`+"\n", fx, top, box.w, box.h)
		fmt.Fprintf(&b, `  <rect x="%g" y="%g" width="%g" height="%g" class="line"/>`+"\n", fx+fw-box.w, top, box.w, box.h)
	}

	players := sortedPlayers(plan)
	for _, p := range players {
		if p.Zone == nil {
			continue
		}
		cx, cy := p.Zone.Center()
		x := fx + cx*fw/100
		y := fy + cy*fh/100
		fmt.Fprintf(&b, `  <circle cx="%.1f" cy="%.1f" r="%d" class="player-circle"/>`+"\n", x, y, playerRadius)
		fmt.Fprintf(&b, `  <text x="%.1f" y="%.1f" class="player-text">%d</text>`+"\n", x, y, p.Number)
	}

	legendY := int(fy+fh) + 20
	fmt.Fprintf(&b, `  <text x="%d" y="%d" class="legend-text">Players:</text>`+"\n", fieldMargin, legendY)
	legendY += 15
	for i, p := range players {
		if i > 0 && i%legendPerRow == 0 {
			legendY += 15
		}
		x := fieldMargin + (i%legendPerRow)*legendColWidth
		fmt.Fprintf(&b, `  <text x="%d" y="%d" class="legend-text">%d: %s</text>`+"\n", x, legendY, p.Number, html.EscapeString(p.Position))
	}

	b.WriteString("</svg>")
	return b.String()
}

func svgSize(width, height int) (int, int) {
	return boardSize(width, DefaultSVGWidth, minSVGWidth, MaxSVGWidth),
		boardSize(height, DefaultSVGHeight, minSVGHeight, MaxSVGHeight)
}

// HTMLBoard wraps SVGBoard in a minimal standalone page.
func HTMLBoard(plan *domain.TacticalPlan, width, height int) string {
	svg := SVGBoard(plan, width, height)
	width, _ = svgSize(width, height)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("  <meta charset=\"UTF-8\">\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&b, "  <title>%s - Tactical Board</title>\n", html.EscapeString(plan.Name))
	b.WriteString("  <style>\n")
	b.WriteString("    body { font-family: Arial, sans-serif; margin: 20px; background-color: #f5f5f5; }\n")
	fmt.Fprintf(&b, "    .container { max-width: %dpx; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px; }\n", width+40)
	b.WriteString("    .svg-container { text-align: center; margin: 20px 0; }\n")
	b.WriteString("  </style>\n</head>\n<body>\n")
	b.WriteString("  <div class=\"container\">\n    <div class=\"svg-container\">\n")
	b.WriteString(svg)
	b.WriteString("\n    </div>\n  </div>\n</body>\n</html>\n")
	return b.String()
}

func sortedPlayers(plan *domain.TacticalPlan) []*domain.Player {
	players := make([]*domain.Player, 0, len(plan.Players))
	for _, p := range plan.Players {
		if p != nil {
			players = append(players, p)
		}
	}
	sort.SliceStable(players, func(i, j int) bool { return players[i].Number < players[j].Number })
	return players
}
