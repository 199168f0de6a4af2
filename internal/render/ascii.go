// Package render draws tactical plans as text boards, SVG/HTML boards and
// markdown reports.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dom/touchline-tactician/internal/domain"
)

// Board size limits in characters.
const (
	DefaultASCIIWidth  = 80
	DefaultASCIIHeight = 30
	minASCIIWidth      = 20
	minASCIIHeight     = 8
	MaxASCIIWidth      = 400
	MaxASCIIHeight     = 200
)

type marker struct {
	number   int
	position string
	x, y     int
	placed   bool
}

// ASCIIBoard draws the pitch as a character grid with each player's jersey
// number at the centre of their zone, followed by a legend.
func ASCIIBoard(plan *domain.TacticalPlan, width, height int) string {
	width = boardSize(width, DefaultASCIIWidth, minASCIIWidth, MaxASCIIWidth)
	height = boardSize(height, DefaultASCIIHeight, minASCIIHeight, MaxASCIIHeight)

	grid := make([][]byte, height)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(" ", width))
		grid[y][0] = '|'
		grid[y][width-1] = '|'
	}
	for x := 0; x < width; x++ {
		grid[0][x] = '-'
		grid[height-1][x] = '-'
	}
	centerX := width / 2
	for y := 1; y < height-1; y++ {
		grid[y][centerX] = '|'
	}

	markers := make([]marker, 0, len(plan.Players))
	for _, p := range plan.Players {
		if p == nil {
			continue
		}
		m := marker{number: p.Number, position: p.Position}
		if p.Zone != nil {
			cx, cy := p.Zone.Center()
			m.x = clamp(int(cx*float64(width)/100), 1, width-2)
			m.y = clamp(int(cy*float64(height)/100), 1, height-2)
			m.placed = true

			label := strconv.Itoa(p.Number)
			for i := 0; i < len(label) && m.x+i < width-1; i++ {
				grid[m.y][m.x+i] = label[i]
			}
		}
		markers = append(markers, m)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Formation: %s\n", plan.Formation)
	fmt.Fprintf(&b, "Plan: %s\n\n", plan.Name)
	for _, row := range grid {
		b.WriteByte(' ')
		b.Write(row)
		b.WriteByte('\n')
	}
	b.WriteString("\nPlayers:\n")

	sort.SliceStable(markers, func(i, j int) bool { return markers[i].number < markers[j].number })
	for _, m := range markers {
		suffix := ""
		if !m.placed {
			suffix = " (no zone)"
		}
		fmt.Fprintf(&b, "  %2d: %s%s\n", m.number, m.position, suffix)
	}
	return strings.TrimRight(b.String(), "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// boardSize substitutes def for an unset size and clamps the rest to [lo, hi].
func boardSize(v, def, lo, hi int) int {
	switch {
	case v <= 0:
		return def
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
