package render_test

import (
	"strings"
	"testing"

	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/dom/touchline-tactician/internal/render"
	"github.com/dom/touchline-tactician/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestASCIIBoard(t *testing.T) {
	plan := testutil.NewPlanBuilder().Build(t)

	board := render.ASCIIBoard(plan, 80, 30)
	lines := strings.Split(board, "\n")

	assert.Equal(t, "Formation: 4-3-3", lines[0])
	assert.Equal(t, "Plan: Press High", lines[1])
	assert.Equal(t, " "+strings.Repeat("-", 80), lines[3])
	assert.Equal(t, " "+strings.Repeat("-", 80), lines[3+29])

	// Keeper zone centre (5, 50) lands at column 4, row 15.
	assert.Equal(t, byte('1'), lines[3+15][1+4])

	legend := lines[len(lines)-11:]
	assert.Equal(t, "   1: GK", legend[0])
	assert.Equal(t, "  11: LW", legend[10])
}

func TestASCIIBoard_Clamps(t *testing.T) {
	plan := testutil.NewPlanBuilder().Build(t)
	plan.Players[0].Zone = nil

	board := render.ASCIIBoard(plan, 5, 2)
	assert.Contains(t, board, " "+strings.Repeat("-", 20))
	assert.Contains(t, board, "   1: GK (no zone)")
}

func TestBoards_DefaultSize(t *testing.T) {
	plan := testutil.NewPlanBuilder().Build(t)

	board := render.ASCIIBoard(plan, 0, 0)
	assert.Contains(t, board, " "+strings.Repeat("-", render.DefaultASCIIWidth)+"\n")

	svg := render.SVGBoard(plan, 0, 0)
	assert.Contains(t, svg, `<svg width="800" height="600"`)
}

func TestBoards_MaximumSize(t *testing.T) {
	plan := testutil.NewPlanBuilder().Build(t)

	board := render.ASCIIBoard(plan, 100000, 100000)
	assert.Contains(t, board, " "+strings.Repeat("-", render.MaxASCIIWidth)+"\n")
	assert.NotContains(t, board, strings.Repeat("-", render.MaxASCIIWidth+1))
	assert.Less(t, len(board), 2*render.MaxASCIIWidth*render.MaxASCIIHeight)

	svg := render.SVGBoard(plan, 100000, 100000)
	assert.Contains(t, svg, `<svg width="4000" height="3000"`)

	page := render.HTMLBoard(plan, 100000, 100000)
	assert.Contains(t, page, "max-width: 4040px")
}

func TestSVGBoard(t *testing.T) {
	plan := testutil.NewPlanBuilder().WithName(`Press <High> & "Fast"`).Build(t)

	svg := render.SVGBoard(plan, 800, 600)
	assert.True(t, strings.HasPrefix(svg, `<svg width="800" height="600"`))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, "Press &lt;High&gt; &amp; &#34;Fast&#34;")
	assert.Equal(t, 11, strings.Count(svg, `class="player-circle"`))
	assert.Contains(t, svg, `>9: ST</text>`)

	page := render.HTMLBoard(plan, 800, 600)
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, svg)
	assert.Contains(t, page, "<title>Press &lt;High&gt; &amp; &#34;Fast&#34; - Tactical Board</title>")
}

func TestMarkdownReport(t *testing.T) {
	plan := testutil.NewPlanBuilder().
		WithPlayer(9, func(p *testutil.PlayerBuilder) { p.WithName("Nine") }).
		Build(t)

	report := render.MarkdownReport(plan)
	assert.True(t, strings.HasPrefix(report, "# Press High\n\n## Executive Summary"))
	assert.Contains(t, report, "- **Formation:** 4-3-3")
	assert.Contains(t, report, "| 9 | Nine | ST | x 75-100, y 35-65 |")
	assert.Contains(t, report, "### Transition")
	assert.Contains(t, report, "- back pass to keeper")
	assert.Contains(t, report, "- **"+domain.TransitionAttackToDefense+":** counter-press for six seconds")
	assert.Contains(t, report, "- **high_press:** x 60-100, y 0-100")
}

func TestPlayerReport(t *testing.T) {
	plan := testutil.NewPlanBuilder().Build(t)

	report, err := render.PlayerReport(plan, 6)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(report, "## #6 - (Press High)"))
	assert.Contains(t, report, "- **Position:** CDM")
	assert.Contains(t, report, "- defense duties")

	_, err = render.PlayerReport(plan, 42)
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestFormatMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		content string
		title   string
		level   int
		want    string
	}{
		{name: "no title", content: "body", want: "body"},
		{name: "level two", content: "body", title: "T", level: 2, want: "## T\n\nbody"},
		{name: "level clamped low", content: "body", title: "T", level: 0, want: "# T\n\nbody"},
		{name: "level clamped high", content: "body", title: "T", level: 9, want: "###### T\n\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render.FormatMarkdown(tt.content, tt.title, tt.level))
		})
	}
}
