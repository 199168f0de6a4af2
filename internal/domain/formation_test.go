package domain_test

import (
	"testing"

	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/dom/touchline-tactician/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestExpectedRosterSize(t *testing.T) {
	for _, f := range domain.CanonicalFormations() {
		size, ok := domain.ExpectedRosterSize(f)
		assert.True(t, ok, f)
		assert.Equal(t, domain.StandardRosterSize, size, f)
	}
	assert.Len(t, domain.CanonicalFormations(), 7)

	_, ok := domain.ExpectedRosterSize("3-3-3")
	assert.False(t, ok)
}

func TestIsFormationSizeConsistent(t *testing.T) {
	tests := []struct {
		name      string
		formation string
		drop      []int
		want      bool
	}{
		{name: "canonical full roster", formation: "4-3-3", want: true},
		{name: "canonical short roster", formation: "4-3-3", drop: []int{10, 11}, want: false},
		{name: "other canonical short roster", formation: "4-4-2", drop: []int{9}, want: false},
		{name: "custom full roster", formation: "3-3-3", want: true},
		{name: "custom short roster", formation: "3-3-3", drop: []int{2, 3, 4}, want: true},
		{name: "custom without hyphen", formation: "diamond", drop: []int{9}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := testutil.NewPlanBuilder().
				WithFormation(tt.formation).
				WithoutPlayers(tt.drop...).
				Build(t)
			assert.Equal(t, tt.want, plan.IsFormationSizeConsistent())
		})
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		code   string
		want   domain.Position
		wantOK bool
	}{
		{code: "GK", want: domain.PositionGK, wantOK: true},
		{code: "cam", want: domain.PositionCAM, wantOK: true},
		{code: " st ", want: domain.PositionST, wantOK: true},
		{code: "GOALKEEPER", wantOK: false},
		{code: "SW", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, ok := domain.ParsePosition(tt.code)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}

	assert.True(t, domain.IsGoalkeeper("gk"))
	assert.True(t, domain.IsGoalkeeper("Goalkeeper"))
	assert.False(t, domain.IsGoalkeeper("CB"))
	assert.Equal(t, "Attacking Midfielder", domain.PositionCAM.DisplayName())
}
