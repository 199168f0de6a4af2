package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/dom/touchline-tactician/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayer(t *testing.T) {
	zone := domain.Zone{XMin: 10, XMax: 20, YMin: 10, YMax: 20}

	tests := []struct {
		name     string
		number   int
		position string
		wantErr  bool
	}{
		{name: "valid", number: 7, position: "RW"},
		{name: "lowest number", number: 1, position: "GK"},
		{name: "highest number", number: 99, position: "ST"},
		{name: "zero number", number: 0, position: "CM", wantErr: true},
		{name: "number too high", number: 100, position: "CM", wantErr: true},
		{name: "missing position", number: 5, position: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := domain.NewPlayer(tt.number, tt.position, zone)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrSchemaViolation)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, p.Phases)
			assert.NotNil(t, p.Responsibilities)
			assert.Empty(t, p.DisplayName())
		})
	}
}

func TestNewPlan(t *testing.T) {
	plan, err := domain.NewPlan("Counter", "4-4-2", nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, plan.PlanID)
	assert.NotNil(t, plan.Players)
	assert.NotNil(t, plan.Zones)
	assert.NotNil(t, plan.PressingTriggers)

	_, ok := plan.CreatedAt()
	assert.True(t, ok)
	_, ok = plan.ModifiedAt()
	assert.True(t, ok)

	_, err = domain.NewPlan("", "4-4-2", nil)
	assert.ErrorIs(t, err, domain.ErrSchemaViolation)
}

func TestGetPlayerByNumber(t *testing.T) {
	plan := testutil.NewPlanBuilder().Build(t)

	p, ok := plan.GetPlayerByNumber(9)
	require.True(t, ok)
	assert.Equal(t, "ST", p.Position)

	p, ok = plan.GetPlayerByNumber(42)
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestDecodePlan(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		plan := testutil.NewPlanBuilder().Build(t)
		data, err := json.Marshal(plan)
		require.NoError(t, err)

		decoded, err := domain.DecodePlan(data)
		require.NoError(t, err)
		assert.Equal(t, plan.PlanID, decoded.PlanID)
		assert.Equal(t, plan.Metadata, decoded.Metadata)
		assert.Equal(t, plan.Players[0].Phases, decoded.Players[0].Phases)
	})

	t.Run("invalid plan id is replaced", func(t *testing.T) {
		decoded, err := domain.DecodePlan([]byte(`{"plan_id": "nope", "name": "X"}`))
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, decoded.PlanID)
	})

	t.Run("null player name", func(t *testing.T) {
		decoded, err := domain.DecodePlan([]byte(`{"name": "X", "players": [
			{"number": 4, "name": null, "position": "CB", "zone": {"x_min": 0, "x_max": 30, "y_min": 20, "y_max": 50}}
		]}`))
		require.NoError(t, err)
		require.Len(t, decoded.Players, 1)
		assert.Nil(t, decoded.Players[0].Name)
	})

	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: `plan please`},
		{name: "array document", doc: `[1, 2]`},
		{name: "wrong field type", doc: `{"name": "X", "players": "eleven"}`},
		{name: "player zone out of range", doc: `{"name": "X", "players": [
			{"number": 4, "position": "CB", "zone": {"x_min": 0, "x_max": 130, "y_min": 20, "y_max": 50}}]}`},
		{name: "player number out of range", doc: `{"name": "X", "players": [
			{"number": 120, "position": "CB", "zone": {"x_min": 0, "x_max": 30, "y_min": 20, "y_max": 50}}]}`},
		{name: "player without zone", doc: `{"name": "X", "players": [{"number": 4, "position": "CB"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.DecodePlan([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestCoercePlanID(t *testing.T) {
	in := map[string]any{"plan_id": "ABCDEF00-0000-4000-8000-000000000000", "name": "X"}
	out := domain.CoercePlanID(in)
	assert.Equal(t, "abcdef00-0000-4000-8000-000000000000", out["plan_id"])
	assert.Equal(t, "ABCDEF00-0000-4000-8000-000000000000", in["plan_id"])

	out = domain.CoercePlanID(map[string]any{"plan_id": uuid.Nil.String()})
	assert.NotContains(t, out, "plan_id")

	out = domain.CoercePlanID(map[string]any{"plan_id": 12})
	assert.NotContains(t, out, "plan_id")
}

func TestClone(t *testing.T) {
	plan := testutil.NewPlanBuilder().Build(t)
	c := plan.Clone()

	c.Name = "Changed"
	c.Players[0].Zone.XMax = 5
	c.Players[0].Phases[domain.PhaseAttack] = domain.PlayerPhase{Position: "SW"}
	c.PressingTriggers[0] = "changed"
	c.Zones["high_press"].XMin = 1
	c.Metadata[domain.MetadataModifiedAt] = "later"

	assert.Equal(t, "Press High", plan.Name)
	assert.Equal(t, 10.0, plan.Players[0].Zone.XMax)
	assert.Equal(t, "GK", plan.Players[0].Phases[domain.PhaseAttack].Position)
	assert.Equal(t, "back pass to keeper", plan.PressingTriggers[0])
	assert.Equal(t, 60.0, plan.Zones["high_press"].XMin)
	assert.NotEqual(t, "later", plan.Metadata[domain.MetadataModifiedAt])
}

func TestGoalkeepers(t *testing.T) {
	plan := testutil.NewPlanBuilder().
		WithPlayer(4, func(p *testutil.PlayerBuilder) { p.WithPosition("goalkeeper") }).
		Build(t)

	assert.Len(t, plan.Goalkeepers(), 2)
}
