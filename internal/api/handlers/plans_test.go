package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/dom/touchline-tactician/internal/api/handlers"
	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/dom/touchline-tactician/internal/render"
	"github.com/dom/touchline-tactician/internal/service"
	"github.com/dom/touchline-tactician/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := ts.Do(t, http.MethodGet, "/plans", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var empty handlers.PlanListResponse
	testutil.AssertJSONResponse(t, resp, &empty)
	assert.Empty(t, empty.Plans)

	first := testutil.NewPlanBuilder().WithName("Low Block").Save(t, ts.Plans)
	testutil.NewPlanBuilder().Save(t, ts.Plans)

	resp = ts.Do(t, http.MethodGet, "/plans", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed handlers.PlanListResponse
	testutil.AssertJSONResponse(t, resp, &listed)
	require.Len(t, listed.Plans, 2)

	var found *service.PlanSummary
	for i := range listed.Plans {
		if listed.Plans[i].PlanID == first.PlanID.String() {
			found = &listed.Plans[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "Low Block", found.Name)
	assert.Equal(t, "4-3-3", found.Formation)
	assert.Equal(t, 11, found.Players)
	assert.NotEmpty(t, found.ModifiedAt)
}

func TestPlanHandler_Get(t *testing.T) {
	ts := testutil.NewTestServer(t)
	plan := testutil.NewPlanBuilder().Save(t, ts.Plans)
	id := plan.PlanID.String()

	tests := []struct {
		name           string
		ref            string
		expectedStatus int
	}{
		{name: "bare identifier", ref: id, expectedStatus: http.StatusOK},
		{name: "filename", ref: id + ".json", expectedStatus: http.StatusOK},
		{name: "plan_id call", ref: "plan_id=UUID('" + id + "')", expectedStatus: http.StatusOK},
		{name: "unknown identifier", ref: "7d4a1c52-0b8e-4f0e-9a57-2f1b8c3d9e10", expectedStatus: http.StatusNotFound},
		{name: "unknown filename", ref: "missing", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.Do(t, http.MethodGet, "/plans/"+tt.ref, "", nil)
			require.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			assert.Equal(t, plan.DefaultFilename(), resp.Header.Get(handlers.PlanFileHeader))
			var got domain.TacticalPlan
			testutil.AssertJSONResponse(t, resp, &got)
			testutil.AssertSamePlan(t, plan, &got)
		})
	}
}

func TestPlanHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewCoachBuilder().BuildAndAuthenticate(t, ts)

	t.Run("requires a token", func(t *testing.T) {
		fields := testutil.PlanFields(t, testutil.NewPlanBuilder().Build(t))
		resp := ts.Do(t, http.MethodPost, "/plans", "", handlers.CreatePlanRequest{Plan: fields})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("stores a valid plan", func(t *testing.T) {
		plan := testutil.NewPlanBuilder().Build(t)
		resp := ts.Do(t, http.MethodPost, "/plans", token, handlers.CreatePlanRequest{
			Plan:     testutil.PlanFields(t, plan),
			Filename: "press_high",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "press_high.json", resp.Header.Get(handlers.PlanFileHeader))

		var result handlers.PlanResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, "press_high.json", result.Filename)
		require.NotNil(t, result.Summary)
		assert.True(t, result.Summary.Valid)
		assert.Equal(t, plan.PlanID, result.Plan.PlanID)

		stored, err := ts.Plans.Load(context.Background(), "press_high")
		require.NoError(t, err)
		testutil.AssertSamePlan(t, plan, stored)
	})

	t.Run("refuses a plan without a goalkeeper", func(t *testing.T) {
		plan := testutil.NewPlanBuilder().
			WithPlayer(1, func(b *testutil.PlayerBuilder) { b.WithPosition("CB") }).
			Build(t)
		resp := ts.Do(t, http.MethodPost, "/plans", token, handlers.CreatePlanRequest{Plan: testutil.PlanFields(t, plan)})
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var failure handlers.ValidationFailure
		testutil.AssertJSONResponse(t, resp, &failure)
		assert.False(t, failure.Summary.Valid)
		assert.Contains(t, failure.Issues, "positions: Team must have a goalkeeper (GK)")

		_, err := ts.Plans.Load(context.Background(), plan.DefaultFilename())
		assert.Error(t, err)
	})

	t.Run("rejects a missing plan", func(t *testing.T) {
		resp := ts.Do(t, http.MethodPost, "/plans", token, map[string]any{"filename": "empty"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects a malformed zone", func(t *testing.T) {
		fields := testutil.PlanFields(t, testutil.NewPlanBuilder().Build(t))
		fields["zones"] = map[string]any{
			"high_press": map[string]any{"x_min": 90, "x_max": 10, "y_min": 0, "y_max": 100},
		}
		resp := ts.Do(t, http.MethodPost, "/plans", token, handlers.CreatePlanRequest{Plan: fields})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects a filename outside the store", func(t *testing.T) {
		fields := testutil.PlanFields(t, testutil.NewPlanBuilder().Build(t))
		resp := ts.Do(t, http.MethodPost, "/plans", token, handlers.CreatePlanRequest{Plan: fields, Filename: "../escape"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestPlanHandler_Edit(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewCoachBuilder().BuildAndAuthenticate(t, ts)
	plan := testutil.NewPlanBuilder().Save(t, ts.Plans)
	path := "/plans/" + plan.PlanID.String() + "/edits"

	tests := []struct {
		name           string
		token          string
		edits          []domain.Edit
		expectedStatus int
	}{
		{
			name:           "requires a token",
			edits:          []domain.Edit{{Op: domain.EditRename, Name: "Nope"}},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "no edits",
			token:          token,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown operation",
			token:          token,
			edits:          []domain.Edit{{Op: "teleport"}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown player",
			token:          token,
			edits:          []domain.Edit{{Op: domain.EditSetPosition, Number: 42, Position: "ST"}},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "inverted zone",
			token:          token,
			edits:          []domain.Edit{{Op: domain.EditMovePlayer, Number: 9, Zone: &domain.Zone{XMin: 90, XMax: 10, YMin: 0, YMax: 100}}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "edit that breaks the roster",
			token: token,
			edits: []domain.Edit{
				{Op: domain.EditRename, Name: "Ten Men"},
				{Op: domain.EditRemovePlayer, Number: 1},
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.Do(t, http.MethodPost, path, tt.token, handlers.EditPlanRequest{Edits: tt.edits})
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			stored, err := ts.Plans.Load(context.Background(), plan.DefaultFilename())
			require.NoError(t, err)
			assert.Equal(t, "Press High", stored.Name)
			assert.Len(t, stored.Players, 11)
		})
	}

	t.Run("applies a valid edit", func(t *testing.T) {
		resp := ts.Do(t, http.MethodPost, path, token, handlers.EditPlanRequest{Edits: []domain.Edit{
			{Op: domain.EditRename, Name: "Gegenpress"},
			{Op: domain.EditSetPressingTriggers, Triggers: []string{"loss of possession"}},
		}})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result handlers.PlanResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, "Gegenpress", result.Plan.Name)
		assert.Equal(t, plan.PlanID, result.Plan.PlanID)
		assert.Equal(t, plan.DefaultFilename(), result.Filename)

		stored, err := ts.Plans.Load(context.Background(), plan.DefaultFilename())
		require.NoError(t, err)
		assert.Equal(t, "Gegenpress", stored.Name)
		assert.Equal(t, []string{"loss of possession"}, stored.PressingTriggers)
	})
}

func TestPlanHandler_Delete(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewCoachBuilder().BuildAndAuthenticate(t, ts)
	plan := testutil.NewPlanBuilder().Save(t, ts.Plans)
	path := "/plans/" + plan.PlanID.String()

	resp := ts.Do(t, http.MethodDelete, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = ts.Do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	testutil.AssertJSONResponse(t, resp, &body)
	assert.Equal(t, "Deleted plan: "+plan.DefaultFilename(), body["message"])

	resp = ts.Do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlanHandler_Resolve(t *testing.T) {
	ts := testutil.NewTestServer(t)
	plan := testutil.NewPlanBuilder().Save(t, ts.Plans)
	id := plan.PlanID.String()

	tests := []struct {
		name           string
		ref            any
		expectedStatus int
		expectedSource string
	}{
		{name: "plan_id call", ref: "plan_id=UUID('" + id + "')", expectedStatus: http.StatusOK, expectedSource: plan.DefaultFilename()},
		{name: "filename with other extension", ref: id + ".yaml", expectedStatus: http.StatusOK, expectedSource: plan.DefaultFilename()},
		{name: "inline object", ref: testutil.PlanFields(t, plan), expectedStatus: http.StatusOK},
		{name: "json text", ref: `{"name": "Press High", "plan_id": "` + id + `"}`, expectedStatus: http.StatusOK},
		{name: "unknown filename", ref: "nowhere.json", expectedStatus: http.StatusNotFound},
		{name: "null", ref: nil, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.Do(t, http.MethodPost, "/plans/resolve", "", map[string]any{"ref": tt.ref})
			require.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var result handlers.ResolveResponse
			testutil.AssertJSONResponse(t, resp, &result)
			assert.Equal(t, plan.PlanID, result.Plan.PlanID)
			assert.Equal(t, tt.expectedSource, result.Source)
		})
	}
}

func TestPlanHandler_Board(t *testing.T) {
	ts := testutil.NewTestServer(t)
	plan := testutil.NewPlanBuilder().Save(t, ts.Plans)
	base := "/plans/" + plan.PlanID.String() + "/board"

	tests := []struct {
		name            string
		query           string
		expectedStatus  int
		expectedType    string
		expectedContent string
	}{
		{name: "ascii by default", expectedStatus: http.StatusOK, expectedType: "text/plain", expectedContent: "Formation: 4-3-3"},
		{name: "ascii with size", query: "?format=ascii&width=40&height=12", expectedStatus: http.StatusOK, expectedType: "text/plain", expectedContent: "Plan: Press High"},
		{name: "svg", query: "?format=svg", expectedStatus: http.StatusOK, expectedType: "image/svg+xml", expectedContent: "<svg"},
		{name: "html", query: "?format=html", expectedStatus: http.StatusOK, expectedType: "text/html", expectedContent: "<!DOCTYPE html>"},
		{name: "unknown format", query: "?format=pdf", expectedStatus: http.StatusBadRequest},
		{name: "oversized svg is capped", query: "?format=svg&width=100000&height=100000", expectedStatus: http.StatusOK, expectedType: "image/svg+xml", expectedContent: `<svg width="4000" height="3000"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.Do(t, http.MethodGet, base+tt.query, "", nil)
			require.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus != http.StatusOK {
				return
			}
			assert.Contains(t, resp.Header.Get("Content-Type"), tt.expectedType)
			assert.Contains(t, testutil.ReadBody(t, resp), tt.expectedContent)
		})
	}
}

func TestPlanHandler_BoardSizeIsCapped(t *testing.T) {
	ts := testutil.NewTestServer(t)
	plan := testutil.NewPlanBuilder().Save(t, ts.Plans)

	resp := ts.Do(t, http.MethodGet, "/plans/"+plan.PlanID.String()+"/board?width=5000&height=5000", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := testutil.ReadBody(t, resp)
	assert.Contains(t, body, strings.Repeat("-", render.MaxASCIIWidth))
	assert.NotContains(t, body, strings.Repeat("-", render.MaxASCIIWidth+1))
	assert.Less(t, len(body), 2*render.MaxASCIIWidth*render.MaxASCIIHeight)
}

func TestPlanHandler_Report(t *testing.T) {
	ts := testutil.NewTestServer(t)
	plan := testutil.NewPlanBuilder().Save(t, ts.Plans)
	base := "/plans/" + plan.PlanID.String() + "/report"

	resp := ts.Do(t, http.MethodGet, base, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/markdown")
	body := testutil.ReadBody(t, resp)
	assert.Contains(t, body, "# Press High")
	assert.Contains(t, body, "## Executive Summary")

	resp = ts.Do(t, http.MethodGet, base+"?player=10", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, testutil.ReadBody(t, resp), "#10")

	resp = ts.Do(t, http.MethodGet, base+"?player=42", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ts.Do(t, http.MethodGet, base+"?player=ten", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
