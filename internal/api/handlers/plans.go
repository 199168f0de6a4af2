package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/dom/touchline-tactician/internal/render"
	"github.com/dom/touchline-tactician/internal/service"
	"github.com/dom/touchline-tactician/internal/validation"
	"github.com/go-chi/chi/v5"
)

// PlanFileHeader carries the store filename a plan was loaded from.
const PlanFileHeader = "X-Plan-File"

type PlanHandler struct {
	planService *service.PlanService
}

func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

type CreatePlanRequest struct {
	Plan     map[string]any `json:"plan"`
	Filename string         `json:"filename"`
}

type EditPlanRequest struct {
	Edits []domain.Edit `json:"edits"`
}

// ReferenceRequest carries any supported plan reference: a filename, an
// identifier, a plan_id call, or an inline plan object.
type ReferenceRequest struct {
	Ref json.RawMessage `json:"ref"`
}

type PlanResponse struct {
	Plan     *domain.TacticalPlan `json:"plan"`
	Filename string               `json:"filename"`
	Summary  *validation.Summary  `json:"summary,omitempty"`
	Warnings []string             `json:"warnings,omitempty"`
}

type ResolveResponse struct {
	Plan   *domain.TacticalPlan `json:"plan"`
	Source string               `json:"source,omitempty"`
}

type PlanListResponse struct {
	Plans []service.PlanSummary `json:"plans"`
}

func newPlanResponse(result *service.PlanResult) PlanResponse {
	return PlanResponse{
		Plan:     result.Plan,
		Filename: result.Filename,
		Summary:  &result.Summary,
		Warnings: result.Warnings,
	}
}

func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.planService.Summaries(r.Context())
	if err != nil {
		writePlanError(w, "PlanList", err)
		return
	}
	writeJSON(w, http.StatusOK, PlanListResponse{Plans: plans})
}

func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	plan, source, ok := h.resolvePath(w, r)
	if !ok {
		return
	}
	if source != "" {
		w.Header().Set(PlanFileHeader, source)
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.planService.Create(r.Context(), service.CreatePlanInput{
		Fields:   req.Plan,
		Filename: req.Filename,
	})
	if err != nil {
		writePlanError(w, "PlanCreate", err)
		return
	}

	w.Header().Set(PlanFileHeader, result.Filename)
	writeJSON(w, http.StatusCreated, newPlanResponse(result))
}

func (h *PlanHandler) Edit(w http.ResponseWriter, r *http.Request) {
	ref, ok := pathRef(w, r)
	if !ok {
		return
	}

	var req EditPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.planService.Edit(r.Context(), ref, req.Edits)
	if err != nil {
		writePlanError(w, "PlanEdit", err)
		return
	}

	w.Header().Set(PlanFileHeader, result.Filename)
	writeJSON(w, http.StatusOK, newPlanResponse(result))
}

func (h *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ref, ok := pathRef(w, r)
	if !ok {
		return
	}

	msg, err := h.planService.Delete(r.Context(), ref)
	if err != nil {
		writePlanError(w, "PlanDelete", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func (h *PlanHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	ref, ok := decodeReference(w, r)
	if !ok {
		return
	}

	plan, source, err := h.planService.Resolver().ResolveWithSource(r.Context(), ref)
	if err != nil {
		writePlanError(w, "PlanResolve", err)
		return
	}
	writeJSON(w, http.StatusOK, ResolveResponse{Plan: plan, Source: source})
}

// Board renders the plan as ascii (default), svg or html.
func (h *PlanHandler) Board(w http.ResponseWriter, r *http.Request) {
	plan, _, ok := h.resolvePath(w, r)
	if !ok {
		return
	}

	width, _ := strconv.Atoi(r.URL.Query().Get("width"))
	height, _ := strconv.Atoi(r.URL.Query().Get("height"))

	var contentType, body string
	switch format := r.URL.Query().Get("format"); format {
	case "", "ascii":
		contentType, body = "text/plain; charset=utf-8", render.ASCIIBoard(plan, width, height)
	case "svg":
		contentType, body = "image/svg+xml", render.SVGBoard(plan, width, height)
	case "html":
		contentType, body = "text/html; charset=utf-8", render.HTMLBoard(plan, width, height)
	default:
		http.Error(w, "Unknown board format: "+format, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write([]byte(body))
}

// Report returns the markdown summary, or a single player's sheet when
// ?player=<number> is given.
func (h *PlanHandler) Report(w http.ResponseWriter, r *http.Request) {
	plan, _, ok := h.resolvePath(w, r)
	if !ok {
		return
	}

	body := render.MarkdownReport(plan)
	if raw := r.URL.Query().Get("player"); raw != "" {
		number, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "player must be a jersey number", http.StatusBadRequest)
			return
		}
		if body, err = render.PlayerReport(plan, number); err != nil {
			writePlanError(w, "PlanReport", err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(body))
}

func (h *PlanHandler) resolvePath(w http.ResponseWriter, r *http.Request) (*domain.TacticalPlan, string, bool) {
	ref, ok := pathRef(w, r)
	if !ok {
		return nil, "", false
	}
	plan, source, err := h.planService.Resolver().ResolveWithSource(r.Context(), ref)
	if err != nil {
		writePlanError(w, "PlanResolve", err)
		return nil, "", false
	}
	return plan, source, true
}

func pathRef(w http.ResponseWriter, r *http.Request) (string, bool) {
	ref, err := url.PathUnescape(chi.URLParam(r, "ref"))
	if err != nil || ref == "" {
		http.Error(w, "Invalid plan reference", http.StatusBadRequest)
		return "", false
	}
	return ref, true
}

// decodeReference unwraps a JSON string reference and passes objects
// through as raw JSON.
func decodeReference(w http.ResponseWriter, r *http.Request) (any, bool) {
	var req ReferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil, false
	}

	raw := bytes.TrimSpace(req.Ref)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		http.Error(w, "ref is required", http.StatusBadRequest)
		return nil, false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			http.Error(w, "Invalid ref", http.StatusBadRequest)
			return nil, false
		}
		return s, true
	}
	return req.Ref, true
}
