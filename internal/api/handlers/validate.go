package handlers

import (
	"net/http"

	"github.com/dom/touchline-tactician/internal/service"
	"github.com/dom/touchline-tactician/internal/validation"
	"github.com/go-chi/chi/v5"
)

// CheckAll runs every check in one request.
const CheckAll = "all"

type ValidateHandler struct {
	planService *service.PlanService
}

func NewValidateHandler(planService *service.PlanService) *ValidateHandler {
	return &ValidateHandler{planService: planService}
}

// Validate answers with a report even when the plan fails; only a malformed
// request or an unknown check is rejected.
func (h *ValidateHandler) Validate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "check")
	if name != CheckAll {
		if _, ok := validation.ParseCheck(name); !ok {
			http.Error(w, "Unknown check: "+name, http.StatusBadRequest)
			return
		}
	}

	ref, ok := decodeReference(w, r)
	if !ok {
		return
	}

	if name == CheckAll {
		writeJSON(w, http.StatusOK, h.planService.ValidateAll(r.Context(), ref))
		return
	}
	check, _ := validation.ParseCheck(name)
	writeJSON(w, http.StatusOK, h.planService.Validate(r.Context(), ref, check))
}
