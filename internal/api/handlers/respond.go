package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/dom/touchline-tactician/internal/repository"
	"github.com/dom/touchline-tactician/internal/resolver"
	"github.com/dom/touchline-tactician/internal/service"
	"github.com/dom/touchline-tactician/internal/validation"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR [handlers.writeJSON]: %v", err)
	}
}

// ValidationFailure is the body of a 422 response.
type ValidationFailure struct {
	Error   string             `json:"error"`
	Issues  []string           `json:"issues"`
	Summary validation.Summary `json:"summary"`
}

// writePlanError maps plan, resolver and store errors onto status codes.
func writePlanError(w http.ResponseWriter, op string, err error) {
	var invalid *service.ValidationError
	var notFound *resolver.NotFoundError
	var unknownRef *resolver.InvalidReferenceError

	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusUnprocessableEntity, ValidationFailure{
			Error:   "Plan failed validation",
			Issues:  invalid.Summary.Issues(),
			Summary: invalid.Summary,
		})
	case errors.As(err, &notFound),
		errors.As(err, &unknownRef),
		errors.Is(err, repository.ErrPlanNotFound),
		errors.Is(err, domain.ErrPlayerNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrSchemaViolation),
		errors.Is(err, domain.ErrInvalidEdit),
		errors.Is(err, domain.ErrUnknownEdit),
		errors.Is(err, resolver.ErrReferenceResolution),
		errors.Is(err, repository.ErrInvalidFilename),
		errors.Is(err, service.ErrMissingPlan),
		errors.Is(err, service.ErrNoEditsProvided),
		errors.Is(err, service.ErrNotStoredPlan):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("ERROR [handlers.%s]: %v", op, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
