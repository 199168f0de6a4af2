package memory

import "github.com/dom/touchline-tactician/internal/repository"

// NewRepositories pairs an existing plan store with in-memory coach and
// session stores.
func NewRepositories(plans repository.PlanRepository) *repository.Repositories {
	return &repository.Repositories{
		Plan:    plans,
		Coach:   NewCoachRepository(),
		Session: NewSessionRepository(),
	}
}
