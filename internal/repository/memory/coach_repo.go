// Package memory holds process-local coach and session stores used when the
// server runs without a database.
package memory

import (
	"context"
	"sync"

	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/dom/touchline-tactician/internal/repository"
	"github.com/google/uuid"
)

type CoachRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]domain.Coach
	byName map[string]uuid.UUID
}

func NewCoachRepository() *CoachRepository {
	return &CoachRepository{
		byID:   make(map[uuid.UUID]domain.Coach),
		byName: make(map[string]uuid.UUID),
	}
}

func (r *CoachRepository) Create(_ context.Context, coach *domain.Coach) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[coach.DisplayName]; taken {
		return repository.ErrDuplicateCoach
	}
	if coach.ID == uuid.Nil {
		coach.ID = uuid.New()
	}
	r.byID[coach.ID] = *coach
	r.byName[coach.DisplayName] = coach.ID
	return nil
}

func (r *CoachRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Coach, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	coach, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrCoachNotFound
	}
	return &coach, nil
}

func (r *CoachRepository) GetByDisplayName(_ context.Context, displayName string) (*domain.Coach, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[displayName]
	if !ok {
		return nil, repository.ErrCoachNotFound
	}
	coach := r.byID[id]
	return &coach, nil
}

func (r *CoachRepository) Update(_ context.Context, coach *domain.Coach) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[coach.ID]
	if !ok {
		return repository.ErrCoachNotFound
	}
	if existing.DisplayName != coach.DisplayName {
		if _, taken := r.byName[coach.DisplayName]; taken {
			return repository.ErrDuplicateCoach
		}
		delete(r.byName, existing.DisplayName)
		r.byName[coach.DisplayName] = coach.ID
	}
	r.byID[coach.ID] = *coach
	return nil
}
