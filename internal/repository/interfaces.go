package repository

import (
	"context"

	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/google/uuid"
)

// PlanRepository is the plan store. Save touches the plan's modified_at
// right before writing it; an empty filename means "<plan_id>.json".
type PlanRepository interface {
	Save(ctx context.Context, plan *domain.TacticalPlan, filename string) (string, error)
	Load(ctx context.Context, filename string) (*domain.TacticalPlan, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, filename string) (string, error)
}

type CoachRepository interface {
	Create(ctx context.Context, coach *domain.Coach) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Coach, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.Coach, error)
	Update(ctx context.Context, coach *domain.Coach) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.CoachSession) error
	GetByCoachID(ctx context.Context, coachID uuid.UUID) (*domain.CoachSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCoachID(ctx context.Context, coachID uuid.UUID) error
}

type Repositories struct {
	Plan    PlanRepository
	Coach   CoachRepository
	Session SessionRepository
}
