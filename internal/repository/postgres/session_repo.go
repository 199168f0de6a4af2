package postgres

import (
	"context"

	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/dom/touchline-tactician/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.CoachSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetByCoachID(ctx context.Context, coachID uuid.UUID) (*domain.CoachSession, error) {
	var session domain.CoachSession
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		First(&session, "coach_id = ?", coachID).Error
	if err != nil {
		return nil, notFound(err, repository.ErrSessionNotFound)
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.CoachSession{}, "id = ?", id).Error
}

func (r *sessionRepository) DeleteByCoachID(ctx context.Context, coachID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.CoachSession{}, "coach_id = ?", coachID).Error
}
