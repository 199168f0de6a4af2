package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/dom/touchline-tactician/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type coachRepository struct {
	db *gorm.DB
}

func NewCoachRepository(db *gorm.DB) *coachRepository {
	return &coachRepository{db: db}
}

func (r *coachRepository) Create(ctx context.Context, coach *domain.Coach) error {
	err := r.db.WithContext(ctx).Create(coach).Error
	if err != nil && isUniqueViolation(err) {
		return repository.ErrDuplicateCoach
	}
	return err
}

func (r *coachRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Coach, error) {
	var coach domain.Coach
	err := r.db.WithContext(ctx).First(&coach, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, repository.ErrCoachNotFound)
	}
	return &coach, nil
}

func (r *coachRepository) GetByDisplayName(ctx context.Context, displayName string) (*domain.Coach, error) {
	var coach domain.Coach
	err := r.db.WithContext(ctx).First(&coach, "display_name = ?", displayName).Error
	if err != nil {
		return nil, notFound(err, repository.ErrCoachNotFound)
	}
	return &coach, nil
}

func (r *coachRepository) Update(ctx context.Context, coach *domain.Coach) error {
	return r.db.WithContext(ctx).Save(coach).Error
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// isUniqueViolation matches SQLSTATE 23505 without importing the pgx error types.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}
