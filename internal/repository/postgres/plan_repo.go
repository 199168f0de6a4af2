package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dom/touchline-tactician/internal/clock"
	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/dom/touchline-tactician/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type planRepository struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewPlanRepository(db *gorm.DB, clk clock.Clock) *planRepository {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &planRepository{db: db, clock: clk}
}

func (r *planRepository) Save(ctx context.Context, plan *domain.TacticalPlan, filename string) (string, error) {
	if plan == nil {
		return "", errors.New("postgres: save: plan is nil")
	}
	if filename == "" {
		filename = plan.DefaultFilename()
	}
	name, err := repository.NormalizeFilename(filename)
	if err != nil {
		return "", err
	}

	plan.TouchAt(r.clock.Now())

	doc, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("postgres: encode plan %s: %w", plan.PlanID, err)
	}

	record := &domain.PlanRecord{
		Filename:  name,
		PlanID:    plan.PlanID,
		Name:      plan.Name,
		Formation: plan.Formation,
		Document:  datatypes.JSON(doc),
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "filename"}},
		DoUpdates: clause.AssignmentColumns([]string{"plan_id", "name", "formation", "document", "updated_at"}),
	}).Create(record).Error
	if err != nil {
		return "", err
	}
	return name, nil
}

func (r *planRepository) Load(ctx context.Context, filename string) (*domain.TacticalPlan, error) {
	name, err := repository.NormalizeFilename(filename)
	if err != nil {
		return nil, err
	}

	var record domain.PlanRecord
	err = r.db.WithContext(ctx).First(&record, "filename = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", repository.ErrPlanNotFound, name)
		}
		return nil, err
	}

	plan, err := domain.DecodePlan(record.Document)
	if err != nil {
		return nil, fmt.Errorf("postgres: load %s: %w", name, err)
	}
	return plan, nil
}

func (r *planRepository) List(ctx context.Context) ([]string, error) {
	var filenames []string
	err := r.db.WithContext(ctx).Model(&domain.PlanRecord{}).
		Order("filename ASC").
		Pluck("filename", &filenames).Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(filenames))
	for _, f := range filenames {
		ids = append(ids, repository.Identifier(f))
	}
	return ids, nil
}

func (r *planRepository) Delete(ctx context.Context, filename string) (string, error) {
	name, err := repository.NormalizeFilename(filename)
	if err != nil {
		return "", err
	}

	result := r.db.WithContext(ctx).Delete(&domain.PlanRecord{}, "filename = ?", name)
	if result.Error != nil {
		return "", result.Error
	}
	if result.RowsAffected == 0 {
		return "", fmt.Errorf("%w: %s", repository.ErrPlanNotFound, name)
	}
	return "Deleted plan: " + name, nil
}
