package postgres

import (
	"github.com/dom/touchline-tactician/internal/clock"
	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/dom/touchline-tactician/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table the server migrates.
var Models = []any{
	&domain.Coach{},
	&domain.CoachSession{},
	&domain.PlanRecord{},
}

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(Models...); err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB, clk clock.Clock) *repository.Repositories {
	return &repository.Repositories{
		Plan:    NewPlanRepository(db, clk),
		Coach:   NewCoachRepository(db),
		Session: NewSessionRepository(db),
	}
}
