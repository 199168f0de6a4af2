package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PlanRecord is the relational form of a persisted plan: the full JSON
// document keyed by its store filename, plus a few indexed columns.
type PlanRecord struct {
	Filename  string         `json:"filename" gorm:"primaryKey"`
	PlanID    uuid.UUID      `json:"planId" gorm:"type:uuid;index;not null"`
	Name      string         `json:"name" gorm:"not null"`
	Formation string         `json:"formation"`
	Document  datatypes.JSON `json:"document" gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
