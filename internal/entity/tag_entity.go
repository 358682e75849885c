package entity

import (
	"time"

	"github.com/google/uuid"
)

type Tag struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Slug      string
	CreatedAt time.Time
}
