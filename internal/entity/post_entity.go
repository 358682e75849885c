package entity

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title          string
	Slug           string
	Content        string // serialized document JSON
	Plaintext      string
	WordCount      int
	FeatureMediaId *uuid.UUID `gorm:"type:uuid"`
	LegacyId       string
	Tags           []*Tag
	PublishedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
