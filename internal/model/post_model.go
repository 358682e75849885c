package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Post struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title          string         `gorm:"type:varchar(255);not null"`
	Slug           string         `gorm:"type:varchar(255);uniqueIndex"`
	Content        datatypes.JSON `gorm:"type:jsonb"`
	Plaintext      string         `gorm:"type:text"`
	WordCount      int            `gorm:"not null;default:0"`
	FeatureMediaId *uuid.UUID
	LegacyId       string `gorm:"type:varchar(64);uniqueIndex:idx_posts_legacy_id,where:legacy_id <> ''"`
	Tags           []*Tag `gorm:"many2many:post_tags"`
	PublishedAt    *time.Time
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Post) TableName() string {
	return "posts"
}
