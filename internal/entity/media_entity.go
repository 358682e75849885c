package entity

import (
	"time"

	"github.com/google/uuid"
)

type Media struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerType  string
	OwnerId    uuid.UUID `gorm:"type:uuid;index"`
	FileName   string
	Path       string // relative path inside blob storage
	MimeType   string
	Size       int64
	Collection string
	CreatedAt  time.Time
}
