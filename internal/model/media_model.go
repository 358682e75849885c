package model

import (
	"time"

	"github.com/google/uuid"
)

type Media struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerType  string    `gorm:"type:varchar(32);not null;index:idx_media_owner"`
	OwnerId    uuid.UUID `gorm:"type:uuid;not null;index:idx_media_owner"`
	FileName   string    `gorm:"type:varchar(255);not null"`
	Path       string    `gorm:"type:varchar(512);not null"`
	MimeType   string    `gorm:"type:varchar(128)"`
	Size       int64     `gorm:"not null;default:0"`
	Collection string    `gorm:"type:varchar(64);index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Media) TableName() string {
	return "media"
}
