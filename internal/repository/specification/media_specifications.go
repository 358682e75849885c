package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByOwner struct {
	OwnerType string
	OwnerID   uuid.UUID
}

func (s ByOwner) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_type = ? AND owner_id = ?", s.OwnerType, s.OwnerID)
}

type ByCollection struct {
	Collection string
}

func (s ByCollection) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("collection = ?", s.Collection)
}

type ByTagName struct {
	Name string
}

func (s ByTagName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}
