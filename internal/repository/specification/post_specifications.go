package specification

import (
	"gorm.io/gorm"
)

type ByLegacyID struct {
	LegacyID string
}

func (s ByLegacyID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("legacy_id = ?", s.LegacyID)
}

type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

type PublishedOnly struct{}

func (s PublishedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("published_at IS NOT NULL AND published_at <= NOW()")
}

// PostSearchQuery matches against extracted plaintext and title, so
// search never sees raw document JSON.
type PostSearchQuery struct {
	Query string
}

func (s PostSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("title ILIKE ? OR plaintext ILIKE ?", pattern, pattern)
}

type WithTags struct{}

func (s WithTags) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Tags")
}
