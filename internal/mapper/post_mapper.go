package mapper

import (
	"time"

	"blog-cms-be/internal/entity"
	"blog-cms-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PostMapper struct {
	tagMapper *TagMapper
}

func NewPostMapper() *PostMapper {
	return &PostMapper{tagMapper: NewTagMapper()}
}

func (m *PostMapper) ToEntity(p *model.Post) *entity.Post {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Post{
		Id:             p.Id,
		Title:          p.Title,
		Slug:           p.Slug,
		Content:        string(p.Content),
		Plaintext:      p.Plaintext,
		WordCount:      p.WordCount,
		FeatureMediaId: p.FeatureMediaId,
		LegacyId:       p.LegacyId,
		Tags:           m.tagMapper.ToEntities(p.Tags),
		PublishedAt:    p.PublishedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      p.DeletedAt.Valid,
	}
}

func (m *PostMapper) ToModel(p *entity.Post) *model.Post {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	} else if p.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	// jsonb rejects the empty string; unset content stays NULL.
	var content datatypes.JSON
	if p.Content != "" {
		content = datatypes.JSON(p.Content)
	}

	return &model.Post{
		Id:             p.Id,
		Title:          p.Title,
		Slug:           p.Slug,
		Content:        content,
		Plaintext:      p.Plaintext,
		WordCount:      p.WordCount,
		FeatureMediaId: p.FeatureMediaId,
		LegacyId:       p.LegacyId,
		Tags:           m.tagMapper.ToModels(p.Tags),
		PublishedAt:    p.PublishedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *PostMapper) ToEntities(posts []*model.Post) []*entity.Post {
	entities := make([]*entity.Post, len(posts))
	for i, p := range posts {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

func (m *PostMapper) ToModels(posts []*entity.Post) []*model.Post {
	models := make([]*model.Post, len(posts))
	for i, p := range posts {
		models[i] = m.ToModel(p)
	}
	return models
}
