package mapper

import (
	"blog-cms-be/internal/entity"
	"blog-cms-be/internal/model"
)

type TagMapper struct{}

func NewTagMapper() *TagMapper {
	return &TagMapper{}
}

func (m *TagMapper) ToEntity(t *model.Tag) *entity.Tag {
	if t == nil {
		return nil
	}
	return &entity.Tag{
		Id:        t.Id,
		Name:      t.Name,
		Slug:      t.Slug,
		CreatedAt: t.CreatedAt,
	}
}

func (m *TagMapper) ToModel(t *entity.Tag) *model.Tag {
	if t == nil {
		return nil
	}
	return &model.Tag{
		Id:        t.Id,
		Name:      t.Name,
		Slug:      t.Slug,
		CreatedAt: t.CreatedAt,
	}
}

func (m *TagMapper) ToEntities(tags []*model.Tag) []*entity.Tag {
	if tags == nil {
		return nil
	}
	entities := make([]*entity.Tag, len(tags))
	for i, t := range tags {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

func (m *TagMapper) ToModels(tags []*entity.Tag) []*model.Tag {
	if tags == nil {
		return nil
	}
	models := make([]*model.Tag, len(tags))
	for i, t := range tags {
		models[i] = m.ToModel(t)
	}
	return models
}
