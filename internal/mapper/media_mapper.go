package mapper

import (
	"blog-cms-be/internal/entity"
	"blog-cms-be/internal/model"
)

type MediaMapper struct{}

func NewMediaMapper() *MediaMapper {
	return &MediaMapper{}
}

func (m *MediaMapper) ToEntity(md *model.Media) *entity.Media {
	if md == nil {
		return nil
	}
	return &entity.Media{
		Id:         md.Id,
		OwnerType:  md.OwnerType,
		OwnerId:    md.OwnerId,
		FileName:   md.FileName,
		Path:       md.Path,
		MimeType:   md.MimeType,
		Size:       md.Size,
		Collection: md.Collection,
		CreatedAt:  md.CreatedAt,
	}
}

func (m *MediaMapper) ToModel(md *entity.Media) *model.Media {
	if md == nil {
		return nil
	}
	return &model.Media{
		Id:         md.Id,
		OwnerType:  md.OwnerType,
		OwnerId:    md.OwnerId,
		FileName:   md.FileName,
		Path:       md.Path,
		MimeType:   md.MimeType,
		Size:       md.Size,
		Collection: md.Collection,
		CreatedAt:  md.CreatedAt,
	}
}

func (m *MediaMapper) ToEntities(media []*model.Media) []*entity.Media {
	entities := make([]*entity.Media, len(media))
	for i, md := range media {
		entities[i] = m.ToEntity(md)
	}
	return entities
}

func (m *MediaMapper) ToModels(media []*entity.Media) []*model.Media {
	models := make([]*model.Media, len(media))
	for i, md := range media {
		models[i] = m.ToModel(md)
	}
	return models
}
