package contract

import (
	"context"

	"blog-cms-be/internal/entity"
	"blog-cms-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MediaRepository interface {
	Create(ctx context.Context, media *entity.Media) error
	CreateBulk(ctx context.Context, media []*entity.Media) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByOwner(ctx context.Context, ownerType string, ownerId uuid.UUID) error // Hard delete
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Media, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Media, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
