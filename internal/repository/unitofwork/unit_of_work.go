package unitofwork

import (
	"context"

	"blog-cms-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	PostRepository() contract.PostRepository
	TagRepository() contract.TagRepository
	MediaRepository() contract.MediaRepository
}
