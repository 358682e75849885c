package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"blog-cms-be/internal/entity"
	"blog-cms-be/internal/repository/specification"
	"blog-cms-be/internal/repository/unitofwork"
	"blog-cms-be/pkg/media"

	"github.com/google/uuid"
)

// mediaService backs pkg/media.Store with the media table and blob
// storage. Stored paths are uuid-based so legacy file names never leak
// into storage layout.
type mediaService struct {
	uowFactory unitofwork.RepositoryFactory
	blobs      media.BlobStorage
	signer     *media.Signer
}

func NewMediaService(
	uowFactory unitofwork.RepositoryFactory,
	blobs media.BlobStorage,
	signer *media.Signer,
) media.Store {
	return &mediaService{
		uowFactory: uowFactory,
		blobs:      blobs,
		signer:     signer,
	}
}

func (s *mediaService) Upload(ctx context.Context, ownerType, ownerID string, files []media.File, opts media.UploadOptions) ([]media.Record, error) {
	ownerId, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid media owner id %q: %w", ownerID, err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	records := make([]media.Record, 0, len(files))

	for _, file := range files {
		id := uuid.New()
		blobPath := path.Join(ownerType, ownerId.String(), id.String()+path.Ext(file.Name))

		size, err := s.blobs.Save(ctx, blobPath, file.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store %s: %w", file.Name, err)
		}

		row := entity.Media{
			Id:         id,
			OwnerType:  ownerType,
			OwnerId:    ownerId,
			FileName:   file.Name,
			Path:       blobPath,
			MimeType:   file.MimeType,
			Size:       size,
			Collection: opts.Collection,
			CreatedAt:  time.Now(),
		}
		if err := uow.MediaRepository().Create(ctx, &row); err != nil {
			// Roll the orphaned blob back; the row is the source of truth.
			_ = s.blobs.Remove(blobPath)
			return nil, err
		}

		records = append(records, toRecord(&row))
	}

	return records, nil
}

func (s *mediaService) ResolveURL(ctx context.Context, mediaID string) (string, error) {
	row, err := s.findByID(ctx, mediaID)
	if err != nil {
		return "", err
	}
	if row == nil {
		return "", fmt.Errorf("media %s not found", mediaID)
	}
	return s.signer.SignedURL(row.Path, time.Now()), nil
}

func (s *mediaService) ResolveMany(ctx context.Context, mediaIDs []string) (map[string]string, error) {
	ids := make([]uuid.UUID, 0, len(mediaIDs))
	for _, raw := range mediaIDs {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.MediaRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	urls := make(map[string]string, len(rows))
	for _, row := range rows {
		urls[row.Id.String()] = s.signer.SignedURL(row.Path, now)
	}
	return urls, nil
}

func (s *mediaService) Delete(ctx context.Context, mediaID string) error {
	row, err := s.findByID(ctx, mediaID)
	if err != nil {
		return err
	}
	if row == nil {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MediaRepository().Delete(ctx, row.Id); err != nil {
		return err
	}
	return s.blobs.Remove(row.Path)
}

func (s *mediaService) DeleteOwned(ctx context.Context, ownerType, ownerID string) error {
	ownerId, err := uuid.Parse(ownerID)
	if err != nil {
		return fmt.Errorf("invalid media owner id %q: %w", ownerID, err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.MediaRepository().FindAll(ctx, specification.ByOwner{OwnerType: ownerType, OwnerID: ownerId})
	if err != nil {
		return err
	}

	if err := uow.MediaRepository().DeleteAllByOwner(ctx, ownerType, ownerId); err != nil {
		return err
	}
	for _, row := range rows {
		_ = s.blobs.Remove(row.Path)
	}
	return nil
}

func (s *mediaService) findByID(ctx context.Context, mediaID string) (*entity.Media, error) {
	id, err := uuid.Parse(mediaID)
	if err != nil {
		return nil, nil // malformed ids resolve to nothing, not an error
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.MediaRepository().FindOne(ctx, specification.ByID{ID: id})
}

func toRecord(row *entity.Media) media.Record {
	return media.Record{
		ID:         row.Id.String(),
		OwnerType:  row.OwnerType,
		OwnerID:    row.OwnerId.String(),
		FileName:   row.FileName,
		Path:       row.Path,
		MimeType:   row.MimeType,
		Size:       row.Size,
		Collection: row.Collection,
		CreatedAt:  row.CreatedAt,
	}
}
