package service

import (
	"context"
	"fmt"
	"time"

	"blog-cms-be/internal/dto"
	"blog-cms-be/internal/entity"
	"blog-cms-be/internal/pkg/logger"
	"blog-cms-be/internal/repository/specification"
	"blog-cms-be/internal/repository/unitofwork"
	"blog-cms-be/pkg/events"
	"blog-cms-be/pkg/legacy"
	"blog-cms-be/pkg/media"

	"github.com/google/uuid"
)

type IImportService interface {
	ImportOne(ctx context.Context, legacyId string) (*dto.ImportLegacyResponse, error)
	ImportAll(ctx context.Context, workers int) (*dto.ImportAllResponse, error)
}

type importService struct {
	importer *legacy.Importer
	sink     *importSink
	log      logger.ILogger
	workers  int
}

func NewImportService(
	uowFactory unitofwork.RepositoryFactory,
	source legacy.SourceStore,
	mediaStore media.Store,
	publisherService IPublisherService,
	log logger.ILogger,
	defaultWorkers int,
) IImportService {
	sink := &importSink{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
	return &importService{
		importer: legacy.NewImporter(source, mediaStore, sink),
		sink:     sink,
		log:      log,
		workers:  defaultWorkers,
	}
}

func (s *importService) ImportOne(ctx context.Context, legacyId string) (*dto.ImportLegacyResponse, error) {
	post, err := s.importer.ImportItem(ctx, legacyId)
	if err != nil {
		s.log.Error("import", "Legacy import failed", map[string]interface{}{
			"legacy_id": legacyId,
			"error":     err.Error(),
		})
		return nil, err
	}

	postId, err := s.sink.targetID(ctx, legacyId)
	if err != nil {
		return nil, err
	}

	s.log.Info("import", "Legacy item imported", map[string]interface{}{
		"legacy_id":      legacyId,
		"post_id":        postId,
		"word_count":     post.WordCount,
		"migrated_files": post.MigratedFiles,
	})

	return &dto.ImportLegacyResponse{
		PostId:        postId,
		LegacyId:      post.LegacyID,
		WordCount:     post.WordCount,
		MigratedFiles: post.MigratedFiles,
	}, nil
}

func (s *importService) ImportAll(ctx context.Context, workers int) (*dto.ImportAllResponse, error) {
	if workers < 1 {
		workers = s.workers
	}

	result, err := s.importer.ImportAll(ctx, workers)
	if err != nil {
		return nil, err
	}

	res := &dto.ImportAllResponse{Imported: result.Imported}
	if len(result.Failed) > 0 {
		res.Failed = make(map[string]string, len(result.Failed))
		for id, itemErr := range result.Failed {
			res.Failed[id] = itemErr.Error()
			s.log.Warn("import", "Legacy item failed during batch import", map[string]interface{}{
				"legacy_id": id,
				"error":     itemErr.Error(),
			})
		}
	}

	s.log.Info("import", "Legacy batch import finished", map[string]interface{}{
		"imported": res.Imported,
		"failed":   len(res.Failed),
	})
	return res, nil
}

// importSink persists import results through the repository layer.
type importSink struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

// EnsureTarget maps a legacy id onto a post row, creating a stub when
// the item has never been imported. The stub gives uploads an owner
// before the converted body exists.
func (s *importSink) EnsureTarget(ctx context.Context, legacyID, title string) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	post, err := uow.PostRepository().FindOne(ctx, specification.ByLegacyID{LegacyID: legacyID})
	if err != nil {
		return "", err
	}
	if post != nil {
		return post.Id.String(), nil
	}

	stub := entity.Post{
		Id:        uuid.New(),
		Title:     title,
		Slug:      importSlug(title, legacyID),
		LegacyId:  legacyID,
		CreatedAt: time.Now(),
	}
	if err := uow.PostRepository().Create(ctx, &stub); err != nil {
		return "", err
	}
	return stub.Id.String(), nil
}

func (s *importSink) SaveImported(ctx context.Context, postID string, imported *legacy.ImportedPost) error {
	id, err := uuid.Parse(postID)
	if err != nil {
		return fmt.Errorf("invalid import target id %q: %w", postID, err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if post == nil {
		return fmt.Errorf("import target %s vanished", postID)
	}

	now := time.Now()
	post.Title = imported.Title
	post.Content = imported.Serialized
	post.Plaintext = imported.Plaintext
	post.WordCount = imported.WordCount
	post.UpdatedAt = &now
	if imported.FeatureMediaID != "" {
		if featureId, err := uuid.Parse(imported.FeatureMediaID); err == nil {
			post.FeatureMediaId = &featureId
		}
	}

	if err := uow.PostRepository().Update(ctx, post); err != nil {
		return err
	}

	// Imported posts go through the same indexing pipeline as edits.
	if err := s.publisherService.PublishEvent(ctx, events.PostContentChanged(post.Id)); err != nil {
		fmt.Printf("[WARN] Failed to publish import index event: %v\n", err)
	}
	return nil
}

func (s *importSink) targetID(ctx context.Context, legacyID string) (uuid.UUID, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	post, err := uow.PostRepository().FindOne(ctx, specification.ByLegacyID{LegacyID: legacyID})
	if err != nil {
		return uuid.Nil, err
	}
	if post == nil {
		return uuid.Nil, fmt.Errorf("imported post for legacy id %s not found", legacyID)
	}
	return post.Id, nil
}

func importSlug(title, legacyID string) string {
	if s := slugify(title); s != "" {
		return s + "-" + legacyID
	}
	return "imported-" + legacyID
}
