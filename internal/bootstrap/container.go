package bootstrap

import (
	"log"

	"blog-cms-be/internal/config"
	"blog-cms-be/internal/controller"
	"blog-cms-be/internal/pkg/logger"
	"blog-cms-be/internal/repository/unitofwork"
	"blog-cms-be/internal/service"
	"blog-cms-be/pkg/legacy"
	"blog-cms-be/pkg/media"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PostController   controller.IPostController
	MediaController  controller.IMediaController
	ImportController controller.IImportController

	// Background Services (Exposed for main.go to run)
	IndexerService service.IIndexerService

	// Exposed for the import CLI
	ImportService service.IImportService

	// Shared Facades
	Logger     logger.ILogger
	MediaStore media.Store
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Media Infrastructure
	blobs, err := media.NewDiskStorage(cfg.Media.StorageRoot)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize media storage: %v", err)
	}
	if cfg.Media.SigningSecret == "" {
		log.Println("[WARN] MEDIA_SIGNING_SECRET is empty, signed URLs are forgeable")
	}
	signer := media.NewSigner(cfg.Media.SigningSecret, cfg.App.BaseURL+"/api/media/v1/file", cfg.Media.SignedURLTTL)

	mediaStore := service.NewMediaService(uowFactory, blobs, signer)
	resolver := media.NewResolver(mediaStore)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Events.PostContentTopic, pubSub)
	indexerService := service.NewIndexerService(pubSub, cfg.Events.PostContentTopic, uowFactory)

	postService := service.NewPostService(uowFactory, publisherService, mediaStore, resolver)

	legacySource := legacy.NewDirSource(cfg.Legacy.SourceDir)
	importService := service.NewImportService(
		uowFactory,
		legacySource,
		mediaStore,
		publisherService,
		sysLogger,
		cfg.Legacy.ImportWorkers,
	)

	// 5. Controllers
	return &Container{
		PostController:   controller.NewPostController(postService),
		MediaController:  controller.NewMediaController(mediaStore, resolver, blobs, signer),
		ImportController: controller.NewImportController(importService),

		IndexerService: indexerService,
		ImportService:  importService,

		Logger:     sysLogger,
		MediaStore: mediaStore,
	}
}
