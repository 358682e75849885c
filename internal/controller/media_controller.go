package controller

import (
	"path/filepath"
	"time"

	"blog-cms-be/internal/dto"
	"blog-cms-be/internal/pkg/serverutils"
	"blog-cms-be/pkg/media"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMediaController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Resolve(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ServeFile(ctx *fiber.Ctx) error
}

type mediaController struct {
	store    media.Store
	resolver *media.Resolver
	blobs    media.BlobStorage
	signer   *media.Signer
}

func NewMediaController(
	store media.Store,
	resolver *media.Resolver,
	blobs media.BlobStorage,
	signer *media.Signer,
) IMediaController {
	return &mediaController{
		store:    store,
		resolver: resolver,
		blobs:    blobs,
		signer:   signer,
	}
}

func (c *mediaController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/media/v1")
	h.Post("upload/:ownerId", c.Upload)
	h.Post("resolve", c.Resolve)
	h.Delete(":id", c.Delete)
	h.Get("file/*", c.ServeFile)
}

func (c *mediaController) Upload(ctx *fiber.Ctx) error {
	ownerId, err := uuid.Parse(ctx.Params("ownerId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid owner id")
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Expected multipart form upload")
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No files in upload")
	}

	files := make([]media.File, 0, len(headers))
	closers := make([]func() error, 0, len(headers))
	defer func() {
		for _, close := range closers {
			_ = close()
		}
	}()
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return err
		}
		closers = append(closers, f.Close)
		files = append(files, media.File{
			Name:     filepath.Base(header.Filename),
			MimeType: header.Header.Get("Content-Type"),
			Content:  f,
		})
	}

	records, err := c.store.Upload(ctx.Context(), media.OwnerPost, ownerId.String(), files, media.UploadOptions{
		Collection: ctx.Query("collection", "content"),
	})
	if err != nil {
		return err
	}

	res := dto.UploadMediaResponse{Files: make([]dto.UploadMediaItem, 0, len(records))}
	for _, rec := range records {
		id, _ := uuid.Parse(rec.ID)
		url, _ := c.resolver.ResolveOne(ctx.Context(), rec.ID)
		res.Files = append(res.Files, dto.UploadMediaItem{
			Id:       id,
			FileName: rec.FileName,
			Url:      url,
		})
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload media", res))
}

func (c *mediaController) Resolve(ctx *fiber.Ctx) error {
	var req dto.ResolveMediaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	urls := c.resolver.ResolveMany(ctx.Context(), req.Ids)
	return ctx.JSON(serverutils.SuccessResponse("Success resolve media", dto.ResolveMediaResponse{Urls: urls}))
}

func (c *mediaController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid media id")
	}

	if err := c.store.Delete(ctx.Context(), id.String()); err != nil {
		return err
	}
	c.resolver.Invalidate(id.String())

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete media", nil))
}

// ServeFile streams a blob when the request carries a valid signature.
// The signed path is the blob path, so no database round trip is needed
// to serve a file.
func (c *mediaController) ServeFile(ctx *fiber.Ctx) error {
	blobPath := ctx.Params("*")
	exp := ctx.Query("exp")
	sig := ctx.Query("sig")

	if !c.signer.Verify("/"+blobPath, exp, sig, time.Now()) {
		return fiber.NewError(fiber.StatusForbidden, "Invalid or expired media URL")
	}

	rc, err := c.blobs.Open(blobPath)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Media file not found")
	}

	return ctx.SendStream(rc)
}
