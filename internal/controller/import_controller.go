package controller

import (
	"blog-cms-be/internal/dto"
	"blog-cms-be/internal/pkg/serverutils"
	"blog-cms-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IImportController interface {
	RegisterRoutes(r fiber.Router)
	ImportOne(ctx *fiber.Ctx) error
	ImportAll(ctx *fiber.Ctx) error
}

type importController struct {
	importService service.IImportService
}

func NewImportController(importService service.IImportService) IImportController {
	return &importController{
		importService: importService,
	}
}

func (c *importController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/import/v1")
	h.Post("legacy", c.ImportAll)
	h.Post("legacy/:id", c.ImportOne)
}

func (c *importController) ImportOne(ctx *fiber.Ctx) error {
	legacyId := ctx.Params("id")
	if legacyId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing legacy id")
	}

	res, err := c.importService.ImportOne(ctx.Context(), legacyId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success import legacy item", res))
}

func (c *importController) ImportAll(ctx *fiber.Ctx) error {
	var req dto.ImportAllRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
		if err := serverutils.ValidateRequest(req); err != nil {
			return err
		}
	}

	res, err := c.importService.ImportAll(ctx.Context(), req.Workers)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success import legacy content", res))
}
