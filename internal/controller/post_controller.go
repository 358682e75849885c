package controller

import (
	"errors"

	"blog-cms-be/internal/dto"
	"blog-cms-be/internal/pkg/serverutils"
	"blog-cms-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPostController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	ShowView(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type postController struct {
	postService service.IPostService
}

func NewPostController(postService service.IPostService) IPostController {
	return &postController{
		postService: postService,
	}
}

func (c *postController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/post/v1")
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Get(":id/view", c.ShowView)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *postController) Create(ctx *fiber.Ctx) error {
	var req dto.CreatePostRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.postService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create post", res))
}

func (c *postController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid post id")
	}

	res, err := c.postService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Post not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show post", res))
}

func (c *postController) ShowView(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid post id")
	}

	res, err := c.postService.ShowView(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Post not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success render post view", res))
}

func (c *postController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid post id")
	}

	var req dto.UpdatePostRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.postService.Update(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrContentWipe) {
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(fiber.StatusConflict, err.Error()))
		}
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Post not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update post", res))
}

func (c *postController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid post id")
	}

	if err := c.postService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete post", nil))
}

func (c *postController) List(ctx *fiber.Ctx) error {
	query := ctx.Query("q", "")
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.postService.List(ctx.Context(), query, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list posts", res))
}
