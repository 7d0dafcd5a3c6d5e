package controller

import (
	"errors"

	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/pkg/serverutils"
	"ai-studymate-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICourseController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	CreateShare(ctx *fiber.Ctx) error
	ListShares(ctx *fiber.Ctx) error
	RevokeShare(ctx *fiber.Ctx) error
	ResolveShare(ctx *fiber.Ctx) error
}

type courseController struct {
	courseService service.ICourseService
}

func NewCourseController(courseService service.ICourseService) ICourseController {
	return &courseController{
		courseService: courseService,
	}
}

func (c *courseController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/course/v1")
	// Share links resolve without auth so invitees can preview.
	h.Get("shared/:token", c.ResolveShare)

	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Post(":id/share", c.CreateShare)
	h.Get(":id/share", c.ListShares)
	h.Delete("share/:shareId", c.RevokeShare)
}

func (c *courseController) Create(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.CreateCourseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.courseService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create course", res))
}

func (c *courseController) Show(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.courseService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "course not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show course", res))
}

func (c *courseController) List(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.courseService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list courses", res))
}

func (c *courseController) Update(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateCourseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.courseService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "course not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update course", res))
}

func (c *courseController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.courseService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete course", nil))
}

func (c *courseController) CreateShare(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	courseId, _ := uuid.Parse(ctx.Params("id"))

	var req dto.CreateShareRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.CourseId = courseId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.courseService.CreateShare(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "course not found")
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create share link", res))
}

func (c *courseController) ListShares(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	courseId, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.courseService.ListShares(ctx.Context(), userId, courseId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "course not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list share links", res))
}

func (c *courseController) RevokeShare(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	shareId, _ := uuid.Parse(ctx.Params("shareId"))

	if err := c.courseService.RevokeShare(ctx.Context(), userId, shareId); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return fiber.NewError(fiber.StatusForbidden, "not your share link")
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success revoke share link", nil))
}

func (c *courseController) ResolveShare(ctx *fiber.Ctx) error {
	res, err := c.courseService.ResolveShare(ctx.Context(), ctx.Params("token"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Success resolve share link", res))
}
