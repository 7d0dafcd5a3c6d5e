package controller

import (
	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/pkg/serverutils"
	"ai-studymate-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMindMapController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type mindMapController struct {
	mindMapService service.IMindMapService
}

func NewMindMapController(mindMapService service.IMindMapService) IMindMapController {
	return &mindMapController{
		mindMapService: mindMapService,
	}
}

func (c *mindMapController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/mindmap/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("generate", c.Generate)
	h.Get("course/:courseId", c.List)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

func (c *mindMapController) Generate(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.GenerateMindMapRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.mindMapService.Generate(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "course not found")
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success generate mind map", res))
}

func (c *mindMapController) Show(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.mindMapService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "mind map not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show mind map", res))
}

func (c *mindMapController) List(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	courseId, _ := uuid.Parse(ctx.Params("courseId"))

	res, err := c.mindMapService.List(ctx.Context(), userId, courseId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list mind maps", res))
}

func (c *mindMapController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.mindMapService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete mind map", nil))
}
