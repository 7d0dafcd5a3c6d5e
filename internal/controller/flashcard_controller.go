package controller

import (
	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/pkg/serverutils"
	"ai-studymate-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFlashcardController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Due(ctx *fiber.Ctx) error
	Review(ctx *fiber.Ctx) error
}

type flashcardController struct {
	flashcardService service.IFlashcardService
}

func NewFlashcardController(flashcardService service.IFlashcardService) IFlashcardController {
	return &flashcardController{
		flashcardService: flashcardService,
	}
}

func (c *flashcardController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/flashcard/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("generate", c.Generate)
	h.Post("", c.Create)
	h.Get("course/:courseId", c.List)
	h.Get("course/:courseId/due", c.Due)
	h.Put(":id", c.Update)
	h.Post(":id/review", c.Review)
	h.Delete(":id", c.Delete)
}

func (c *flashcardController) Generate(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.GenerateFlashcardsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.flashcardService.Generate(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "course not found")
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success generate flashcards", res))
}

func (c *flashcardController) Create(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.CreateFlashcardRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.flashcardService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "course not found")
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create flashcard", res))
}

func (c *flashcardController) Update(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateFlashcardRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.flashcardService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "flashcard not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update flashcard", res))
}

func (c *flashcardController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.flashcardService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete flashcard", nil))
}

func (c *flashcardController) List(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	courseId, _ := uuid.Parse(ctx.Params("courseId"))

	res, err := c.flashcardService.List(ctx.Context(), userId, courseId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list flashcards", res))
}

func (c *flashcardController) Due(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	courseId, _ := uuid.Parse(ctx.Params("courseId"))

	res, err := c.flashcardService.Due(ctx.Context(), userId, courseId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list due flashcards", res))
}

func (c *flashcardController) Review(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.ReviewFlashcardRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.flashcardService.Review(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "flashcard not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success review flashcard", res))
}
