package controller

import (
	"ai-studymate-be/internal/pkg/serverutils"
	"ai-studymate-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAnalyticsController interface {
	RegisterRoutes(r fiber.Router)
	Summary(ctx *fiber.Ctx) error
	CourseAnalytics(ctx *fiber.Ctx) error
	ReviewStats(ctx *fiber.Ctx) error
}

type analyticsController struct {
	analyticsService service.IAnalyticsService
}

func NewAnalyticsController(analyticsService service.IAnalyticsService) IAnalyticsController {
	return &analyticsController{
		analyticsService: analyticsService,
	}
}

func (c *analyticsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analytics/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("summary", c.Summary)
	h.Get("course/:courseId", c.CourseAnalytics)
	h.Get("course/:courseId/reviews", c.ReviewStats)
}

func (c *analyticsController) Summary(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.analyticsService.Summary(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show summary", res))
}

func (c *analyticsController) CourseAnalytics(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	courseId, _ := uuid.Parse(ctx.Params("courseId"))

	res, err := c.analyticsService.CourseAnalytics(ctx.Context(), userId, courseId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "course not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show course analytics", res))
}

func (c *analyticsController) ReviewStats(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	courseId, _ := uuid.Parse(ctx.Params("courseId"))

	res, err := c.analyticsService.ReviewStats(ctx.Context(), userId, courseId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "course not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show review stats", res))
}
