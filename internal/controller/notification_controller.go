package controller

import (
	"ai-studymate-be/internal/pkg/serverutils"
	"ai-studymate-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INotificationController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	UnreadCount(ctx *fiber.Ctx) error
	MarkRead(ctx *fiber.Ctx) error
	MarkAllRead(ctx *fiber.Ctx) error
}

type notificationController struct {
	notificationService service.INotificationService
}

func NewNotificationController(notificationService service.INotificationService) INotificationController {
	return &notificationController{
		notificationService: notificationService,
	}
}

func (c *notificationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notification/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Get("unread-count", c.UnreadCount)
	h.Put("read-all", c.MarkAllRead)
	h.Put(":id/read", c.MarkRead)
}

func (c *notificationController) List(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	unreadOnly := ctx.QueryBool("unread", false)

	res, err := c.notificationService.List(ctx.Context(), userId, unreadOnly)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list notifications", res))
}

func (c *notificationController) UnreadCount(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.notificationService.UnreadCount(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success count unread notifications", res))
}

func (c *notificationController) MarkRead(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.notificationService.MarkRead(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success mark notification read", nil))
}

func (c *notificationController) MarkAllRead(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	if err := c.notificationService.MarkAllRead(ctx.Context(), userId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success mark all notifications read", nil))
}
