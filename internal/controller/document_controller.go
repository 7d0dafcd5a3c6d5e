package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/pkg/serverutils"
	"ai-studymate-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	ImportURL(ctx *fiber.Ctx) error
	ImportTranscript(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	uploadDir       string
}

func NewDocumentController(documentService service.IDocumentService, uploadDir string) IDocumentController {
	return &documentController{
		documentService: documentService,
		uploadDir:       uploadDir,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("upload", c.Upload)
	h.Post("import-url", c.ImportURL)
	h.Post("import-transcript", c.ImportTranscript)
	h.Get("course/:courseId", c.List)
	h.Get(":id", c.Show)
	h.Get(":id/status", c.Status)
	h.Delete(":id", c.Delete)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	courseId, err := uuid.Parse(ctx.FormValue("course_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "course_id is required")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		return fiber.NewError(fiber.StatusBadRequest, "only pdf uploads are supported")
	}

	if err := os.MkdirAll(c.uploadDir, 0o755); err != nil {
		return err
	}
	savedPath := filepath.Join(c.uploadDir, fmt.Sprintf("%s.pdf", uuid.New()))
	if err := ctx.SaveFile(fileHeader, savedPath); err != nil {
		return err
	}

	displayName := ctx.FormValue("display_name")
	if displayName == "" {
		displayName = strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename))
	}

	res, err := c.documentService.UploadPDF(ctx.Context(), userId, courseId, displayName, savedPath)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "course not found")
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Document queued for processing", res))
}

func (c *documentController) ImportURL(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.ImportURLRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.ImportURL(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "course not found")
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Document queued for processing", res))
}

func (c *documentController) ImportTranscript(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.ImportTranscriptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.ImportTranscript(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "course not found")
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Document queued for processing", res))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	courseId, _ := uuid.Parse(ctx.Params("courseId"))

	res, err := c.documentService.List(ctx.Context(), userId, courseId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "course not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.documentService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "document not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show document", res))
}

func (c *documentController) Status(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.documentService.Status(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "document not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show document status", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.documentService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete document", nil))
}
