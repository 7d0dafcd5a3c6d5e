package controller

import (
	"context"

	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/pkg/logger"
	"ai-studymate-be/internal/pkg/serverutils"
	"ai-studymate-be/internal/service"
	"ai-studymate-be/pkg/rag/engine"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	logger      logger.ILogger
}

func NewChatController(chatService service.IChatService, log logger.ILogger) IChatController {
	return &chatController{
		chatService: chatService,
		logger:      log,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")

	// Browsers cannot set an Authorization header on a websocket upgrade,
	// so the stream route authenticates through ?token=.
	h.Use("ws/:sessionId", serverutils.JwtQueryMiddleware, func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			ctx.Locals("session_id", ctx.Params("sessionId"))
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	h.Get("ws/:sessionId", websocket.New(c.stream))

	h.Use(serverutils.JwtMiddleware)
	h.Post("session", c.CreateSession)
	h.Get("session/course/:courseId", c.ListSessions)
	h.Delete("session/:id", c.DeleteSession)
	h.Get("session/:id/history", c.History)
	h.Post("session/:id/ask", c.Ask)
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.CreateChatSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.CreateSession(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "course not found")
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create chat session", res))
}

func (c *chatController) ListSessions(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	courseId, _ := uuid.Parse(ctx.Params("courseId"))

	res, err := c.chatService.ListSessions(ctx.Context(), userId, courseId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list chat sessions", res))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.chatService.DeleteSession(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete chat session", nil))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.chatService.History(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "chat session not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show chat history", res))
}

func (c *chatController) Ask(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	sessionId, _ := uuid.Parse(ctx.Params("id"))

	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.SessionId = sessionId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Ask(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "chat session not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

type askFrame struct {
	Question string `json:"question"`
}

// stream serves one chat session over a websocket. The client sends
// {"question": "..."} frames; each answer arrives as chunk frames, then a
// sources frame, then a done frame.
func (c *chatController) stream(conn *websocket.Conn) {
	defer conn.Close()

	userIdStr, _ := conn.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		_ = conn.WriteJSON(dto.StreamFrame{Type: "error", Error: "unauthorized"})
		return
	}

	sessionIdStr, _ := conn.Locals("session_id").(string)
	sessionId, err := uuid.Parse(sessionIdStr)
	if err != nil {
		_ = conn.WriteJSON(dto.StreamFrame{Type: "error", Error: "invalid session id"})
		return
	}

	// Reads run on their own goroutine so a disconnect mid-generation
	// cancels the context instead of waiting for the backend to finish
	// answering a client that is gone.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frames := make(chan askFrame)
	go func() {
		defer close(frames)
		for {
			var frame askFrame
			if err := conn.ReadJSON(&frame); err != nil {
				cancel()
				return
			}
			select {
			case frames <- frame:
			case <-ctx.Done():
				return
			}
		}
	}()

	for frame := range frames {
		if frame.Question == "" {
			_ = conn.WriteJSON(dto.StreamFrame{Type: "error", Error: "question is required"})
			continue
		}

		req := &dto.AskRequest{SessionId: sessionId, Question: frame.Question}
		delivered := false
		err := c.chatService.AskStream(ctx, userId, req, func(ev engine.StreamEvent) {
			delivered = true
			switch {
			case ev.Err != nil:
				_ = conn.WriteJSON(dto.StreamFrame{Type: "error", Error: ev.Err.Error()})
			case ev.Done:
				_ = conn.WriteJSON(dto.StreamFrame{Type: "sources", Citations: citationFrames(ev)})
				_ = conn.WriteJSON(dto.StreamFrame{Type: "done"})
			default:
				_ = conn.WriteJSON(dto.StreamFrame{Type: "chunk", Text: ev.Text})
			}
		})
		if err != nil {
			// Errors raised before the first event never reached the
			// callback, so the client still needs an error frame.
			if !delivered {
				_ = conn.WriteJSON(dto.StreamFrame{Type: "error", Error: err.Error()})
			}
			c.logger.Warn("chat", "stream ended with error", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
		}
	}
}

func citationFrames(ev engine.StreamEvent) []dto.CitationResponse {
	frames := make([]dto.CitationResponse, len(ev.Citations))
	for i, cit := range ev.Citations {
		frames[i] = dto.CitationResponse{
			Number:      cit.Number,
			DocumentId:  cit.DocumentID,
			DisplayName: cit.DisplayName,
			Pages:       cit.Pages,
			Snippet:     cit.Snippet,
		}
	}
	return frames
}
