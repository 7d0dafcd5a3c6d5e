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

type IStudyGuideController interface {
	RegisterRoutes(r fiber.Router)
}

type studyGuideController struct {
	studyGuideService service.IStudyGuideService
	logger            logger.ILogger
}

func NewStudyGuideController(studyGuideService service.IStudyGuideService, log logger.ILogger) IStudyGuideController {
	return &studyGuideController{
		studyGuideService: studyGuideService,
		logger:            log,
	}
}

func (c *studyGuideController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/studyguide/v1")
	h.Use("ws", serverutils.JwtQueryMiddleware, func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	h.Get("ws", websocket.New(c.stream))
}

type studyGuideFrame struct {
	CourseId uuid.UUID `json:"course_id"`
	Topic    string    `json:"topic"`
}

// stream generates study guides over a websocket. Each request frame gets
// chunk frames, a sources frame, then a done frame.
func (c *studyGuideController) stream(conn *websocket.Conn) {
	defer conn.Close()

	userIdStr, _ := conn.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		_ = conn.WriteJSON(dto.StreamFrame{Type: "error", Error: "unauthorized"})
		return
	}

	// Same reader-goroutine shape as the chat stream: a disconnect while a
	// guide is generating cancels the context.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frames := make(chan studyGuideFrame)
	go func() {
		defer close(frames)
		for {
			var frame studyGuideFrame
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
		if frame.CourseId == uuid.Nil {
			_ = conn.WriteJSON(dto.StreamFrame{Type: "error", Error: "course_id is required"})
			continue
		}

		req := &dto.GenerateStudyGuideRequest{CourseId: frame.CourseId, Topic: frame.Topic}
		delivered := false
		err := c.studyGuideService.GenerateStream(ctx, userId, req, func(ev engine.StreamEvent) {
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
			if !delivered {
				_ = conn.WriteJSON(dto.StreamFrame{Type: "error", Error: err.Error()})
			}
			c.logger.Warn("studyguide", "stream ended with error", map[string]interface{}{
				"course_id": frame.CourseId,
				"error":     err.Error(),
			})
		}
	}
}
