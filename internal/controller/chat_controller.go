package controller

import (
	"prospectus-rag-be/internal/dto"
	"prospectus-rag-be/internal/pkg/logger"
	"prospectus-rag-be/internal/pkg/serverutils"
	"prospectus-rag-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Root(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	sysLogger   logger.ILogger
}

func NewChatController(chatService service.IChatService, sysLogger logger.ILogger) IChatController {
	return &chatController{
		chatService: chatService,
		sysLogger:   sysLogger,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Root)
	r.Post("/chat", c.Chat)
	r.Get("/chat/history", c.History)
}

// Root reports readiness. "ready" requires every startup singleton in place.
func (c *chatController) Root(ctx *fiber.Ctx) error {
	status := "not ready"
	if c.chatService != nil && c.chatService.Ready() {
		status = "ready"
	}

	return ctx.JSON(dto.ReadinessResponse{
		Message:       "prospectus rag api is running.",
		Status:        status,
		Docs:          "/docs",
		DocumentCount: c.chatService.DocumentCount(),
	})
}

// Chat answers one question. Failures are reported in the body with HTTP 200,
// matching the upstream API: the error kind distinction (not ready vs
// pipeline failure) lives in the body, the cause only in the server log.
func (c *chatController) Chat(ctx *fiber.Ctx) error {
	if c.chatService == nil || !c.chatService.Ready() {
		return ctx.JSON(dto.ChatErrorResponse{
			Error: "service not ready. please try again later.",
		})
	}

	var req dto.ChatRequest
	// Query parameters take precedence; fall back to a JSON body
	req.Question = ctx.Query("question")
	req.SessionId = ctx.Query("session_id")
	if req.Question == "" && len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return ctx.JSON(dto.ChatErrorResponse{
				Error: "invalid request body",
			})
		}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.JSON(dto.ChatErrorResponse{
			Error: err.Error(),
		})
	}

	res, err := c.chatService.Ask(ctx.Context(), &req)
	if err != nil {
		c.sysLogger.Error("chat", "error processing chat request", map[string]interface{}{
			"session_id": req.SessionId,
			"error":      err.Error(),
		})
		return ctx.JSON(dto.ChatErrorResponse{
			Error:    "internal server error. please try again later.",
			Question: req.Question,
		})
	}

	return ctx.JSON(res)
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	sessionId := ctx.Query("session_id")

	res, err := c.chatService.GetHistory(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}
