package handlers

import (
	"errors"

	"admitiq/internal/dto"
	"admitiq/internal/service"
	"admitiq/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// SendMessage godoc
// @Summary Send a chat message
// @Description Answer a user message: greeting, previous-question recall, knowledge base answer or a clarification request
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat message"
// @Security Bearer
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/chat [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	sessionID, role, err := getSession(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.chatService.Reply(c.Context(), sessionID, role, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Message is required",
			})
		}
		h.logger.Error("Failed to reply", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reply",
		})
	}

	return c.JSON(resp)
}

func getSession(c *fiber.Ctx) (uuid.UUID, string, error) {
	sessionIDStr, ok := c.Locals(middleware.LocalSessionID).(string)
	if !ok {
		return uuid.Nil, "", fiber.ErrUnauthorized
	}
	role, ok := c.Locals(middleware.LocalRole).(string)
	if !ok {
		return uuid.Nil, "", fiber.ErrUnauthorized
	}

	sessionID, err := uuid.Parse(sessionIDStr)
	if err != nil {
		return uuid.Nil, "", err
	}

	return sessionID, role, nil
}
