package handlers

import (
	"admitiq/internal/dto"
	"admitiq/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type KnowledgeHandler struct {
	matchService *service.MatchService
	records      int
	logger       *zap.Logger
}

func NewKnowledgeHandler(matchService *service.MatchService, records int, logger *zap.Logger) *KnowledgeHandler {
	return &KnowledgeHandler{
		matchService: matchService,
		records:      records,
		logger:       logger,
	}
}

// Match godoc
// @Summary Match a query against the knowledge base
// @Description Return the best knowledge base record for the query and the session role, if it clears the confidence threshold
// @Tags knowledge
// @Accept json
// @Produce json
// @Param request body dto.MatchRequest true "Match request"
// @Security Bearer
// @Success 200 {object} dto.MatchResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/match [post]
func (h *KnowledgeHandler) Match(c *fiber.Ctx) error {
	_, role, err := getSession(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.MatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	match := h.matchService.FindBestMatch(req.Query, role)
	if match == nil {
		return c.JSON(dto.MatchResponse{Matched: false})
	}

	return c.JSON(dto.MatchResponse{
		Matched:  true,
		Category: match.Category,
		Question: match.Question,
		Answer:   match.Answer,
	})
}

// ListKnowledge godoc
// @Summary List known questions
// @Description List the questions visible to the session role, grouped by category
// @Tags knowledge
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.KnowledgeResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/knowledge [get]
func (h *KnowledgeHandler) ListKnowledge(c *fiber.Ctx) error {
	_, role, err := getSession(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	return c.JSON(dto.KnowledgeResponse{
		Role:       role,
		Categories: h.matchService.Catalog(role),
	})
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *KnowledgeHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:  "ok",
		Records: h.records,
	})
}
