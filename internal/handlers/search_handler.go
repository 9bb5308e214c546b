package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"hiresight/resume-relevance/internal/models"
	"hiresight/resume-relevance/internal/services"
)

// SearchHandler finds previously evaluated resumes semantically similar to a
// free-text query.
type SearchHandler struct {
	embedder services.EmbeddingProvider
	index    services.EvaluationIndex
	logger   *zap.Logger
}

func NewSearchHandler(embedder services.EmbeddingProvider, index services.EvaluationIndex, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		embedder: embedder,
		index:    index,
		logger:   logger,
	}
}

func (h *SearchHandler) HandleSearch(c *fiber.Ctx) error {
	var req models.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text is required",
		})
	}

	limit := req.Limit
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	embedding, err := h.embedder.Embed(c.Context(), req.Text)
	if err != nil {
		h.logger.Warn("query embedding failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "failed to embed query",
		})
	}

	hits, err := h.index.SearchResumes(c.Context(), embedding, limit)
	if err != nil {
		h.logger.Error("resume search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "search failed",
		})
	}

	results := make([]models.SearchHit, 0, len(hits))
	for _, hit := range hits {
		results = append(results, models.SearchHit{
			EvaluationID: hit.EvaluationID,
			ResumeFile:   hit.ResumeFile,
			Verdict:      hit.Verdict,
			TotalScore:   hit.TotalScore,
			Similarity:   hit.Score,
		})
	}

	return c.JSON(fiber.Map{"results": results})
}
