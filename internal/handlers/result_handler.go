package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hiresight/resume-relevance/internal/models"
	"hiresight/resume-relevance/internal/repositories"
	"hiresight/resume-relevance/internal/services"
)

type ResultHandler struct {
	evalRepo repositories.EvaluationRepository
	jobRepo  repositories.JobRepository
	exporter services.ResultExporter
	logger   *zap.Logger
}

func NewResultHandler(
	evalRepo repositories.EvaluationRepository,
	jobRepo repositories.JobRepository,
	exporter services.ResultExporter,
	logger *zap.Logger,
) *ResultHandler {
	return &ResultHandler{
		evalRepo: evalRepo,
		jobRepo:  jobRepo,
		exporter: exporter,
		logger:   logger,
	}
}

// HandleGetBatch returns the result table for a batch, one row per resume in
// the originally submitted order.
func (h *ResultHandler) HandleGetBatch(c *fiber.Ctx) error {
	batch, rows, status, err := h.loadBatch(c.Params("id"))
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(models.BatchResultResponse{
		BatchID:  batch.ID.String(),
		JobTitle: batch.Job.Title,
		Status:   string(batch.Status),
		Rows:     rows,
	})
}

// HandleExportBatch streams the result table as CSV or XLSX.
func (h *ResultHandler) HandleExportBatch(c *fiber.Ctx) error {
	batch, rows, status, err := h.loadBatch(c.Params("id"))
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	format := c.Query("format", "csv")
	switch format {
	case "csv":
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="results_%s.csv"`, batch.ID))
		if err := h.exporter.WriteCSV(c.Response().BodyWriter(), rows); err != nil {
			h.logger.Error("csv export failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "export failed"})
		}
	case "xlsx":
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="results_%s.xlsx"`, batch.ID))
		if err := h.exporter.WriteXLSX(c.Response().BodyWriter(), batch.Job.Title, rows); err != nil {
			h.logger.Error("xlsx export failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "export failed"})
		}
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unsupported format, use csv or xlsx",
		})
	}

	return nil
}

func (h *ResultHandler) HandleListEvaluations(c *fiber.Ctx) error {
	items, err := h.evalRepo.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list evaluations",
		})
	}

	rows := make([]models.ResultRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, h.resultRow(item))
	}

	return c.JSON(fiber.Map{"evaluations": rows})
}

func (h *ResultHandler) loadBatch(rawID string) (*models.Batch, []models.ResultRow, int, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, nil, fiber.StatusBadRequest, fmt.Errorf("invalid batch id")
	}

	batch, err := h.evalRepo.FindBatchByID(id)
	if err != nil {
		return nil, nil, fiber.StatusNotFound, fmt.Errorf("batch not found")
	}

	items, err := h.evalRepo.FindItemsByBatchID(id)
	if err != nil {
		return nil, nil, fiber.StatusInternalServerError, fmt.Errorf("failed to load batch items")
	}

	rows := make([]models.ResultRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, h.resultRow(item))
	}

	return batch, rows, fiber.StatusOK, nil
}

func (h *ResultHandler) resultRow(item models.Evaluation) models.ResultRow {
	row := models.ResultRow{
		ResumeFile: item.ResumeDocument.OriginalFileName,
	}

	if item.Status == models.StatusFailed {
		kind := "Internal"
		if item.ErrorKind != nil {
			kind = *item.ErrorKind
		}
		row.Error = kind
		if item.ErrorMessage != nil {
			row.Error = fmt.Sprintf("%s: %s", kind, *item.ErrorMessage)
		}
		return row
	}

	row.TotalScore = item.TotalScore
	if item.Verdict != nil {
		row.Verdict = *item.Verdict
	}
	if item.Suggestion != nil {
		row.Suggestion = *item.Suggestion
	}
	if item.ObjectiveSnippet != nil {
		row.Objective = *item.ObjectiveSnippet
	}

	if item.MatchedSkills != nil {
		if err := json.Unmarshal([]byte(*item.MatchedSkills), &row.MatchedSkills); err != nil {
			h.logger.Warn("failed to decode matched skills", zap.String("evaluation_id", item.ID.String()), zap.Error(err))
		}
	}
	if item.MissingSkills != nil {
		if err := json.Unmarshal([]byte(*item.MissingSkills), &row.MissingSkills); err != nil {
			h.logger.Warn("failed to decode missing skills", zap.String("evaluation_id", item.ID.String()), zap.Error(err))
		}
	}

	return row
}
