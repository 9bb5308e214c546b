package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hiresight/resume-relevance/internal/models"
	"hiresight/resume-relevance/internal/repositories"
	"hiresight/resume-relevance/internal/services"
)

type EvaluateHandler struct {
	evalRepo repositories.EvaluationRepository
	jobRepo  repositories.JobRepository
	docRepo  repositories.DocumentRepository
	worker   services.Worker
}

func NewEvaluateHandler(
	evalRepo repositories.EvaluationRepository,
	jobRepo repositories.JobRepository,
	docRepo repositories.DocumentRepository,
	worker services.Worker,
) *EvaluateHandler {
	return &EvaluateHandler{
		evalRepo: evalRepo,
		jobRepo:  jobRepo,
		docRepo:  docRepo,
		worker:   worker,
	}
}

// HandleEvaluate creates a queued batch for a job against a set of uploaded
// resumes and hands it to the worker. Responds 202 immediately; results are
// fetched from the batch endpoint.
func (h *EvaluateHandler) HandleEvaluate(c *fiber.Ctx) error {
	var req models.EvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job_id",
		})
	}

	if len(req.ResumeDocumentIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "provide both a job description and at least one resume",
		})
	}

	resumeIDs := make([]uuid.UUID, 0, len(req.ResumeDocumentIDs))
	for _, raw := range req.ResumeDocumentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid resume document id: " + raw,
			})
		}
		resumeIDs = append(resumeIDs, id)
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "job not found",
		})
	}

	docs, err := h.docRepo.FindByIDs(resumeIDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to look up resume documents",
		})
	}

	byID := make(map[uuid.UUID]models.Document, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc
	}

	// Items are created in request order so results come back in the same
	// order the resumes were submitted.
	items := make([]models.Evaluation, 0, len(resumeIDs))
	for i, id := range resumeIDs {
		doc, ok := byID[id]
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "resume document not found: " + id.String(),
			})
		}
		if doc.Kind != models.DocumentKindResume {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "document is not a resume: " + id.String(),
			})
		}

		items = append(items, models.Evaluation{
			ID:               uuid.New(),
			JobID:            job.ID,
			ResumeDocumentID: doc.ID,
			Position:         i,
			Status:           models.StatusPending,
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		})
	}

	batch := models.Batch{
		ID:        uuid.New(),
		JobID:     job.ID,
		Status:    models.BatchStatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.evalRepo.CreateBatch(&batch, items); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create evaluation batch",
		})
	}

	h.worker.EnqueueBatch(batch.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.EvaluateResponse{
		BatchID: batch.ID.String(),
		Status:  string(batch.Status),
	})
}
