package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hiresight/resume-relevance/internal/models"
	"hiresight/resume-relevance/internal/repositories"
	"hiresight/resume-relevance/internal/services"
)

// ReportHandler produces a narrative breakdown for a single (job, resume)
// pair on demand, scoring synchronously.
type ReportHandler struct {
	jobRepo   repositories.JobRepository
	docRepo   repositories.DocumentRepository
	extractor services.TextExtractor
	sections  *services.SectionExtractor
	scorer    *services.RelevanceScorer
	reports   services.NarrativeReportProvider
	logger    *zap.Logger
}

func NewReportHandler(
	jobRepo repositories.JobRepository,
	docRepo repositories.DocumentRepository,
	extractor services.TextExtractor,
	sections *services.SectionExtractor,
	scorer *services.RelevanceScorer,
	reports services.NarrativeReportProvider,
	logger *zap.Logger,
) *ReportHandler {
	return &ReportHandler{
		jobRepo:   jobRepo,
		docRepo:   docRepo,
		extractor: extractor,
		sections:  sections,
		scorer:    scorer,
		reports:   reports,
		logger:    logger,
	}
}

func (h *ReportHandler) HandleReport(c *fiber.Ctx) error {
	var req models.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid job_id"})
	}
	docID, err := uuid.Parse(req.ResumeDocumentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid resume_document_id"})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}

	doc, err := h.docRepo.FindByID(docID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "resume document not found"})
	}
	if doc.Kind != models.DocumentKindResume {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "document is not a resume"})
	}

	resumeText, err := h.extractor.Extract(c.Context(), doc.FilePath)
	if err != nil {
		h.logger.Warn("resume extraction failed",
			zap.String("resume", doc.OriginalFileName),
			zap.Error(err),
		)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": services.ErrorKind(err),
		})
	}

	jdSections := h.sections.ExtractJDSections(services.Normalize(job.Description))
	if declared := job.SkillList(); len(declared) > 0 {
		jdSections.MustHaveSkills = declared
	}
	if jdSections.RoleTitle == "" {
		jdSections.RoleTitle = job.Title
	}

	result, err := h.scorer.Score(c.Context(), resumeText, job.Description, jdSections)
	if err != nil {
		h.logger.Warn("scoring failed",
			zap.String("resume", doc.OriginalFileName),
			zap.Error(err),
		)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": services.ErrorKind(err),
		})
	}

	report, err := h.reports.Generate(c.Context(), services.ReportInput{
		RoleTitle:  jdSections.RoleTitle,
		ResumeText: resumeText,
		JDText:     job.Description,
		Result:     result,
	})
	if err != nil {
		h.logger.Error("report generation failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "failed to generate report",
		})
	}

	return c.JSON(fiber.Map{
		"job_id":     job.ID.String(),
		"resume":     doc.OriginalFileName,
		"total":      result.TotalScore,
		"verdict":    result.Verdict,
		"suggestion": result.Suggestion,
		"report":     report,
	})
}
