package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hiresight/resume-relevance/internal/models"
	"hiresight/resume-relevance/internal/repositories"
)

type JobHandler struct {
	jobRepo repositories.JobRepository
}

func NewJobHandler(jobRepo repositories.JobRepository) *JobHandler {
	return &JobHandler{jobRepo: jobRepo}
}

// HandleCreate registers a job posting. The description may be pasted text or
// omitted when a JD document will be attached at evaluation time.
func (h *JobHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if strings.TrimSpace(req.Title) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	job := models.Job{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	job.SetSkillList(req.Skills)

	if err := h.jobRepo.Create(&job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create job",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":     job.ID.String(),
		"title":  job.Title,
		"skills": job.SkillList(),
	})
}

func (h *JobHandler) HandleList(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list jobs",
		})
	}

	type jobView struct {
		ID        string    `json:"id"`
		Title     string    `json:"title"`
		Skills    []string  `json:"skills"`
		CreatedAt time.Time `json:"created_at"`
	}

	views := make([]jobView, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, jobView{
			ID:        job.ID.String(),
			Title:     job.Title,
			Skills:    job.SkillList(),
			CreatedAt: job.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{"jobs": views})
}

func (h *JobHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job id",
		})
	}

	job, err := h.jobRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "job not found",
		})
	}

	return c.JSON(fiber.Map{
		"id":          job.ID.String(),
		"title":       job.Title,
		"description": job.Description,
		"skills":      job.SkillList(),
		"created_at":  job.CreatedAt,
	})
}
