package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hiresight/resume-relevance/internal/models"
	"hiresight/resume-relevance/internal/repositories"
	"hiresight/resume-relevance/internal/services"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload accepts multipart uploads: any number of "resume" files and at
// most one "job_description" file, each PDF or DOCX.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File

	var responses []models.UploadResponse

	for _, resumeFile := range files["resume"] {
		resp, status, err := h.saveDocument(resumeFile, models.DocumentKindResume)
		if err != nil {
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
		responses = append(responses, *resp)
	}

	if jdFiles, exists := files["job_description"]; exists && len(jdFiles) > 0 {
		resp, status, err := h.saveDocument(jdFiles[0], models.DocumentKindJD)
		if err != nil {
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
		responses = append(responses, *resp)
	}

	if len(responses) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no valid files uploaded, send 'resume' and/or 'job_description' as PDF or DOCX",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "files uploaded successfully",
		"documents": responses,
	})
}

func (h *UploadHandler) saveDocument(file *multipart.FileHeader, kind models.DocumentKind) (*models.UploadResponse, int, error) {
	if file.Size > h.maxFileSize {
		return nil, fiber.StatusBadRequest, fmt.Errorf("file %s too large, max size: %d bytes", file.Filename, h.maxFileSize)
	}

	filename, filePath, err := h.storageService.SaveFile(file, string(kind))
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedFormat) {
			return nil, fiber.StatusBadRequest, err
		}
		return nil, fiber.StatusInternalServerError, fmt.Errorf("failed to save file: %w", err)
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		Kind:             kind,
		FilePath:         filePath,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return nil, fiber.StatusInternalServerError, fmt.Errorf("failed to save document record: %w", err)
	}

	return &models.UploadResponse{
		ID:           doc.ID.String(),
		Filename:     doc.Filename,
		OriginalName: doc.OriginalFileName,
		Kind:         string(doc.Kind),
	}, fiber.StatusCreated, nil
}
