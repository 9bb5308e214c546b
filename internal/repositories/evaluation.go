package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hiresight/resume-relevance/internal/models"
)

type EvaluationRepository interface {
	CreateBatch(batch *models.Batch, items []models.Evaluation) error
	FindBatchByID(id uuid.UUID) (*models.Batch, error)
	FindQueuedBatches(limit int) ([]models.Batch, error)
	UpdateBatchStatus(id uuid.UUID, status models.BatchStatus) error
	UpdateBatchError(id uuid.UUID, errorMsg string) error
	FindItemsByBatchID(batchID uuid.UUID) ([]models.Evaluation, error)
	UpdateItemResult(id uuid.UUID, result *EvaluationResultData) error
	UpdateItemError(id uuid.UUID, errorKind, errorMsg string) error
	FindAll() ([]models.Evaluation, error)
}

type EvaluationResultData struct {
	HardScore        float64
	SoftScore        float64
	TotalScore       float64
	Verdict          string
	MatchedSkills    string
	MissingSkills    string
	Suggestion       string
	ObjectiveSnippet string
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

// CreateBatch persists the batch header and its per-resume items in one
// transaction so a half-created batch is never picked up by the worker.
func (r *evaluationRepository) CreateBatch(batch *models.Batch, items []models.Evaluation) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(batch).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].BatchID = batch.ID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create batch: %w", err)
	}
	return nil
}

func (r *evaluationRepository) FindBatchByID(id uuid.UUID) (*models.Batch, error) {
	var batch models.Batch
	if err := r.db.Preload("Job").Where("id = ?", id).First(&batch).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("batch not found")
		}
		return nil, fmt.Errorf("failed to find batch: %w", err)
	}
	return &batch, nil
}

func (r *evaluationRepository) FindQueuedBatches(limit int) ([]models.Batch, error) {
	var batches []models.Batch
	err := r.db.
		Where("status = ?", models.BatchStatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&batches).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find queued batches: %w", err)
	}

	return batches, nil
}

func (r *evaluationRepository) UpdateBatchStatus(id uuid.UUID, status models.BatchStatus) error {
	result := r.db.Model(&models.Batch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update batch status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("batch not found")
	}

	return nil
}

func (r *evaluationRepository) UpdateBatchError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.Batch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.BatchStatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update batch error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("batch not found")
	}

	return nil
}

// FindItemsByBatchID returns items in the caller's original resume order.
func (r *evaluationRepository) FindItemsByBatchID(batchID uuid.UUID) ([]models.Evaluation, error) {
	var items []models.Evaluation
	err := r.db.
		Preload("ResumeDocument").
		Where("batch_id = ?", batchID).
		Order("position ASC").
		Find(&items).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find batch items: %w", err)
	}

	return items, nil
}

func (r *evaluationRepository) UpdateItemResult(id uuid.UUID, data *EvaluationResultData) error {
	result := r.db.Model(&models.Evaluation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":            models.StatusCompleted,
			"hard_score":        data.HardScore,
			"soft_score":        data.SoftScore,
			"total_score":       data.TotalScore,
			"verdict":           data.Verdict,
			"matched_skills":    data.MatchedSkills,
			"missing_skills":    data.MissingSkills,
			"suggestion":        data.Suggestion,
			"objective_snippet": data.ObjectiveSnippet,
			"updated_at":        time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update item result: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("evaluation not found")
	}

	return nil
}

func (r *evaluationRepository) UpdateItemError(id uuid.UUID, errorKind, errorMsg string) error {
	result := r.db.Model(&models.Evaluation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_kind":    errorKind,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update item error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("evaluation not found")
	}

	return nil
}

func (r *evaluationRepository) FindAll() ([]models.Evaluation, error) {
	var items []models.Evaluation
	err := r.db.
		Preload("ResumeDocument").
		Order("created_at DESC").
		Find(&items).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}

	return items, nil
}
