package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hiresight/resume-relevance/internal/models"
	"hiresight/resume-relevance/internal/repositories"
)

// EvaluatorService drives one queued batch end to end: load the job and its
// resume items, score every resume against the job description, and persist
// each item's result or failure.
type EvaluatorService interface {
	ProcessBatch(ctx context.Context, batchID uuid.UUID) error
}

type evaluatorService struct {
	evalRepo repositories.EvaluationRepository
	jobRepo  repositories.JobRepository
	batch    *BatchEvaluator
	index    EvaluationIndex
	logger   *zap.Logger
}

func NewEvaluatorService(
	evalRepo repositories.EvaluationRepository,
	jobRepo repositories.JobRepository,
	batch *BatchEvaluator,
	index EvaluationIndex,
	logger *zap.Logger,
) EvaluatorService {
	return &evaluatorService{
		evalRepo: evalRepo,
		jobRepo:  jobRepo,
		batch:    batch,
		index:    index,
		logger:   logger,
	}
}

func (e *evaluatorService) ProcessBatch(ctx context.Context, batchID uuid.UUID) error {
	if err := e.evalRepo.UpdateBatchStatus(batchID, models.BatchStatusProcessing); err != nil {
		return fmt.Errorf("failed to update batch status: %w", err)
	}

	e.logger.Info("starting batch evaluation", zap.String("batch_id", batchID.String()))

	batch, err := e.evalRepo.FindBatchByID(batchID)
	if err != nil {
		e.evalRepo.UpdateBatchError(batchID, err.Error())
		return fmt.Errorf("failed to get batch: %w", err)
	}

	job, err := e.jobRepo.FindByID(batch.JobID)
	if err != nil {
		e.evalRepo.UpdateBatchError(batchID, fmt.Sprintf("job not found: %v", err))
		return fmt.Errorf("failed to get job: %w", err)
	}

	items, err := e.evalRepo.FindItemsByBatchID(batchID)
	if err != nil {
		e.evalRepo.UpdateBatchError(batchID, err.Error())
		return fmt.Errorf("failed to get batch items: %w", err)
	}

	resumes := make([]BatchItem, len(items))
	for i, item := range items {
		resumes[i] = BatchItem{
			Ref:  item.ResumeDocument.OriginalFileName,
			Path: item.ResumeDocument.FilePath,
		}
	}

	results, err := e.batch.Evaluate(ctx, job.Description, job.SkillList(), resumes)
	if err != nil {
		e.evalRepo.UpdateBatchError(batchID, err.Error())
		return fmt.Errorf("failed to evaluate batch: %w", err)
	}

	for i, res := range results {
		item := items[i]
		if res.Err != nil {
			e.logger.Warn("resume evaluation failed",
				zap.String("batch_id", batchID.String()),
				zap.String("resume", res.Ref),
				zap.String("kind", ErrorKind(res.Err)),
				zap.Error(res.Err),
			)
			if err := e.evalRepo.UpdateItemError(item.ID, ErrorKind(res.Err), res.Err.Error()); err != nil {
				e.logger.Error("failed to persist item error", zap.Error(err))
			}
			continue
		}

		if err := e.saveItemResult(item.ID, res.Result); err != nil {
			e.logger.Error("failed to persist item result",
				zap.String("resume", res.Ref),
				zap.Error(err),
			)
			e.evalRepo.UpdateItemError(item.ID, "Internal", err.Error())
			continue
		}

		e.indexResult(ctx, item.ID, res.Ref, res.Result)
	}

	if err := e.evalRepo.UpdateBatchStatus(batchID, models.BatchStatusCompleted); err != nil {
		return fmt.Errorf("failed to complete batch: %w", err)
	}

	e.logger.Info("batch evaluation completed",
		zap.String("batch_id", batchID.String()),
		zap.Int("resumes", len(results)),
	)
	return nil
}

func (e *evaluatorService) saveItemResult(itemID uuid.UUID, result *MatchResult) error {
	matched, err := json.Marshal(result.MatchedPairs)
	if err != nil {
		return fmt.Errorf("failed to marshal matched skills: %w", err)
	}
	missing, err := json.Marshal(result.MissingSkills)
	if err != nil {
		return fmt.Errorf("failed to marshal missing skills: %w", err)
	}

	return e.evalRepo.UpdateItemResult(itemID, &repositories.EvaluationResultData{
		HardScore:        result.HardScore,
		SoftScore:        result.SoftScore,
		TotalScore:       result.TotalScore,
		Verdict:          string(result.Verdict),
		MatchedSkills:    string(matched),
		MissingSkills:    string(missing),
		Suggestion:       result.Suggestion,
		ObjectiveSnippet: result.Objective,
	})
}

// indexResult pushes the resume embedding into the similarity index. Index
// failures never fail the evaluation.
func (e *evaluatorService) indexResult(ctx context.Context, itemID uuid.UUID, ref string, result *MatchResult) {
	if e.index == nil || len(result.ResumeEmbedding) == 0 {
		return
	}

	err := e.index.IndexResume(ctx, itemID.String(), ref, string(result.Verdict), result.TotalScore, result.ResumeEmbedding)
	if err != nil {
		e.logger.Warn("failed to index resume embedding",
			zap.String("resume", ref),
			zap.Error(err),
		)
	}
}
