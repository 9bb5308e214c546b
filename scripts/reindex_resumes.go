package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"hiresight/resume-relevance/internal/config"
	"hiresight/resume-relevance/internal/logger"
	"hiresight/resume-relevance/internal/models"
	"hiresight/resume-relevance/internal/repositories"
	"hiresight/resume-relevance/internal/services"
)

// Rebuilds the Qdrant similarity index from completed evaluations. Run after
// wiping the collection or changing the embedding model.
func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}

	ctx := context.Background()

	geminiService, err := services.NewGeminiService(
		ctx,
		cfg.Gemini.APIKey,
		cfg.Gemini.TextModel,
		cfg.Gemini.EmbedModel,
		cfg.Worker.RetryMaxAttempts,
		cfg.Worker.RetryInitialDelay,
		zlog,
	)
	if err != nil {
		zlog.Fatal("failed to initialize gemini client", zap.Error(err))
	}

	index, err := services.NewEvaluationIndex(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		zlog,
	)
	if err != nil {
		zlog.Fatal("failed to initialize qdrant client", zap.Error(err))
	}
	if err := index.InitCollection(); err != nil {
		zlog.Fatal("failed to initialize qdrant collection", zap.Error(err))
	}

	extractor := services.NewDocumentExtractor()
	evalRepo := repositories.NewEvaluationRepository(db)

	items, err := evalRepo.FindAll()
	if err != nil {
		zlog.Fatal("failed to list evaluations", zap.Error(err))
	}

	indexed := 0
	skipped := 0
	failed := 0

	for _, item := range items {
		if item.Status != models.StatusCompleted {
			skipped++
			continue
		}

		text, err := extractor.Extract(ctx, item.ResumeDocument.FilePath)
		if err != nil {
			zlog.Warn("failed to extract resume",
				zap.String("evaluation_id", item.ID.String()),
				zap.String("resume", item.ResumeDocument.OriginalFileName),
				zap.Error(err),
			)
			failed++
			continue
		}

		embedding, err := geminiService.Embed(ctx, services.Normalize(text))
		if err != nil {
			zlog.Warn("failed to embed resume",
				zap.String("evaluation_id", item.ID.String()),
				zap.Error(err),
			)
			failed++
			continue
		}

		verdict := ""
		if item.Verdict != nil {
			verdict = *item.Verdict
		}
		total := 0.0
		if item.TotalScore != nil {
			total = *item.TotalScore
		}

		err = index.IndexResume(ctx, item.ID.String(), item.ResumeDocument.OriginalFileName, verdict, total, embedding)
		if err != nil {
			zlog.Warn("failed to index resume",
				zap.String("evaluation_id", item.ID.String()),
				zap.Error(err),
			)
			failed++
			continue
		}

		indexed++
	}

	zlog.Info("reindex finished",
		zap.Int("indexed", indexed),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
	)
}
