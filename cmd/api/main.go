package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"hiresight/resume-relevance/internal/config"
	"hiresight/resume-relevance/internal/handlers"
	"hiresight/resume-relevance/internal/logger"
	"hiresight/resume-relevance/internal/repositories"
	"hiresight/resume-relevance/internal/services"
)

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

	docRepo := repositories.NewDocumentRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	evalRepo := repositories.NewEvaluationRepository(db)

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		zlog.Fatal("failed to create upload directory", zap.Error(err))
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

	sections := services.NewSectionExtractor(services.SectionConfig{
		MaxSkills:        cfg.Scoring.MaxResumeSkills,
		MaxBullets:       cfg.Scoring.MaxBullets,
		ResumeSkillVocab: cfg.Scoring.ResumeSkillVocab,
		JDSkillVocab:     cfg.Scoring.JDSkillVocab,
	})
	hard := services.NewHardMatcher(cfg.Scoring.FuzzyThreshold)
	soft := services.NewSemanticMatcher(geminiService)
	scorer := services.NewRelevanceScorer(
		sections,
		hard,
		soft,
		cfg.Scoring.HighThreshold,
		cfg.Scoring.MediumThreshold,
		zlog,
	)

	extractor := services.NewDocumentExtractor()
	batchEvaluator := services.NewBatchEvaluator(
		extractor,
		sections,
		scorer,
		cfg.Worker.Concurrency,
		cfg.Worker.ItemTimeout,
		zlog,
	)

	evaluatorService := services.NewEvaluatorService(evalRepo, jobRepo, batchEvaluator, index, zlog)

	worker := services.NewWorker(evalRepo, evaluatorService, cfg.Worker.Concurrency, zlog)
	worker.Start(ctx)

	chunker := services.NewTextChunker()
	reports := services.NewNarrativeReportProvider(cfg.Report.Provider, geminiService, chunker, zlog)
	exporter := services.NewResultExporter()

	uploadHandler := handlers.NewUploadHandler(docRepo, storageService, cfg.Storage.MaxFileSize)
	jobHandler := handlers.NewJobHandler(jobRepo)
	evaluateHandler := handlers.NewEvaluateHandler(evalRepo, jobRepo, docRepo, worker)
	resultHandler := handlers.NewResultHandler(evalRepo, jobRepo, exporter, zlog)
	reportHandler := handlers.NewReportHandler(jobRepo, docRepo, extractor, sections, scorer, reports, zlog)
	searchHandler := handlers.NewSearchHandler(geminiService, index, zlog)

	app := fiber.New(fiber.Config{
		AppName:      "Resume Relevance API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/upload", uploadHandler.HandleUpload)
	api.Post("/jobs", jobHandler.HandleCreate)
	api.Get("/jobs", jobHandler.HandleList)
	api.Get("/jobs/:id", jobHandler.HandleGet)
	api.Post("/evaluate", evaluateHandler.HandleEvaluate)
	api.Get("/batches/:id", resultHandler.HandleGetBatch)
	api.Get("/batches/:id/export", resultHandler.HandleExportBatch)
	api.Get("/evaluations", resultHandler.HandleListEvaluations)
	api.Post("/report", reportHandler.HandleReport)
	api.Post("/search", searchHandler.HandleSearch)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Relevance API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"POST /api/v1/jobs",
				"GET /api/v1/jobs",
				"GET /api/v1/jobs/:id",
				"POST /api/v1/evaluate",
				"GET /api/v1/batches/:id",
				"GET /api/v1/batches/:id/export",
				"GET /api/v1/evaluations",
				"POST /api/v1/report",
				"POST /api/v1/search",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
