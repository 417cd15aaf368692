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
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"smarthire/candidate-ranker/internal/config"
	"smarthire/candidate-ranker/internal/handlers"
	"smarthire/candidate-ranker/internal/repositories"
	"smarthire/candidate-ranker/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	jobRepo := repositories.NewJobRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	rankingRepo := repositories.NewRankingRepository(db)
	procRepo := repositories.NewProcessingJobRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.EmbedModel,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize services
	pdfParser := services.NewPDFParserService()
	extractor := services.NewResumeExtractor(geminiService, cfg.Worker.RetryMaxAttempts)
	normalizer := services.NewCandidateNormalizer(appRepo, pdfParser, extractor)
	scorer := services.NewScorer(geminiService)
	feedback := services.NewFeedbackGenerator(geminiService, cfg.Worker.RetryMaxAttempts)

	ranker := services.NewRankingService(
		jobRepo,
		appRepo,
		rankingRepo,
		procRepo,
		normalizer,
		scorer,
		feedback,
		cfg.Worker.PacingInterval,
	)
	log.Println("✅ Ranking service initialized")

	// Initialize worker
	worker := services.NewWorker(
		procRepo,
		ranker,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
		cfg.Worker.StaleClaimAge,
	)

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)

	// Initialize handlers
	rankHandler := handlers.NewRankHandler(worker)
	statusHandler := handlers.NewStatusHandler(procRepo, rankingRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Candidate Ranker API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/jobs/:jobID/rank", rankHandler.HandleStartRanking)
	api.Get("/jobs/:jobID/ranking-status", statusHandler.HandleGetStatus)
	api.Get("/jobs/:jobID/rankings", statusHandler.HandleGetRankings)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Candidate Ranker API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/jobs/:jobID/rank",
				"GET /api/v1/jobs/:jobID/ranking-status",
				"GET /api/v1/jobs/:jobID/rankings",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
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
