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

	"interviewsystem/api/internal/config"
	"interviewsystem/api/internal/handlers"
	"interviewsystem/api/internal/interview"
	"interviewsystem/api/internal/middleware"
	"interviewsystem/api/internal/repositories"
	"interviewsystem/api/internal/services"
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
	userRepo := repositories.NewUserRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	responseRepo := repositories.NewInterviewResponseRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	resumeParser := services.NewResumeParserService()
	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Interview.LLMTimeout)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant response index
	responseIndex, err := services.NewResponseIndex(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := responseIndex.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize background indexer
	indexer := services.NewIndexer(
		responseRepo,
		geminiService,
		responseIndex,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
	)

	ctx := context.Background()
	indexer.Start(ctx)
	log.Println("✅ Indexer started successfully")

	// Initialize pipeline services
	generator := services.NewQuestionGeneratorService(geminiService, cfg.Interview.QuestionCount)
	evaluator := services.NewAnswerEvaluatorService(geminiService)
	responseService := services.NewResponseService(
		responseRepo,
		jobRepo,
		companyRepo,
		geminiService,
		responseIndex,
		indexer,
	)
	sessionManager := interview.NewManager(jobRepo, resumeRepo, generator, evaluator, responseService)
	log.Println("✅ Interview pipeline initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.Auth.TokenTTL)
	jobHandler := handlers.NewJobHandler(jobRepo, companyRepo)
	resumeHandler := handlers.NewResumeHandler(resumeRepo, storageService, resumeParser, cfg.Storage.MaxFileSize)
	interviewHandler := handlers.NewInterviewHandler(sessionManager)
	responseHandler := handlers.NewResponseHandler(responseService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Interview System API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	requireAuth := middleware.RequireAuth(authService)

	// Routes
	api := app.Group("/api")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/auth/register", authHandler.HandleRegister)
	api.Post("/auth/login", authHandler.HandleLogin)

	api.Get("/jobs", jobHandler.HandleList)
	api.Get("/jobs/:id", jobHandler.HandleGet)
	api.Post("/jobs", requireAuth, jobHandler.HandleCreate)

	api.Post("/resumes", requireAuth, resumeHandler.HandleUpload)

	api.Post("/interviews", requireAuth, interviewHandler.HandleStart)
	api.Get("/interviews/:id", requireAuth, interviewHandler.HandleGet)
	api.Post("/interviews/:id/answers", requireAuth, interviewHandler.HandleSubmitAnswer)
	api.Post("/interviews/:id/previous", requireAuth, interviewHandler.HandlePrevious)

	api.Post("/interview-responses", requireAuth, responseHandler.HandleSave)
	api.Get("/interview-responses", responseHandler.HandleQuery)
	api.Get("/interview-responses/search", responseHandler.HandleSearch)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Interview System API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/auth/register",
				"POST /api/auth/login",
				"GET /api/jobs",
				"POST /api/resumes",
				"POST /api/interviews",
				"POST /api/interview-responses",
				"GET /api/interview-responses",
				"GET /api/interview-responses/search",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		indexer.Stop()
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
