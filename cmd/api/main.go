// @title QuizForge API
// @version 1.0
// @description Upload documents and generate multiple-choice quizzes automatically.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quizforge/internal/adapter"
	"quizforge/internal/adapter/explain"
	"quizforge/internal/analyzer"
	"quizforge/internal/cache"
	"quizforge/internal/config"
	"quizforge/internal/database"
	"quizforge/internal/domain"
	"quizforge/internal/extractor"
	"quizforge/internal/handler"
	"quizforge/internal/logger"
	"quizforge/internal/middleware"
	"quizforge/internal/quizgen"
	"quizforge/internal/repository"
	"quizforge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// The linguistic analyzer is loaded once per process and shared
	// read-only by all generation calls.
	proseAnalyzer, err := analyzer.NewProseAnalyzer()
	if err != nil {
		appLogger.Fatal("Failed to initialize linguistic analyzer", zap.Error(err))
	}
	appLogger.Info("Linguistic analyzer initialized")

	generator := quizgen.NewGenerator(proseAnalyzer, nil)
	extractors := extractor.NewRegistry()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Oracle database")

	documentRepository := repository.NewDocumentDatabaseAdapter(db)
	courseRepository := repository.NewCourseDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	var explainer domain.OptionExplainer
	if cfg.Explainer.Enabled {
		llm, err := ollama.New(
			ollama.WithServerURL(cfg.Explainer.ServerURL),
			ollama.WithModel(cfg.Explainer.Model),
		)
		if err != nil {
			appLogger.Fatal("Failed to create explainer LLM client", zap.Error(err))
		}
		explainer = explain.NewLLMExplainer(llm)
		appLogger.Info("Option explainer initialized", zap.String("model", cfg.Explainer.Model))
	}

	documentService := service.NewDocumentService(
		generator, extractors, documentRepository, courseRepository,
		txManager, cacheAdapter, explainer, cfg,
	)
	courseService := service.NewCourseService(courseRepository)

	authService, err := service.NewAuthService(cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	documentHandler := handler.NewDocumentHandler(documentService, cfg)
	courseHandler := handler.NewCourseHandler(courseService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	apiGroup := app.Group("/api")

	courseGroup := apiGroup.Group("/courses", middleware.Protected(authService))
	courseGroup.Post("/", courseHandler.CreateCourse)
	courseGroup.Get("/:courseId", courseHandler.GetCourse)
	courseGroup.Post("/:courseId/documents", documentHandler.UploadDocument)
	courseGroup.Get("/:courseId/documents/:documentId/quizzes", documentHandler.GetDocumentQuizzes)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
