package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/config"
	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/domain/chat"
	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/infrastructure/auth"
	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/infrastructure/cache"
	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/infrastructure/database"
	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/infrastructure/llmprovider"
	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/infrastructure/logger"
	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/infrastructure/observability"
	repo "github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/infrastructure/repository/conversation"
	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/interfaces/httpserver"
)

// Application hosts the HTTP server and the shared store clients whose
// lifecycle (connect, use, close) is owned here, not by the pipeline.
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	replyCache, err := cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer func() {
		if err := replyCache.Close(); err != nil {
			log.Error().Err(err).Msg("close redis")
		}
	}()

	generator := llmprovider.NewClient(llmprovider.Config{
		APIKey:    cfg.GroqAPIKey,
		BaseURL:   cfg.GroqBaseURL,
		Model:     cfg.GroqModel,
		MaxTokens: cfg.GroqMaxTokens,
		Timeout:   cfg.GroqTimeout,
	})

	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	conversationRepository := repo.NewPostgresRepository(db)
	chatService := chat.NewService(conversationRepository, replyCache, generator, log)

	httpServer := httpserver.New(cfg, log, chatService, authValidator)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
