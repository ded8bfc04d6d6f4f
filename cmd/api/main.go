package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jobtrail/jobtrail/internal/auth"
	"github.com/jobtrail/jobtrail/internal/config"
	"github.com/jobtrail/jobtrail/internal/handlers"
	"github.com/jobtrail/jobtrail/internal/logger"
	"github.com/jobtrail/jobtrail/internal/services"
	"github.com/jobtrail/jobtrail/internal/sheets"
	"github.com/jobtrail/jobtrail/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading configuration: ", err)
	}

	zlog := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	defer zlog.Sync()

	ctx := context.Background()

	// Local collection slot
	slot, err := buildSlot(ctx, cfg.Store)
	if err != nil {
		zlog.Fatal("failed to open collection slot", zap.Error(err))
	}
	st := store.New(slot, zlog)

	// Core services
	jobService := services.NewJobService(ctx, st, zlog)
	matcherService := services.NewMatcherService(jobService)

	llmService, err := services.NewLLMService(ctx, cfg.LLM, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize LLM client", zap.Error(err))
	}

	// Spreadsheet sync is optional: without credentials the tracker
	// still works, only the sync endpoints report unconfigured.
	var sheetsClient *sheets.Client
	httpClient, err := auth.GetSheetsClient(ctx, cfg.Sheets.CredentialsFile, cfg.Sheets.TokenFile)
	if err != nil {
		zlog.Warn("spreadsheet sync disabled", zap.Error(err))
	} else {
		sheetsClient, err = sheets.NewClient(ctx, httpClient, cfg.Sheets.SpreadsheetName, zlog)
		if err != nil {
			zlog.Fatal("failed to create sheets client", zap.Error(err))
		}
		zlog.Info("spreadsheet sync enabled", zap.String("spreadsheet", cfg.Sheets.SpreadsheetName))
	}

	// Handlers
	jobHandler := handlers.NewJobHandler(llmService, jobService, matcherService)
	portingHandler := handlers.NewPortingHandler(jobService)
	syncHandler := handlers.NewSyncHandler(jobService, sheetsClient)

	// Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		api.GET("/jobs", jobHandler.ListJobs)
		api.POST("/jobs", jobHandler.CreateJob)
		api.GET("/jobs/:id", jobHandler.GetJob)
		api.PATCH("/jobs/:id", jobHandler.UpdateJob)
		api.DELETE("/jobs/:id", jobHandler.DeleteJob)
		api.POST("/jobs/extract", jobHandler.ParseJob)
		api.POST("/jobs/:id/questions", jobHandler.SuggestQuestions)
		api.POST("/jobs/:id/emails", jobHandler.AddEmail)
		api.POST("/jobs/:id/events", jobHandler.AddEvent)
		api.POST("/jobs/:id/contacts", jobHandler.AddContact)

		api.POST("/emails/analyze", jobHandler.AnalyzeEmail)

		api.GET("/export", portingHandler.Export)
		api.POST("/import", portingHandler.Import)

		api.POST("/sync/records/:id", syncHandler.PushOne)
		api.DELETE("/sync/records/:id", syncHandler.DeleteOne)
		api.GET("/sync/records", syncHandler.Pull)
	}

	addr := ":" + cfg.Server.Port
	zlog.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zlog.Fatal("server failed", zap.Error(err))
	}
}

func buildSlot(ctx context.Context, cfg config.StoreConfig) (store.Slot, error) {
	if cfg.Backend == "redis" {
		client, err := store.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return store.NewRedisSlot(client, cfg.RedisKey), nil
	}
	return store.NewFileSlot(cfg.FilePath), nil
}
