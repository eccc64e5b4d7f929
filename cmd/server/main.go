// @title Medical Claim Processor API
// @version 1.0
// @description Classifies, extracts and validates medical claim documents and decides the claim.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medclaim/internal/agent"
	"medclaim/internal/client"
	"medclaim/internal/config"
	noopemail "medclaim/internal/email/noop"
	sesemail "medclaim/internal/email/ses"
	"medclaim/internal/handler"
	"medclaim/internal/parser"
	_ "medclaim/internal/parser/claude"
	_ "medclaim/internal/parser/gemini"
	_ "medclaim/internal/parser/openai"
	"medclaim/internal/port"
	"medclaim/internal/repository/memory"
	"medclaim/internal/repository/postgres"
	"medclaim/internal/router"
	"medclaim/internal/service"
	noopstorage "medclaim/internal/storage/noop"
	s3storage "medclaim/internal/storage/s3"
	"medclaim/internal/ui"
	"medclaim/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize repository
	var claimRepo port.ClaimRepository
	if cfg.DB.Enabled {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		claimRepo = postgres.NewClaimRepo(db)
	} else {
		zap.L().Warn("database disabled; claim history is kept in memory")
		claimRepo = memory.NewClaimRepo()
	}

	// Initialize storage
	var archive port.ObjectStorage
	if cfg.S3.Enabled {
		archive, err = s3storage.NewArchive(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 archive: %w", err)
		}
	} else {
		archive = noopstorage.NewStorage()
	}

	// Initialize email
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = sesemail.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.UI.BackendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noopemail.NewNoopSender()
	}

	// Initialize parser chain and agents
	docParser, err := parser.NewChain(&cfg.Parser)
	if err != nil {
		return fmt.Errorf("failed to initialize document parser: %w", err)
	}
	engine, err := validator.NewEngine(validator.NewBuiltinRegistry(), cfg.Validation.Rules)
	if err != nil {
		return fmt.Errorf("failed to initialize validation engine: %w", err)
	}

	// Initialize services
	claimSvc := service.NewClaimService(
		agent.NewClassifierAgent(docParser),
		agent.NewExtractionAgent(docParser),
		engine,
		claimRepo,
		archive,
		emailSender,
		service.ClaimServiceConfig{
			Bucket:        cfg.S3.Bucket,
			ReviewerEmail: cfg.Email.ReviewerAddress,
			Concurrency:   cfg.Processing.Concurrency,
			Timeout:       cfg.Processing.Timeout,
		},
	)
	historySvc := service.NewClaimHistoryService(claimRepo)

	pages, err := ui.Templates()
	if err != nil {
		return fmt.Errorf("failed to parse page templates: %w", err)
	}

	// Initialize handlers
	maxUpload := cfg.Server.MaxUploadMB << 20
	handlers := router.Handlers{
		Claim:   handler.NewClaimHandler(claimSvc, maxUpload),
		History: handler.NewClaimHistoryHandler(historySvc),
		Health:  handler.NewHealthHandler(claimRepo),
		UI: handler.NewUIHandler(
			client.New(cfg.UI.ProcessingURL(), nil),
			cfg.UI.Title,
			maxUpload,
		),
	}

	// Setup router
	r := router.Setup(handlers, pages, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return <-errCh
}
