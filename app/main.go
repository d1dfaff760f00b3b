package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lthutara/nextgen-technologies/app/ai"
	"github.com/lthutara/nextgen-technologies/app/api"
	"github.com/lthutara/nextgen-technologies/app/cfg"
	"github.com/lthutara/nextgen-technologies/app/config"
	"github.com/lthutara/nextgen-technologies/app/curation"
	"github.com/lthutara/nextgen-technologies/app/database"
	"github.com/lthutara/nextgen-technologies/app/scraping"
	"github.com/lthutara/nextgen-technologies/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting NextGen Technologies server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	sources, err := config.NewLoader(appCfg.SourcesFile).Load()
	if err != nil {
		slog.Error("Failed to load sources configuration", "file", appCfg.SourcesFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Sources configuration loaded", "categories", len(sources.CategoryNames()))

	rawRepo := database.NewRawArticleRepository(db)
	articleRepo := database.NewArticleRepository(db)
	logRepo := database.NewLogRepository(db)

	httpClient := &http.Client{Timeout: time.Duration(appCfg.RequestTimeout) * time.Second}
	requestDelay := time.Duration(appCfg.RequestDelay) * time.Millisecond

	extractor := scraping.NewContentExtractor(httpClient, appCfg.UserAgent,
		time.Duration(appCfg.RequestTimeout)*time.Second)

	connectors := []scraping.Connector{
		scraping.NewRSSConnector(sources, httpClient, extractor,
			appCfg.UserAgent, appCfg.MaxArticlesPerSource, requestDelay),
		scraping.NewArxivConnector(httpClient, appCfg.UserAgent, appCfg.MaxArticlesPerSource),
	}

	coordinator := scraping.NewCoordinator(sources, connectors, rawRepo, articleRepo, logRepo)

	aiClient := ai.NewOpenAIClient(appCfg.OpenAIAPIKey, appCfg.OpenAIModel, appCfg.OpenAIBaseURL)
	if !aiClient.Configured() {
		slog.Warn("AI enrichment disabled (OPENAI_API_KEY not set)")
	}

	curationService := curation.NewService(rawRepo, articleRepo, extractor, aiClient)

	scheduler := tasks.NewScheduler(coordinator, time.Duration(appCfg.SchedulerInterval)*time.Hour)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(coordinator, curationService, rawRepo, articleRepo, logRepo)
	engine := api.NewServer(handler, appCfg.APIAccessKey, appCfg.Version)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
