// ABOUTME: Main entry point for the Tabscribe panel API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tabscribe-api/api"
	"tabscribe-api/api/handlers"
	"tabscribe-api/api/middleware"
	"tabscribe-api/core/convert"
	"tabscribe-api/core/domain"
	"tabscribe-api/core/interfaces"
	"tabscribe-api/core/mail"
	"tabscribe-api/core/markdown"
	"tabscribe-api/core/panel"
	"tabscribe-api/core/store"
	"tabscribe-api/infrastructure/browser/cdp"
	"tabscribe-api/infrastructure/clipboard"
	stdhttp "tabscribe-api/infrastructure/http/standard"
	"tabscribe-api/infrastructure/logger/structured"
	"tabscribe-api/pkg/config"
	"tabscribe-api/pkg/featureflags"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.ApplyFlags(os.Args[1:]); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := structured.New(structured.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})

	flags := featureflags.NewEnvManager("FEATURE_")
	ctx := featureflags.WithManager(context.Background(), flags)

	logger.Info("Starting Tabscribe API", map[string]interface{}{
		"addr":           cfg.Server.Addr(),
		"cors_origins":   cfg.Server.AllowedOrigins,
		"page_store":     cfg.Pages.Type,
		"settings_store": cfg.Settings.Type,
		"flags":          flags.GetAllFlags(),
	})

	pagesKV, closePages, err := openStore(cfg.Pages, cfg.Redis, "pages", logger)
	if err != nil {
		log.Fatalf("Failed to open page store: %v", err)
	}
	defer closePages()

	settingsKV, closeSettings, err := openStore(cfg.Settings, cfg.Redis, "settings", logger)
	if err != nil {
		log.Fatalf("Failed to open settings store: %v", err)
	}
	defer closeSettings()

	deps := interfaces.Dependencies{
		Pages:    pagesKV,
		Settings: settingsKV,
		HTTPClient: stdhttp.NewStandardHTTPClientWithTransport(cfg.Server.HTTPTimeout, &middleware.LoggingRoundTripper{
			Transport: http.DefaultTransport,
			Logger:    logger,
		}),
		Logger: logger,
	}

	pages := store.NewPageStore(deps.Pages, deps.Logger)
	settings := store.NewSettingsStore(deps.Settings, deps.Logger)

	purgeTransientPages(ctx, pages, logger)
	seedSettings(ctx, cfg, settings, logger)

	mode := cfg.Browser.ExtractionMode
	if featureflags.IsEnabled(ctx, featureflags.ReadabilityExtraction) {
		mode = cdp.ModeReadability
	}
	tabs, err := cdp.Connect(cdp.Options{
		ControlURL: cfg.Browser.ControlURL,
		Bin:        cfg.Browser.Bin,
		Mode:       mode,
		Logger:     logger,
	})
	if err != nil {
		log.Fatalf("Failed to reach the browser: %v", err)
	}
	defer tabs.Close()

	var clip interfaces.Clipboard = clipboard.NewBuffer()
	if featureflags.IsEnabled(ctx, featureflags.SystemClipboard) {
		clip = clipboard.NewSystem()
	}

	render := markdown.Renderer(featureflags.IsEnabled(ctx, featureflags.StrictMarkdown))
	converter := convert.NewGeminiClient(deps.HTTPClient, deps.Logger)
	google := mail.NewGoogleMail(deps.HTTPClient, deps.Logger, mail.Endpoints{})

	controller := panel.NewController(panel.Collaborators{
		Tabs:      tabs,
		Pages:     pages,
		Settings:  settings,
		Converter: converter,
		Mail:      google,
		Identity:  google,
		Clipboard: clip,
		Render:    render,
		Logger:    logger,
	})

	apiConfig := api.APIConfig{Logger: logger, AllowedOrigins: cfg.Server.AllowedOrigins}
	if featureflags.IsEnabled(ctx, featureflags.RateLimitEnabled) {
		apiConfig.RateLimit = cfg.Server.RateLimit
		apiConfig.RateWindow = cfg.Server.RateWindow
	}
	_, router := api.NewAPIWithMiddleware(apiConfig,
		handlers.NewTabsHandler(controller),
		handlers.NewPanelHandler(controller),
		handlers.NewSettingsHandler(settings, converter),
		handlers.NewSessionHandler(controller),
		handlers.NewRenderHandler(render),
	)

	srv := &http.Server{
		Addr:        cfg.Server.Addr(),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// Conversions wait on the generation API for up to HTTPTimeout
		WriteTimeout: cfg.Server.HTTPTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}

// purgeTransientPages removes per-tab records left by a previous run. Failures are logged only.
func purgeTransientPages(ctx context.Context, pages *store.PageStore, logger interfaces.Logger) {
	removed, err := pages.ClearStale(ctx, domain.TransientKeyPrefix)
	if err != nil {
		logger.Warn("Failed to purge some transient page records", map[string]interface{}{
			"removed": removed,
			"error":   err.Error(),
		})
		return
	}
	if removed > 0 {
		logger.Info("Purged transient page records", map[string]interface{}{"removed": removed})
	}
}

func init() {
	fmt.Println(`
  _        _                   _ _
 | |_ __ _| |__  ___  ___ _ __(_) |__   ___
 | __/ _' | '_ \/ __|/ __| '__| | '_ \ / _ \
 | || (_| | |_) \__ \ (__| |  | | |_) |  __/
  \__\__,_|_.__/|___/\___|_|  |_|_.__/ \___|
	`)
}
