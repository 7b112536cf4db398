package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adam4056/QuickWiki/internal/handler/http/requestid"
	"github.com/adam4056/QuickWiki/internal/infra/fetcher"
	"github.com/adam4056/QuickWiki/internal/infra/summarizer"
	"github.com/adam4056/QuickWiki/internal/infra/wikipedia"
	"github.com/adam4056/QuickWiki/internal/observability/logging"
	summaryUC "github.com/adam4056/QuickWiki/internal/usecase/summary"

	hhttp "github.com/adam4056/QuickWiki/internal/handler/http"
	hsummary "github.com/adam4056/QuickWiki/internal/handler/http/summary"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	wikiCfg, err := wikipedia.LoadConfigFromEnv()
	if err != nil {
		logger.Error("invalid wikipedia configuration", slog.Any("error", err))
		os.Exit(1)
	}
	sumCfg, err := summarizer.LoadConfigFromEnv()
	if err != nil {
		logger.Error("invalid summarizer configuration", slog.Any("error", err))
		os.Exit(1)
	}

	handler := setupServer(logger, wikiCfg, sumCfg)
	runServer(logger, handler)
}

// setupServer wires the pipeline and returns the fully middlewared handler.
func setupServer(logger *slog.Logger, wikiCfg wikipedia.Config, sumCfg summarizer.Config) http.Handler {
	var fallback wikipedia.FallbackFetcher
	if wikiCfg.FallbackThreshold > 0 {
		fallback = fetcher.NewReadabilityFetcher(fetcher.DefaultConfig())
		logger.Info("readability fallback enabled",
			slog.Int("threshold", wikiCfg.FallbackThreshold))
	}

	resolver := wikipedia.NewResolver(wikiCfg, logger)
	extractor := wikipedia.NewExtractor(wikiCfg, fallback, logger)
	sum, err := summarizer.New(sumCfg, logger)
	if err != nil {
		logger.Error("failed to build summarizer", slog.Any("error", err))
		os.Exit(1)
	}

	service := summaryUC.NewService(resolver, extractor, sum, logger)

	mux := http.NewServeMux()
	hsummary.RegisterRoutes(mux, service)
	mux.Handle("/health", &hhttp.HealthHandler{
		Version:            getVersion(),
		SummarizerProvider: sumCfg.Provider,
	})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	// Applied in reverse order: request ID outermost, metrics innermost.
	chain := http.Handler(mux)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = requestid.Middleware(chain)
	return chain
}

func getVersion() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}

func listenAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler) {
	addr := listenAddr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", getVersion()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
