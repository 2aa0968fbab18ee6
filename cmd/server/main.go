// Command server runs the dashboard API: simulation over HTTP and
// WebSocket for reactive front ends, plus Prometheus metrics.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/zerodeltainc/monte-carlo/internal/dashboard"
	"github.com/zerodeltainc/monte-carlo/internal/observability"
)

func main() {
	// Parse flags (env vars as defaults)
	addr := flag.String("addr", envOr("MONTE_CARLO_ADDR", ":8080"), "HTTP listen address")
	workers := flag.Int("workers", envIntOr("MONTE_CARLO_WORKERS", runtime.NumCPU()), "Concurrent trial workers")
	maxTrials := flag.Int("max-trials", envIntOr("MONTE_CARLO_MAX_TRIALS", dashboard.DefaultMaxTrials), "Per-request trial cap")
	flag.Parse()

	logger := log.New(os.Stderr, "[server] ", log.LstdFlags)

	m := observability.NewMetrics("monte_carlo")

	srv := dashboard.New(dashboard.Options{
		Workers:   *workers,
		MaxTrials: *maxTrials,
		Metrics:   m,
		Logger:    logger,
	})

	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      srv.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // streams manage their own write deadlines
	}

	// Handle shutdown signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("received signal %v, shutting down", sig)
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("shutdown: %v", err)
		}
		cancel()
	}()

	logger.Printf("listening on %s (workers=%d, max-trials=%d)", *addr, *workers, *maxTrials)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("serve: %v", err)
	}
	<-ctx.Done()
}

// envOr returns the environment value or a default.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envIntOr returns the environment value parsed as int, or a default.
func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
