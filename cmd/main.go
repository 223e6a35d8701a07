package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"comment-insights-service/analyzer"
	"comment-insights-service/config"
	"comment-insights-service/fetcher"
	"comment-insights-service/handler"
	"comment-insights-service/metrics"
	"comment-insights-service/router"
	"comment-insights-service/session"
	"comment-insights-service/worker"
)

func main() {
	// Load configuration
	cfg := config.Load()

	metrics.Init("comment-insights-service", "1.0.0")

	// Create the Gemini-backed analyzer
	gemini, err := analyzer.New(context.Background(), cfg)
	if err != nil {
		log.Fatal("Failed to create analyzer:", err)
	}

	// Create core components
	source := fetcher.New(cfg)
	sessions := session.NewStore()

	// Setup router
	h := handler.NewCommentHandler(cfg, source, gemini, sessions)
	r := router.Setup(h)

	// Start the session janitor in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	janitor := worker.NewJanitor(cfg, sessions)
	janitor.Start(ctx)

	// Setup HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in background
	go func() {
		log.Printf("Comment insights service starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down comment insights service...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	janitor.Stop()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Comment insights service stopped")
}
