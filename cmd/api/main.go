package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"

	"github.com/loteriainsights/megasena-backend/api/routes"
	"github.com/loteriainsights/megasena-backend/internal/analysis"
	"github.com/loteriainsights/megasena-backend/internal/cache"
	"github.com/loteriainsights/megasena-backend/internal/config"
	"github.com/loteriainsights/megasena-backend/internal/handlers"
	mongorepo "github.com/loteriainsights/megasena-backend/internal/repositories/mongodb"
	"github.com/loteriainsights/megasena-backend/internal/services"
	"github.com/loteriainsights/megasena-backend/pkg/caixaapi"
	"github.com/loteriainsights/megasena-backend/pkg/mongodb"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongoClient, err := mongodb.NewClient(context.Background(), cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()
	db := mongoClient.Database(cfg.MongoDB.Database)

	// Collaborators and services
	drawRepo := mongorepo.NewDrawRepository(db)
	caixaClient := caixaapi.NewClient(cfg.Caixa.BaseURL, time.Duration(cfg.Caixa.TimeoutSeconds)*time.Second, cfg.Caixa.MockAPI)
	cacheStore := cache.NewStore(cfg.Cache.Dir, cfg.Cache.WinnersFile, cfg.Cache.FrequencyFile)

	analysisService := services.NewAnalysisService(analysis.NewRand())
	historyService := services.NewHistoryService(drawRepo, caixaClient, cacheStore, analysisService)
	authService := services.NewAuthService(cfg)

	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := historyService.Bootstrap(bootstrapCtx); err != nil {
		// The server still comes up; analysis endpoints report the missing
		// snapshot until a refresh succeeds.
		slog.Error("History bootstrap failed", "error", err)
	}
	cancelBootstrap()

	// Handlers and router
	deps := routes.HandlerDependencies{
		AuthHandler:      handlers.NewAuthHandler(authService),
		AnalysisHandler:  handlers.NewAnalysisHandler(analysisService),
		GeographyHandler: handlers.NewGeographyHandler(analysisService),
		HistoryHandler:   handlers.NewHistoryHandler(historyService),
	}
	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
