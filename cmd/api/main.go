package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"fintrack/db"
	"fintrack/internal/config"
	"fintrack/internal/di"
	"fintrack/internal/handler"
	"fintrack/internal/logger"
	"fintrack/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer pool.Close()

	adv, err := di.ProvideAdvisor(cfg, pool)
	if err != nil {
		log.Fatalf("error building advisor: %v", err)
	}

	recommendationHandler := handler.NewRecommendationHandler(
		repository.NewUserRepository(pool),
		repository.NewRecommendationRepository(pool),
		adv,
		pool,
	)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/ai/recommendations/run/:userId", recommendationHandler.RunRecommendation)
	r.GET("/users/:id/recommendations/latest", recommendationHandler.GetLatestRecommendation)
	r.GET("/users/:id/recommendations", recommendationHandler.GetRecommendations)
	r.GET("/health", recommendationHandler.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
