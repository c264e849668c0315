package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"fintrack/internal/advisor"
	"fintrack/internal/model"

	"github.com/gin-gonic/gin"
)

type UserStore interface {
	GetProfile(ctx context.Context, id int64) (*model.UserProfile, error)
}

type RecommendationStore interface {
	GetLatest(ctx context.Context, userID int64) (*model.Recommendation, error)
	List(ctx context.Context, userID int64, limit, offset int) ([]model.Recommendation, error)
	Total(ctx context.Context, userID int64) (int, error)
}

type Generator interface {
	Generate(ctx context.Context, user model.UserProfile) (*advisor.Result, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type RecommendationHandler struct {
	users           UserStore
	recommendations RecommendationStore
	generator       Generator
	db              Pinger
}

func NewRecommendationHandler(users UserStore, recommendations RecommendationStore, generator Generator, db Pinger) *RecommendationHandler {
	return &RecommendationHandler{
		users:           users,
		recommendations: recommendations,
		generator:       generator,
		db:              db,
	}
}

func toRecommendationResponse(r model.Recommendation, withSource bool) RecommendationResponse {
	res := RecommendationResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		RecDate:    r.RecDate,
		Summary:    r.Summary,
		Details:    r.Details,
		Confidence: r.Confidence,
		Delivered:  r.Delivered,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
	if withSource {
		res.Source = r.Source
	}
	return res
}

func (h *RecommendationHandler) RunRecommendation(c *gin.Context) {
	userID, ok := getParamID("userId", c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	user, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		slog.Error("error fetching user profile", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), *user)
	if err != nil {
		slog.Error("error generating recommendation", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating recommendation"})
		return
	}

	c.JSON(http.StatusOK, RunResponse{OK: true, ID: result.ID})
}

func (h *RecommendationHandler) GetLatestRecommendation(c *gin.Context) {
	userID, ok := getParamID("id", c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	rec, err := h.recommendations.GetLatest(c.Request.Context(), userID)
	if err != nil {
		slog.Error("error fetching latest recommendation", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No recommendation available"})
		return
	}

	c.JSON(http.StatusOK, toRecommendationResponse(*rec, true))
}

func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID, ok := getParamID("id", c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	recs, err := h.recommendations.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		slog.Error("error fetching recommendations", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.recommendations.Total(c.Request.Context(), userID)
	if err != nil {
		slog.Error("error fetching recommendation total", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := RecommendationsResponse{
		Recommendations: make([]RecommendationResponse, 0, len(recs)),
		Total:           total,
		Limit:           limit,
		Offset:          offset,
	}
	for _, r := range recs {
		res.Recommendations = append(res.Recommendations, toRecommendationResponse(r, false))
	}

	c.JSON(http.StatusOK, res)
}

func (h *RecommendationHandler) GetHealth(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
