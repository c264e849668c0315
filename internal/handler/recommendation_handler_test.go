package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/internal/advisor"
	"fintrack/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeUserStore struct {
	users map[int64]*model.UserProfile
	err   error
}

func (f *fakeUserStore) GetProfile(ctx context.Context, id int64) (*model.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

type fakeRecommendationStore struct {
	recs        []model.Recommendation
	total       int
	err         error
	limit       int
	offset      int
	requestedID int64
}

func (f *fakeRecommendationStore) GetLatest(ctx context.Context, userID int64) (*model.Recommendation, error) {
	f.requestedID = userID
	if f.err != nil || len(f.recs) == 0 {
		return nil, f.err
	}
	return &f.recs[0], nil
}

func (f *fakeRecommendationStore) List(ctx context.Context, userID int64, limit, offset int) ([]model.Recommendation, error) {
	f.requestedID = userID
	f.limit = limit
	f.offset = offset
	return f.recs, f.err
}

func (f *fakeRecommendationStore) Total(ctx context.Context, userID int64) (int, error) {
	return f.total, f.err
}

type fakeGenerator struct {
	calls int
	user  model.UserProfile
	err   error
}

func (f *fakeGenerator) Generate(ctx context.Context, user model.UserProfile) (*advisor.Result, error) {
	f.calls++
	f.user = user
	if f.err != nil {
		return nil, f.err
	}
	return &advisor.Result{ID: 99, Parsed: map[string]any{"confidence": 70.0}}, nil
}

type fakePinger struct {
	err error
}

func (f fakePinger) PingContext(ctx context.Context) error {
	return f.err
}

func newTestRouter(users UserStore, recs RecommendationStore, gen Generator, db Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewRecommendationHandler(users, recs, gen, db)
	r.GET("/ai/recommendations/run/:userId", h.RunRecommendation)
	r.GET("/users/:id/recommendations/latest", h.GetLatestRecommendation)
	r.GET("/users/:id/recommendations", h.GetRecommendations)
	r.GET("/health", h.GetHealth)
	return r
}

func serve(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRunRecommendation(t *testing.T) {
	users := &fakeUserStore{users: map[int64]*model.UserProfile{5: {ID: 5, Email: "a@b.c"}}}
	gen := &fakeGenerator{}
	r := newTestRouter(users, &fakeRecommendationStore{}, gen, fakePinger{})

	w := serve(r, "GET", "/ai/recommendations/run/5")

	assert.Equal(t, http.StatusOK, w.Code)

	var res RunResponse
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, true, res.OK)
	assert.Equal(t, int64(99), res.ID)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "a@b.c", gen.user.Email)
}

func TestRunRecommendation_BadID(t *testing.T) {
	gen := &fakeGenerator{}
	r := newTestRouter(&fakeUserStore{}, &fakeRecommendationStore{}, gen, fakePinger{})

	w := serve(r, "GET", "/ai/recommendations/run/abc")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, gen.calls)
}

func TestRunRecommendation_UnknownUser(t *testing.T) {
	gen := &fakeGenerator{}
	r := newTestRouter(&fakeUserStore{}, &fakeRecommendationStore{}, gen, fakePinger{})

	w := serve(r, "GET", "/ai/recommendations/run/12")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, gen.calls)
}

func TestRunRecommendation_GenerateFails(t *testing.T) {
	users := &fakeUserStore{users: map[int64]*model.UserProfile{5: {ID: 5}}}
	gen := &fakeGenerator{err: errors.New("AI request failed. Check model name or API key.")}
	r := newTestRouter(users, &fakeRecommendationStore{}, gen, fakePinger{})

	w := serve(r, "GET", "/ai/recommendations/run/5")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Error generating recommendation", res["error"])
}

func TestRunRecommendation_DBError(t *testing.T) {
	gen := &fakeGenerator{}
	r := newTestRouter(&fakeUserStore{err: errors.New("DB down")}, &fakeRecommendationStore{}, gen, fakePinger{})

	w := serve(r, "GET", "/ai/recommendations/run/5")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 0, gen.calls)
}

func TestGetLatestRecommendation(t *testing.T) {
	conf := 72.0
	store := &fakeRecommendationStore{
		recs: []model.Recommendation{{
			ID:         3,
			UserID:     8,
			RecDate:    "2024-05-02",
			Summary:    "invest: TCS (10%)",
			Details:    map[string]any{"notes": "x"},
			Source:     map[string]any{"news": []any{}},
			Confidence: &conf,
			CreatedAt:  time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC),
		}},
	}
	r := newTestRouter(&fakeUserStore{}, store, &fakeGenerator{}, fakePinger{})

	w := serve(r, "GET", "/users/8/recommendations/latest")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(8), store.requestedID)

	var res RecommendationResponse
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, int64(3), res.ID)
	assert.Equal(t, "2024-05-02", res.RecDate)
	assert.Equal(t, "invest: TCS (10%)", res.Summary)
	assert.Equal(t, 72.0, *res.Confidence)
	assert.Equal(t, "2024-05-02T10:00:00Z", res.CreatedAt)
	assert.NotEqual(t, nil, res.Source)
}

func TestGetLatestRecommendation_None(t *testing.T) {
	r := newTestRouter(&fakeUserStore{}, &fakeRecommendationStore{}, &fakeGenerator{}, fakePinger{})

	w := serve(r, "GET", "/users/8/recommendations/latest")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRecommendations(t *testing.T) {
	store := &fakeRecommendationStore{
		recs: []model.Recommendation{
			{ID: 2, UserID: 4, Summary: "newer"},
			{ID: 1, UserID: 4, Summary: "older"},
		},
		total: 12,
	}
	r := newTestRouter(&fakeUserStore{}, store, &fakeGenerator{}, fakePinger{})

	w := serve(r, "GET", "/users/4/recommendations?limit=2&offset=4")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, store.limit)
	assert.Equal(t, 4, store.offset)

	var res RecommendationsResponse
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, 2, len(res.Recommendations))
	assert.Equal(t, "newer", res.Recommendations[0].Summary)
	assert.Equal(t, 12, res.Total)
	assert.Equal(t, 2, res.Limit)
	assert.Equal(t, 4, res.Offset)
}

func TestGetRecommendations_QueryDefaults(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"no params", "", 10, 0},
		{"invalid limit", "?limit=abc", 10, 0},
		{"limit clamped", "?limit=500", 100, 0},
		{"negative offset", "?offset=-3", 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeRecommendationStore{}
			r := newTestRouter(&fakeUserStore{}, store, &fakeGenerator{}, fakePinger{})

			w := serve(r, "GET", "/users/4/recommendations"+tt.query)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantLimit, store.limit)
			assert.Equal(t, tt.wantOffset, store.offset)
		})
	}
}

func TestGetRecommendations_DBError(t *testing.T) {
	store := &fakeRecommendationStore{err: errors.New("DB down")}
	r := newTestRouter(&fakeUserStore{}, store, &fakeGenerator{}, fakePinger{})

	w := serve(r, "GET", "/users/4/recommendations")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetHealth(t *testing.T) {
	r := newTestRouter(&fakeUserStore{}, &fakeRecommendationStore{}, &fakeGenerator{}, fakePinger{})
	w := serve(r, "GET", "/health")
	assert.Equal(t, http.StatusOK, w.Code)

	r = newTestRouter(&fakeUserStore{}, &fakeRecommendationStore{}, &fakeGenerator{}, fakePinger{err: errors.New("down")})
	w = serve(r, "GET", "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
