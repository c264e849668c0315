package handler

type RecommendationResponse struct {
	ID         int64    `json:"id"`
	UserID     int64    `json:"user_id"`
	RecDate    string   `json:"rec_date"`
	Summary    string   `json:"summary"`
	Details    any      `json:"details"`
	Source     any      `json:"source,omitempty"`
	Confidence *float64 `json:"confidence"`
	Delivered  bool     `json:"delivered"`
	CreatedAt  string   `json:"created_at"`
}

type RecommendationsResponse struct {
	Recommendations []RecommendationResponse `json:"recommendations"`
	Total           int                      `json:"total"`
	Limit           int                      `json:"limit"`
	Offset          int                      `json:"offset"`
}

type RunResponse struct {
	OK bool  `json:"ok"`
	ID int64 `json:"id"`
}
