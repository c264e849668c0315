package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fintrack/internal/model"
)

type RecommendationRepository struct {
	db *sql.DB
}

func NewRecommendationRepository(db *sql.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

// Save inserts one recommendation row and sets rec.ID. Rows are always
// created undelivered.
func (r *RecommendationRepository) Save(ctx context.Context, rec *model.Recommendation) error {
	details, err := json.Marshal(rec.Details)
	if err != nil {
		return err
	}

	source, err := json.Marshal(rec.Source)
	if err != nil {
		return err
	}

	rec.Delivered = false

	return r.db.QueryRowContext(ctx, `
		INSERT INTO recommendations(user_id, rec_date, summary, details, source, confidence, delivered)
		VALUES($1, $2, $3, $4, $5, $6, false)
		RETURNING id, created_at
	`, rec.UserID, rec.RecDate, rec.Summary, string(details), string(source), rec.Confidence).Scan(&rec.ID, &rec.CreatedAt)
}

func (r *RecommendationRepository) GetLatest(ctx context.Context, userID int64) (*model.Recommendation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, rec_date::text, summary, details, source, confidence, delivered, created_at
		FROM recommendations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, userID)

	rec, err := scanRecommendation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return rec, nil
}

func (r *RecommendationRepository) List(ctx context.Context, userID int64, limit, offset int) ([]model.Recommendation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, rec_date::text, summary, details, source, confidence, delivered, created_at
		FROM recommendations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []model.Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return recs, nil
}

func (r *RecommendationRepository) Total(ctx context.Context, userID int64) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM recommendations WHERE user_id = $1
	`, userID).Scan(&total)
	return total, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecommendation(row rowScanner) (*model.Recommendation, error) {
	var rec model.Recommendation
	var details, source []byte
	var confidence sql.NullFloat64

	err := row.Scan(&rec.ID, &rec.UserID, &rec.RecDate, &rec.Summary, &details, &source, &confidence, &rec.Delivered, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	if confidence.Valid {
		c := confidence.Float64
		rec.Confidence = &c
	}

	if len(details) > 0 {
		if err := json.Unmarshal(details, &rec.Details); err != nil {
			return nil, err
		}
	}

	if len(source) > 0 {
		if err := json.Unmarshal(source, &rec.Source); err != nil {
			return nil, err
		}
	}

	return &rec, nil
}
