package model

import "time"

type Recommendation struct {
	ID         int64
	UserID     int64
	RecDate    string
	Summary    string
	Details    any
	Source     any
	Confidence *float64
	Delivered  bool
	CreatedAt  time.Time
}
