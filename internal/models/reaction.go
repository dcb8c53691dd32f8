package models

import "time"

// ArticleLike is one anonymous like, unique per (article, fingerprint)
type ArticleLike struct {
	ID          string    `json:"id" db:"id"`
	ArticleID   string    `json:"article_id" db:"article_id"`
	Fingerprint string    `json:"fingerprint" db:"fingerprint"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// LikeInfo is the like state of an article as seen by one fingerprint
type LikeInfo struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}

// Rating is a 1..5 score with optional feedback
type Rating struct {
	ID        string    `json:"id" db:"id"`
	ArticleID string    `json:"article_id" db:"article_id"`
	Rating    int       `json:"rating" db:"rating"`
	Feedback  string    `json:"feedback" db:"feedback"`
	UserName  string    `json:"user_name" db:"user_name"`
	UserEmail string    `json:"user_email" db:"user_email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RatingInput is the payload for rating an article
type RatingInput struct {
	Rating    int    `json:"rating" form:"rating"`
	Feedback  string `json:"feedback" form:"feedback"`
	UserName  string `json:"user_name" form:"user_name"`
	UserEmail string `json:"user_email" form:"user_email"`
}

// RatingSummary is the aggregate over all ratings of one article
type RatingSummary struct {
	ArticleID     string  `json:"article_id"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
}

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)
