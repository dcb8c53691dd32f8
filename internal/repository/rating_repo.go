package repository

import (
	"context"
	"time"

	"github.com/inkwell-api/internal/database"
	"github.com/inkwell-api/internal/models"
)

// ratingRepo is the concrete implementation of RatingRepository
type ratingRepo struct {
	db *database.DB
}

// NewRatingRepo creates a new rating repository
func NewRatingRepo(db *database.DB) RatingRepository {
	return &ratingRepo{db: db}
}

// Create inserts a new rating
func (r *ratingRepo) Create(ctx context.Context, rating *models.Rating) error {
	if rating.CreatedAt.IsZero() {
		rating.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO ratings (id, article_id, rating, feedback, user_name, user_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		rating.ID, rating.ArticleID, rating.Rating, rating.Feedback,
		rating.UserName, rating.UserEmail, rating.CreatedAt,
	)
	return classify(err)
}

// ListByArticle returns an article's ratings, newest first
func (r *ratingRepo) ListByArticle(ctx context.Context, articleID string) ([]*models.Rating, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, article_id, rating, feedback, user_name, user_email, created_at
		FROM ratings WHERE article_id = $1
		ORDER BY created_at DESC
	`, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := []*models.Rating{}
	for rows.Next() {
		var rt models.Rating
		if err := rows.Scan(
			&rt.ID, &rt.ArticleID, &rt.Rating, &rt.Feedback, &rt.UserName, &rt.UserEmail, &rt.CreatedAt,
		); err != nil {
			return nil, err
		}
		ratings = append(ratings, &rt)
	}
	return ratings, rows.Err()
}

// Summary returns the unrounded mean and the number of ratings; the mean is 0 without ratings
func (r *ratingRepo) Summary(ctx context.Context, articleID string) (float64, int, error) {
	var avg float64
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(rating), 0)::float8, COUNT(*) FROM ratings WHERE article_id = $1`,
		articleID,
	).Scan(&avg, &count)
	return avg, count, err
}
