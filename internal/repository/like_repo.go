package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/inkwell-api/internal/database"
	"github.com/inkwell-api/internal/models"
)

// likeRepo is the concrete implementation of LikeRepository
type likeRepo struct {
	db *database.DB
}

// NewLikeRepo creates a new like repository
func NewLikeRepo(db *database.DB) LikeRepository {
	return &likeRepo{db: db}
}

// Toggle removes the like for (article, fingerprint) if present, otherwise
// inserts it. Both steps run in one transaction; a concurrent toggle that
// races the insert surfaces as ErrUniqueViolation. Returns the new state.
func (r *likeRepo) Toggle(ctx context.Context, like *models.ArticleLike) (bool, error) {
	liked := false
	err := r.db.Transact(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`DELETE FROM article_likes WHERE article_id = $1 AND fingerprint = $2`,
			like.ArticleID, like.Fingerprint,
		)
		if err != nil {
			return err
		}
		removed, err := affected(result)
		if err != nil {
			return err
		}
		if removed {
			return nil
		}

		if like.CreatedAt.IsZero() {
			like.CreatedAt = time.Now().UTC()
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO article_likes (id, article_id, fingerprint, created_at) VALUES ($1, $2, $3, $4)`,
			like.ID, like.ArticleID, like.Fingerprint, like.CreatedAt,
		); err != nil {
			return classify(err)
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

// Exists reports whether fingerprint currently likes the article
func (r *likeRepo) Exists(ctx context.Context, articleID, fingerprint string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM article_likes WHERE article_id = $1 AND fingerprint = $2)",
		articleID, fingerprint,
	).Scan(&exists)
	return exists, err
}

// Count returns the number of likes on an article
func (r *likeRepo) Count(ctx context.Context, articleID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM article_likes WHERE article_id = $1", articleID,
	).Scan(&count)
	return count, err
}
