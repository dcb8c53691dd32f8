package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/inkwell-api/internal/database"
	"github.com/inkwell-api/internal/models"
	"github.com/lib/pq"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// detailsQuery selects the article read model with joins and aggregates
func detailsQuery() sq.SelectBuilder {
	return psql.Select(
		"a.id", "a.title", "a.slug", "a.body", "a.excerpt", "a.author_id", "a.category_id",
		"a.status", "a.published_at", "a.created_at", "a.updated_at",
		"COALESCE(c.name, '')", "COALESCE(c.slug, '')", "COALESCE(u.full_name, '')",
		"ARRAY(SELECT t.id::text FROM article_tags atg JOIN tags t ON t.id = atg.tag_id WHERE atg.article_id = a.id ORDER BY t.name)",
		"ARRAY(SELECT t.name FROM article_tags atg JOIN tags t ON t.id = atg.tag_id WHERE atg.article_id = a.id ORDER BY t.name)",
		"(SELECT COUNT(*) FROM article_likes l WHERE l.article_id = a.id)",
		"COALESCE((SELECT ROUND(AVG(r.rating)::numeric, 1) FROM ratings r WHERE r.article_id = a.id), 0)::float8",
		"(SELECT COUNT(*) FROM ratings r WHERE r.article_id = a.id)",
	).
		From("articles a").
		LeftJoin("categories c ON c.id = a.category_id").
		LeftJoin("users u ON u.id = a.author_id")
}

func scanDetails(row rowScanner) (*models.ArticleDetails, error) {
	var d models.ArticleDetails
	var publishedAt sql.NullTime
	var tagIDs, tagNames pq.StringArray

	err := row.Scan(
		&d.ID, &d.Title, &d.Slug, &d.Body, &d.Excerpt, &d.AuthorID, &d.CategoryID,
		&d.Status, &publishedAt, &d.CreatedAt, &d.UpdatedAt,
		&d.CategoryName, &d.CategorySlug, &d.AuthorName,
		&tagIDs, &tagNames,
		&d.LikeCount, &d.AverageRating, &d.RatingCount,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if publishedAt.Valid {
		t := publishedAt.Time
		d.PublishedAt = &t
	}
	d.TagIDs = []string(tagIDs)
	d.TagNames = []string(tagNames)
	if d.TagIDs == nil {
		d.TagIDs = []string{}
	}
	if d.TagNames == nil {
		d.TagNames = []string{}
	}
	return &d, nil
}

// getOne runs a details query expected to match at most one row
func (r *articleRepo) getOne(ctx context.Context, q sq.SelectBuilder) (*models.ArticleDetails, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	return scanDetails(r.db.QueryRowContext(ctx, query, args...))
}

// list runs a details query and collects every row
func (r *articleRepo) list(ctx context.Context, q sq.SelectBuilder) ([]*models.ArticleDetails, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []*models.ArticleDetails{}
	for rows.Next() {
		d, err := scanDetails(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, d)
	}
	return articles, rows.Err()
}

// SlugsWithPrefix returns every stored slug starting with prefix
func (r *articleRepo) SlugsWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT slug FROM articles WHERE slug LIKE $1`, escapeLike(prefix)+"%",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		slugs = append(slugs, s)
	}
	return slugs, rows.Err()
}

// Create inserts an article and its tag links in one transaction
func (r *articleRepo) Create(ctx context.Context, article *models.Article, tagIDs []string) error {
	now := time.Now().UTC()
	article.CreatedAt = now
	article.UpdatedAt = now

	return r.db.Transact(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO articles (id, title, slug, body, excerpt, author_id, category_id, status, published_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`
		if _, err := tx.ExecContext(ctx, query,
			article.ID, article.Title, article.Slug, article.Body, article.Excerpt,
			article.AuthorID, article.CategoryID, article.Status, article.PublishedAt,
			article.CreatedAt, article.UpdatedAt,
		); err != nil {
			return classify(err)
		}
		return insertTags(ctx, tx, article.ID, tagIDs)
	})
}

// Update replaces the editable fields and the tag set. published_at is only
// written when it is still NULL, so the first publication time is kept.
func (r *articleRepo) Update(ctx context.Context, article *models.Article, tagIDs []string) (bool, error) {
	found := false
	err := r.db.Transact(ctx, func(tx *sql.Tx) error {
		query := `
			UPDATE articles
			SET title = $2, body = $3, excerpt = $4, category_id = $5, status = $6,
			    published_at = COALESCE(published_at, $7), updated_at = $8
			WHERE id = $1
			RETURNING published_at, updated_at
		`
		var publishedAt sql.NullTime
		err := tx.QueryRowContext(ctx, query,
			article.ID, article.Title, article.Body, article.Excerpt, article.CategoryID,
			article.Status, article.PublishedAt, time.Now().UTC(),
		).Scan(&publishedAt, &article.UpdatedAt)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return classify(err)
		}
		found = true
		article.PublishedAt = nil
		if publishedAt.Valid {
			t := publishedAt.Time
			article.PublishedAt = &t
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM article_tags WHERE article_id = $1`, article.ID); err != nil {
			return err
		}
		return insertTags(ctx, tx, article.ID, tagIDs)
	})
	return found, err
}

func insertTags(ctx context.Context, tx *sql.Tx, articleID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO article_tags (article_id, tag_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING
	`, articleID, pq.Array(tagIDs))
	return classify(err)
}

// SetStatus changes the publish state. Publishing stamps published_at with at
// only if it was never set; returns nil when the article does not exist.
func (r *articleRepo) SetStatus(ctx context.Context, id, status string, at time.Time) (*models.Article, error) {
	query := `
		UPDATE articles
		SET status = $2,
		    published_at = CASE WHEN $4 THEN COALESCE(published_at, $3) ELSE published_at END,
		    updated_at = $3
		WHERE id = $1
		RETURNING id, title, slug, body, excerpt, author_id, category_id, status, published_at, created_at, updated_at
	`
	var a models.Article
	var publishedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id, status, at, status == models.StatusPublished).Scan(
		&a.ID, &a.Title, &a.Slug, &a.Body, &a.Excerpt, &a.AuthorID, &a.CategoryID,
		&a.Status, &publishedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		a.PublishedAt = &t
	}
	return &a, nil
}

// Delete removes an article; likes, ratings and tag links cascade
func (r *articleRepo) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return false, classify(err)
	}
	return affected(result)
}

// GetByID retrieves an article in any state
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.ArticleDetails, error) {
	return r.getOne(ctx, detailsQuery().Where(sq.Eq{"a.id": id}))
}

// GetPublishedBySlug retrieves a published article by slug
func (r *articleRepo) GetPublishedBySlug(ctx context.Context, slug string) (*models.ArticleDetails, error) {
	return r.getOne(ctx, detailsQuery().Where(sq.Eq{"a.slug": slug, "a.status": models.StatusPublished}))
}

// IsPublished reports whether a published article with the given ID exists
func (r *articleRepo) IsPublished(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM articles WHERE id = $1 AND status = 'published')", id,
	).Scan(&exists)
	return exists, err
}

// ListByAuthor returns an author's articles in every state, most recently updated first
func (r *articleRepo) ListByAuthor(ctx context.Context, authorID string) ([]*models.ArticleDetails, error) {
	return r.list(ctx, detailsQuery().
		Where(sq.Eq{"a.author_id": authorID}).
		OrderBy("a.updated_at DESC"))
}

// ListPublished returns published articles matching filter, newest first
func (r *articleRepo) ListPublished(ctx context.Context, filter models.ArticleFilter) ([]*models.ArticleDetails, error) {
	q := detailsQuery().Where(sq.Eq{"a.status": models.StatusPublished})

	if filter.CategoryID != "" {
		q = q.Where(sq.Eq{"a.category_id": filter.CategoryID})
	}
	if filter.AuthorID != "" {
		q = q.Where(sq.Eq{"a.author_id": filter.AuthorID})
	}
	if filter.ExcludeID != "" {
		q = q.Where(sq.NotEq{"a.id": filter.ExcludeID})
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		q = q.Where(sq.Or{
			sq.ILike{"a.title": pattern},
			sq.ILike{"a.body": pattern},
		})
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	return r.list(ctx, q.OrderBy("a.published_at DESC", "a.created_at DESC"))
}

// CountByStatus counts articles in the given status, or all articles when status is empty
func (r *articleRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	q := psql.Select("COUNT(*)").From("articles")
	if status != "" {
		q = q.Where(sq.Eq{"status": status})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// StreamAll streams every article in creation order
func (r *articleRepo) StreamAll(ctx context.Context, callback func(*models.ArticleDetails) error) error {
	query, args, err := detailsQuery().OrderBy("a.created_at").ToSql()
	if err != nil {
		return err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		d, err := scanDetails(rows)
		if err != nil {
			return err
		}
		if err := callback(d); err != nil {
			return err
		}
	}
	return rows.Err()
}
