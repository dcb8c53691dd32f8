package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/inkwell-api/internal/database"
	"github.com/inkwell-api/internal/models"
)

// categoryRepo is the concrete implementation of CategoryRepository
type categoryRepo struct {
	db *database.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *database.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

const categoryColumns = `id, name, slug, description, created_by, created_at`

// Create inserts a new category
func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, query,
		category.ID, category.Name, category.Slug, category.Description,
		category.CreatedBy, category.CreatedAt,
	)
	return classify(err)
}

// Update changes name, slug and description
func (r *categoryRepo) Update(ctx context.Context, category *models.Category) (bool, error) {
	query := `UPDATE categories SET name = $2, slug = $3, description = $4 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query,
		category.ID, category.Name, category.Slug, category.Description,
	)
	if err != nil {
		return false, classify(err)
	}
	return affected(result)
}

// Delete removes a category; fails with ErrForeignKeyViolation while articles reference it
func (r *categoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, classify(err)
	}
	return affected(result)
}

// GetByID retrieves a category by ID
func (r *categoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	return scanCategory(row)
}

// GetBySlug retrieves a category by slug
func (r *categoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	return scanCategory(row)
}

// List returns all categories ordered by name
func (r *categoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListWithCounts returns all categories with their published article counts
func (r *categoryRepo) ListWithCounts(ctx context.Context) ([]*models.CategoryWithCount, error) {
	query := `
		SELECT c.id, c.name, c.slug, c.description, c.created_by, c.created_at,
		       COUNT(a.id) FILTER (WHERE a.status = 'published')
		FROM categories c
		LEFT JOIN articles a ON a.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*models.CategoryWithCount{}
	for rows.Next() {
		var c models.CategoryWithCount
		var description, createdBy sql.NullString
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Slug, &description, &createdBy, &c.CreatedAt, &c.ArticleCount,
		); err != nil {
			return nil, err
		}
		c.Description = stringPtr(description)
		c.CreatedBy = stringPtr(createdBy)
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// Count returns the total number of categories
func (r *categoryRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count)
	return count, err
}

// StreamAll streams all categories in name order
func (r *categoryRepo) StreamAll(ctx context.Context, callback func(*models.Category) error) error {
	rows, err := r.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return err
		}
		if err := callback(c); err != nil {
			return err
		}
	}
	return rows.Err()
}

func scanCategory(row rowScanner) (*models.Category, error) {
	var c models.Category
	var description, createdBy sql.NullString
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &description, &createdBy, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.Description = stringPtr(description)
	c.CreatedBy = stringPtr(createdBy)
	return &c, nil
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
