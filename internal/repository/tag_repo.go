package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/inkwell-api/internal/database"
	"github.com/inkwell-api/internal/models"
	"github.com/lib/pq"
)

// tagRepo is the concrete implementation of TagRepository
type tagRepo struct {
	db *database.DB
}

// NewTagRepo creates a new tag repository
func NewTagRepo(db *database.DB) TagRepository {
	return &tagRepo{db: db}
}

// Create inserts a new tag
func (r *tagRepo) Create(ctx context.Context, tag *models.Tag) error {
	if tag.CreatedAt.IsZero() {
		tag.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tags (id, name, created_by, created_at) VALUES ($1, $2, $3, $4)`,
		tag.ID, tag.Name, tag.CreatedBy, tag.CreatedAt,
	)
	return classify(err)
}

// Update renames a tag
func (r *tagRepo) Update(ctx context.Context, tag *models.Tag) (bool, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE tags SET name = $2 WHERE id = $1`, tag.ID, tag.Name)
	if err != nil {
		return false, classify(err)
	}
	return affected(result)
}

// Delete removes a tag and its article links
func (r *tagRepo) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return false, classify(err)
	}
	return affected(result)
}

// GetByID retrieves a tag by ID
func (r *tagRepo) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	var tag models.Tag
	var createdBy sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_by, created_at FROM tags WHERE id = $1`, id,
	).Scan(&tag.ID, &tag.Name, &createdBy, &tag.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	tag.CreatedBy = stringPtr(createdBy)
	return &tag, nil
}

// List returns all tags ordered by name
func (r *tagRepo) List(ctx context.Context) ([]*models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_by, created_at FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*models.Tag{}
	for rows.Next() {
		var tag models.Tag
		var createdBy sql.NullString
		if err := rows.Scan(&tag.ID, &tag.Name, &createdBy, &tag.CreatedAt); err != nil {
			return nil, err
		}
		tag.CreatedBy = stringPtr(createdBy)
		tags = append(tags, &tag)
	}
	return tags, rows.Err()
}

// ExistingIDs returns the subset of ids that name existing tags
func (r *tagRepo) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM tags WHERE id = ANY($1::uuid[])`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found = append(found, id)
	}
	return found, rows.Err()
}
