package repository

import (
	"context"
	"database/sql"

	"github.com/inkwell-api/internal/database"
	"github.com/inkwell-api/internal/models"
)

// settingsRepo is the concrete implementation of SettingsRepository
type settingsRepo struct {
	db *database.DB
}

// NewSettingsRepo creates a new settings repository
func NewSettingsRepo(db *database.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

const settingsColumns = `id, logo_url, company_name, company_website, contact_email, updated_at`

// Get returns the settings row, or nil if it has not been seeded
func (r *settingsRepo) Get(ctx context.Context) (*models.Settings, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+settingsColumns+` FROM site_settings WHERE id = $1`, models.SettingsID)
	return scanSettings(row)
}

// Update applies the non-nil fields of update and returns the new row, or
// nil if the settings row does not exist
func (r *settingsRepo) Update(ctx context.Context, update *models.SettingsUpdate) (*models.Settings, error) {
	query := `
		UPDATE site_settings SET
			logo_url = COALESCE($2::text, logo_url),
			company_name = COALESCE($3::text, company_name),
			company_website = COALESCE($4::text, company_website),
			contact_email = COALESCE($5::text, contact_email),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + settingsColumns
	row := r.db.QueryRowContext(ctx, query, models.SettingsID,
		update.LogoURL, update.CompanyName, update.CompanyWebsite, update.ContactEmail,
	)
	return scanSettings(row)
}

func scanSettings(row rowScanner) (*models.Settings, error) {
	var s models.Settings
	err := row.Scan(&s.ID, &s.LogoURL, &s.CompanyName, &s.CompanyWebsite, &s.ContactEmail, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
