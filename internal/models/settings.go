package models

import "time"

// SettingsID is the primary key of the singleton settings row
const SettingsID = "app_settings"

// Settings holds site-wide branding shown by the front-ends
type Settings struct {
	ID             string    `json:"id" db:"id"`
	LogoURL        string    `json:"logo_url" db:"logo_url"`
	CompanyName    string    `json:"company_name" db:"company_name"`
	CompanyWebsite string    `json:"company_website" db:"company_website"`
	ContactEmail   string    `json:"contact_email" db:"contact_email"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// SettingsUpdate is a partial update; nil fields are left unchanged
type SettingsUpdate struct {
	LogoURL        *string `json:"logo_url"`
	CompanyName    *string `json:"company_name"`
	CompanyWebsite *string `json:"company_website"`
	ContactEmail   *string `json:"contact_email"`
}

// DashboardStats are the counters on the admin dashboard
type DashboardStats struct {
	Users      int `json:"users"`
	Categories int `json:"categories"`
	Articles   int `json:"articles"`
	Published  int `json:"published"`
	Drafts     int `json:"drafts"`
}
