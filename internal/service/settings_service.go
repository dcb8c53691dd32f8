package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwell-api/internal/models"
	"github.com/inkwell-api/internal/repository"
	"github.com/inkwell-api/internal/validation"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// settingsService is the concrete implementation of SettingsService
type settingsService struct {
	repos     *repository.Repositories
	validator *validation.Validator
	log       zerolog.Logger
}

// newSettingsService creates a new SettingsService
func newSettingsService(repos *repository.Repositories, validator *validation.Validator, log zerolog.Logger) *settingsService {
	return &settingsService{
		repos:     repos,
		validator: validator,
		log:       log.With().Str("service", "settings").Logger(),
	}
}

// Get returns the site settings
func (s *settingsService) Get(ctx context.Context) (*models.Settings, error) {
	settings, err := s.repos.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, notFound("Settings not found")
	}
	return settings, nil
}

// Update applies a partial update
func (s *settingsService) Update(ctx context.Context, in *models.SettingsUpdate) (*models.Settings, error) {
	if err := fromValidation(s.validator.ValidateSettings(in)); err != nil {
		return nil, err
	}
	for _, field := range []*string{in.LogoURL, in.CompanyName, in.CompanyWebsite, in.ContactEmail} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}

	settings, err := s.repos.Settings.Update(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	if settings == nil {
		return nil, notFound("Settings not found")
	}
	s.log.Info().Msg("Settings updated")
	return settings, nil
}

// dashboardService is the concrete implementation of DashboardService
type dashboardService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newDashboardService creates a new DashboardService
func newDashboardService(repos *repository.Repositories, log zerolog.Logger) *dashboardService {
	return &dashboardService{
		repos: repos,
		log:   log.With().Str("service", "dashboard").Logger(),
	}
}

// Stats runs the dashboard counters concurrently
func (s *dashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.Users, err = s.repos.User.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Categories, err = s.repos.Category.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Articles, err = s.repos.Article.CountByStatus(ctx, "")
		return err
	})
	g.Go(func() (err error) {
		stats.Published, err = s.repos.Article.CountByStatus(ctx, models.StatusPublished)
		return err
	})
	g.Go(func() (err error) {
		stats.Drafts, err = s.repos.Article.CountByStatus(ctx, models.StatusDraft)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}
