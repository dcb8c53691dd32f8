package service

import (
	"context"
	"net/http"

	"github.com/inkwell-api/internal/auth"
	"github.com/inkwell-api/internal/config"
	"github.com/inkwell-api/internal/models"
	"github.com/inkwell-api/internal/repository"
	"github.com/inkwell-api/internal/validation"
	"github.com/rs/zerolog"
)

// ArticleService defines the interface for article and prompt operations
type ArticleService interface {
	Create(ctx context.Context, actor *models.User, in *models.ArticleInput) (*models.ArticleDetails, error)
	Update(ctx context.Context, actor *models.User, id string, in *models.ArticleInput) (*models.ArticleDetails, error)
	SetPublished(ctx context.Context, actor *models.User, id string, publish bool) (*models.ArticleDetails, error)
	Delete(ctx context.Context, actor *models.User, id string) error
	Get(ctx context.Context, actor *models.User, id string) (*models.ArticleDetails, error)
	ListMine(ctx context.Context, actor *models.User) ([]*models.ArticleDetails, error)
	GetPublished(ctx context.Context, slug string) (*models.ArticleDetails, error)
	ListPublished(ctx context.Context, categorySlug, authorID string) ([]*models.ArticleDetails, error)
	Related(ctx context.Context, slug string) ([]*models.ArticleDetails, error)
	Search(ctx context.Context, query string) ([]*models.ArticleDetails, error)
	Authors(ctx context.Context) ([]models.Author, error)
}

// CategoryService defines the interface for category management
type CategoryService interface {
	Create(ctx context.Context, actor *models.User, in *models.CategoryInput) (*models.Category, error)
	Update(ctx context.Context, id string, in *models.CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Category, error)
	ListWithCounts(ctx context.Context) ([]*models.CategoryWithCount, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
}

// TagService defines the interface for tag management
type TagService interface {
	Create(ctx context.Context, actor *models.User, in *models.TagInput) (*models.Tag, error)
	Update(ctx context.Context, id string, in *models.TagInput) (*models.Tag, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Tag, error)
}

// UserService defines the interface for admin user management
type UserService interface {
	List(ctx context.Context) ([]*models.User, error)
	Create(ctx context.Context, in *models.UserInput) (*models.User, error)
	Delete(ctx context.Context, actor *models.User, id string) error
}

// AuthService defines the interface for registration, login and token checks
type AuthService interface {
	Register(ctx context.Context, in *models.UserInput) (*models.User, error)
	Login(ctx context.Context, creds *models.Credentials) (*models.TokenResponse, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// LikeService defines the interface for anonymous likes
type LikeService interface {
	Toggle(ctx context.Context, articleID, fingerprint string) (*models.LikeInfo, error)
	Info(ctx context.Context, articleID, fingerprint string) (*models.LikeInfo, error)
}

// RatingService defines the interface for ratings and their aggregate
type RatingService interface {
	Rate(ctx context.Context, articleID string, in *models.RatingInput) (*models.Rating, error)
	Summary(ctx context.Context, articleID string) (*models.RatingSummary, error)
	List(ctx context.Context, articleID string) ([]*models.Rating, error)
}

// SettingsService defines the interface for the site settings singleton
type SettingsService interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, in *models.SettingsUpdate) (*models.Settings, error)
}

// DashboardService defines the interface for admin dashboard counters
type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

// ExportService defines the interface for export operations
type ExportService interface {
	StreamArticles(ctx context.Context, w http.ResponseWriter, format string) error
	StreamCategories(ctx context.Context, w http.ResponseWriter, format string) error
	StreamResource(ctx context.Context, w http.ResponseWriter, resource, format string) error
}

// Services holds all service interfaces
type Services struct {
	Article   ArticleService
	Category  CategoryService
	Tag       TagService
	User      UserService
	Auth      AuthService
	Like      LikeService
	Rating    RatingService
	Settings  SettingsService
	Dashboard DashboardService
	Export    ExportService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	validator := validation.NewValidator()
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenManager(cfg.Auth)

	return &Services{
		Article:   newArticleService(repos, validator, log),
		Category:  newCategoryService(repos, validator, log),
		Tag:       newTagService(repos, validator, log),
		User:      newUserService(repos, validator, hasher, log),
		Auth:      newAuthService(repos, validator, hasher, tokens, log),
		Like:      newLikeService(repos, log),
		Rating:    newRatingService(repos, validator, log),
		Settings:  newSettingsService(repos, validator, log),
		Dashboard: newDashboardService(repos, log),
		Export:    newExportService(repos, log),
	}
}
