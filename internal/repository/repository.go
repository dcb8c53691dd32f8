package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/inkwell-api/internal/database"
	"github.com/inkwell-api/internal/models"
)

// psql builds statements with PostgreSQL $n placeholders
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	ListAuthors(ctx context.Context) ([]models.Author, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	ListWithCounts(ctx context.Context) ([]*models.CategoryWithCount, error)
	Count(ctx context.Context) (int, error)
	StreamAll(ctx context.Context, callback func(*models.Category) error) error
}

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	Update(ctx context.Context, tag *models.Tag) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Tag, error)
	List(ctx context.Context) ([]*models.Tag, error)
	ExistingIDs(ctx context.Context, ids []string) ([]string, error)
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	SlugsWithPrefix(ctx context.Context, prefix string) ([]string, error)
	Create(ctx context.Context, article *models.Article, tagIDs []string) error
	Update(ctx context.Context, article *models.Article, tagIDs []string) (bool, error)
	SetStatus(ctx context.Context, id, status string, at time.Time) (*models.Article, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*models.ArticleDetails, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.ArticleDetails, error)
	IsPublished(ctx context.Context, id string) (bool, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*models.ArticleDetails, error)
	ListPublished(ctx context.Context, filter models.ArticleFilter) ([]*models.ArticleDetails, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	StreamAll(ctx context.Context, callback func(*models.ArticleDetails) error) error
}

// LikeRepository defines the interface for anonymous like operations
type LikeRepository interface {
	Toggle(ctx context.Context, like *models.ArticleLike) (bool, error)
	Exists(ctx context.Context, articleID, fingerprint string) (bool, error)
	Count(ctx context.Context, articleID string) (int, error)
}

// RatingRepository defines the interface for rating operations
type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	ListByArticle(ctx context.Context, articleID string) ([]*models.Rating, error)
	Summary(ctx context.Context, articleID string) (float64, int, error)
}

// SettingsRepository defines the interface for the site settings singleton
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, update *models.SettingsUpdate) (*models.Settings, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User     UserRepository
	Category CategoryRepository
	Tag      TagRepository
	Article  ArticleRepository
	Like     LikeRepository
	Rating   RatingRepository
	Settings SettingsRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepo(db),
		Category: NewCategoryRepo(db),
		Tag:      NewTagRepo(db),
		Article:  NewArticleRepo(db),
		Like:     NewLikeRepo(db),
		Rating:   NewRatingRepo(db),
		Settings: NewSettingsRepo(db),
	}
}
