package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-api/internal/content"
	"github.com/inkwell-api/internal/models"
	"github.com/inkwell-api/internal/repository"
	"github.com/inkwell-api/internal/slug"
	"github.com/inkwell-api/internal/validation"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	repos     *repository.Repositories
	validator *validation.Validator
	log       zerolog.Logger
	now       func() time.Time
}

// newArticleService creates a new ArticleService
func newArticleService(repos *repository.Repositories, validator *validation.Validator, log zerolog.Logger) *articleService {
	return &articleService{
		repos:     repos,
		validator: validator,
		log:       log.With().Str("service", "article").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create validates the input, resolves a free slug and stores the article
func (s *articleService) Create(ctx context.Context, actor *models.User, in *models.ArticleInput) (*models.ArticleDetails, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	body, err := s.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	base := slug.Generate(in.Title)
	existing, err := s.repos.Article.SlugsWithPrefix(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("fetch slugs: %w", err)
	}

	article := &models.Article{
		ID:         uuid.NewString(),
		Title:      in.Title,
		Slug:       slug.Resolve(base, existing),
		Body:       body,
		Excerpt:    content.Excerpt(body),
		AuthorID:   actor.ID,
		CategoryID: in.CategoryID,
		Status:     in.Status,
	}
	if article.IsPublished() {
		now := s.now()
		article.PublishedAt = &now
	}

	if err := s.repos.Article.Create(ctx, article, in.TagIDs); err != nil {
		return nil, s.translate(err)
	}

	s.log.Info().
		Str("article_id", article.ID).
		Str("slug", article.Slug).
		Str("status", article.Status).
		Msg("Article created")

	return s.reload(ctx, article.ID)
}

// Update replaces the editable fields. The slug is kept; published_at is
// only set if the article has never been published before.
func (s *articleService) Update(ctx context.Context, actor *models.User, id string, in *models.ArticleInput) (*models.ArticleDetails, error) {
	current, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	body, err := s.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	article := current.Article
	article.Title = in.Title
	article.Body = body
	article.Excerpt = content.Excerpt(body)
	article.CategoryID = in.CategoryID
	article.Status = in.Status
	article.PublishedAt = nil
	if article.IsPublished() {
		now := s.now()
		article.PublishedAt = &now
	}

	found, err := s.repos.Article.Update(ctx, &article, in.TagIDs)
	if err != nil {
		return nil, s.translate(err)
	}
	if !found {
		return nil, notFound("Article not found")
	}

	return s.reload(ctx, id)
}

// SetPublished publishes or unpublishes an article
func (s *articleService) SetPublished(ctx context.Context, actor *models.User, id string, publish bool) (*models.ArticleDetails, error) {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return nil, err
	}

	status := models.StatusDraft
	if publish {
		status = models.StatusPublished
	}
	article, err := s.repos.Article.SetStatus(ctx, id, status, s.now())
	if err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}
	if article == nil {
		return nil, notFound("Article not found")
	}

	s.log.Info().Str("article_id", id).Str("status", status).Msg("Article status changed")
	return s.reload(ctx, id)
}

// Delete removes an article with its likes, ratings and tag links
func (s *articleService) Delete(ctx context.Context, actor *models.User, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	deleted, err := s.repos.Article.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if !deleted {
		return notFound("Article not found")
	}
	s.log.Info().Str("article_id", id).Msg("Article deleted")
	return nil
}

// Get returns an article in any state to its owner or an admin
func (s *articleService) Get(ctx context.Context, actor *models.User, id string) (*models.ArticleDetails, error) {
	return s.owned(ctx, actor, id)
}

// ListMine returns the actor's own articles
func (s *articleService) ListMine(ctx context.Context, actor *models.User) ([]*models.ArticleDetails, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	return s.repos.Article.ListByAuthor(ctx, actor.ID)
}

// GetPublished returns a published article by slug
func (s *articleService) GetPublished(ctx context.Context, articleSlug string) (*models.ArticleDetails, error) {
	if !slug.Valid(articleSlug) {
		return nil, notFound("Article not found")
	}
	article, err := s.repos.Article.GetPublishedBySlug(ctx, articleSlug)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, notFound("Article not found")
	}
	return article, nil
}

// ListPublished returns published articles, optionally narrowed by category and author
func (s *articleService) ListPublished(ctx context.Context, categorySlug, authorID string) ([]*models.ArticleDetails, error) {
	var filter models.ArticleFilter

	if categorySlug != "" {
		category, err := s.repos.Category.GetBySlug(ctx, categorySlug)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, notFound("Category not found")
		}
		filter.CategoryID = category.ID
	}

	if authorID != "" {
		if !validation.IsUUID(authorID) {
			return []*models.ArticleDetails{}, nil
		}
		filter.AuthorID = authorID
	}

	return s.repos.Article.ListPublished(ctx, filter)
}

// Related returns other published articles in the same category
func (s *articleService) Related(ctx context.Context, articleSlug string) ([]*models.ArticleDetails, error) {
	article, err := s.GetPublished(ctx, articleSlug)
	if err != nil {
		return nil, err
	}
	return s.repos.Article.ListPublished(ctx, models.ArticleFilter{
		CategoryID: article.CategoryID,
		ExcludeID:  article.ID,
		Limit:      models.RelatedArticlesLimit,
	})
}

// Search matches published titles and bodies; a blank query matches nothing
func (s *articleService) Search(ctx context.Context, query string) ([]*models.ArticleDetails, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*models.ArticleDetails{}, nil
	}
	return s.repos.Article.ListPublished(ctx, models.ArticleFilter{
		Search: query,
		Limit:  models.MaxSearchResults,
	})
}

// Authors returns everyone who can appear as an author
func (s *articleService) Authors(ctx context.Context) ([]models.Author, error) {
	return s.repos.User.ListAuthors(ctx)
}

// prepare normalises and validates input and returns the sanitised body
func (s *articleService) prepare(ctx context.Context, in *models.ArticleInput) (string, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Status == "" {
		in.Status = models.StatusDraft
	}
	in.TagIDs = dedupe(in.TagIDs)

	if err := fromValidation(s.validator.ValidateArticle(in)); err != nil {
		return "", err
	}

	body := content.Sanitize(in.Body)
	if content.IsBlank(body) {
		return "", invalid("Title, content, and category are required")
	}

	category, err := s.repos.Category.GetByID(ctx, in.CategoryID)
	if err != nil {
		return "", fmt.Errorf("load category: %w", err)
	}
	if category == nil {
		return "", invalid("Category does not exist")
	}

	if len(in.TagIDs) > 0 {
		found, err := s.repos.Tag.ExistingIDs(ctx, in.TagIDs)
		if err != nil {
			return "", fmt.Errorf("load tags: %w", err)
		}
		if len(found) != len(in.TagIDs) {
			return "", invalid("One or more tags do not exist")
		}
	}

	return body, nil
}

// owned loads an article and checks the actor may manage it
func (s *articleService) owned(ctx context.Context, actor *models.User, id string) (*models.ArticleDetails, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	if !validation.IsUUID(id) {
		return nil, notFound("Article not found")
	}
	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, notFound("Article not found")
	}
	if !actor.IsAdmin() && article.AuthorID != actor.ID {
		return nil, forbidden("You can only manage your own articles")
	}
	return article, nil
}

func (s *articleService) reload(ctx context.Context, id string) (*models.ArticleDetails, error) {
	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, notFound("Article not found")
	}
	return article, nil
}

// translate maps constraint violations from a write to service errors
func (s *articleService) translate(err error) error {
	switch {
	case errors.Is(err, repository.ErrUniqueViolation) && repository.ViolatedConstraint(err) == "articles_slug_key":
		s.log.Warn().Err(err).Msg("Slug claimed concurrently")
		return ErrSlugTaken
	case errors.Is(err, repository.ErrUniqueViolation):
		return conflict("Article already exists")
	case errors.Is(err, repository.ErrForeignKeyViolation):
		return conflict("Category or tag was removed, please reload")
	}
	return fmt.Errorf("save article: %w", err)
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
