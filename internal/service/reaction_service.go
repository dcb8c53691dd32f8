package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/inkwell-api/internal/models"
	"github.com/inkwell-api/internal/repository"
	"github.com/inkwell-api/internal/validation"
	"github.com/rs/zerolog"
)

// MaxFingerprintLength matches the article_likes.fingerprint column
const MaxFingerprintLength = 255

// likeService is the concrete implementation of LikeService
type likeService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newLikeService creates a new LikeService
func newLikeService(repos *repository.Repositories, log zerolog.Logger) *likeService {
	return &likeService{
		repos: repos,
		log:   log.With().Str("service", "like").Logger(),
	}
}

// Toggle flips the like of fingerprint on a published article
func (s *likeService) Toggle(ctx context.Context, articleID, fingerprint string) (*models.LikeInfo, error) {
	fingerprint = strings.TrimSpace(fingerprint)
	if fingerprint == "" {
		return nil, invalid("No fingerprint provided")
	}
	if len(fingerprint) > MaxFingerprintLength {
		return nil, invalid("Fingerprint is too long")
	}
	if err := requirePublished(ctx, s.repos, articleID); err != nil {
		return nil, err
	}

	liked, err := s.repos.Like.Toggle(ctx, &models.ArticleLike{
		ID:          uuid.NewString(),
		ArticleID:   articleID,
		Fingerprint: fingerprint,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			s.log.Warn().Str("article_id", articleID).Msg("Concurrent like toggle")
			return nil, conflict("Like was already recorded, please try again")
		}
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	count, err := s.repos.Like.Count(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	return &models.LikeInfo{Liked: liked, Count: count}, nil
}

// Info returns the like count and whether fingerprint has liked the article
func (s *likeService) Info(ctx context.Context, articleID, fingerprint string) (*models.LikeInfo, error) {
	if err := requirePublished(ctx, s.repos, articleID); err != nil {
		return nil, err
	}

	count, err := s.repos.Like.Count(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}

	info := &models.LikeInfo{Count: count}
	if fingerprint = strings.TrimSpace(fingerprint); fingerprint != "" {
		info.Liked, err = s.repos.Like.Exists(ctx, articleID, fingerprint)
		if err != nil {
			return nil, fmt.Errorf("check like: %w", err)
		}
	}
	return info, nil
}

// ratingService is the concrete implementation of RatingService
type ratingService struct {
	repos     *repository.Repositories
	validator *validation.Validator
	log       zerolog.Logger
}

// newRatingService creates a new RatingService
func newRatingService(repos *repository.Repositories, validator *validation.Validator, log zerolog.Logger) *ratingService {
	return &ratingService{
		repos:     repos,
		validator: validator,
		log:       log.With().Str("service", "rating").Logger(),
	}
}

// Rate records a 1..5 rating on a published article
func (s *ratingService) Rate(ctx context.Context, articleID string, in *models.RatingInput) (*models.Rating, error) {
	if err := fromValidation(s.validator.ValidateRating(in)); err != nil {
		return nil, err
	}
	if err := requirePublished(ctx, s.repos, articleID); err != nil {
		return nil, err
	}

	rating := &models.Rating{
		ID:        uuid.NewString(),
		ArticleID: articleID,
		Rating:    in.Rating,
		Feedback:  strings.TrimSpace(in.Feedback),
		UserName:  strings.TrimSpace(in.UserName),
		UserEmail: strings.TrimSpace(in.UserEmail),
	}
	if err := s.repos.Rating.Create(ctx, rating); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, notFound("Article not found")
		}
		return nil, fmt.Errorf("create rating: %w", err)
	}
	return rating, nil
}

// Summary aggregates an article's ratings; the mean is rounded to one decimal
func (s *ratingService) Summary(ctx context.Context, articleID string) (*models.RatingSummary, error) {
	if err := requirePublished(ctx, s.repos, articleID); err != nil {
		return nil, err
	}
	avg, count, err := s.repos.Rating.Summary(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("rating summary: %w", err)
	}
	return &models.RatingSummary{
		ArticleID:     articleID,
		AverageRating: roundTenth(avg),
		RatingCount:   count,
	}, nil
}

// List returns an article's ratings, newest first
func (s *ratingService) List(ctx context.Context, articleID string) ([]*models.Rating, error) {
	if err := requirePublished(ctx, s.repos, articleID); err != nil {
		return nil, err
	}
	return s.repos.Rating.ListByArticle(ctx, articleID)
}

func requirePublished(ctx context.Context, repos *repository.Repositories, articleID string) error {
	if !validation.IsUUID(articleID) {
		return notFound("Article not found")
	}
	ok, err := repos.Article.IsPublished(ctx, articleID)
	if err != nil {
		return fmt.Errorf("check article: %w", err)
	}
	if !ok {
		return notFound("Article not found")
	}
	return nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
