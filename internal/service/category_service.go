package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/inkwell-api/internal/models"
	"github.com/inkwell-api/internal/repository"
	"github.com/inkwell-api/internal/slug"
	"github.com/inkwell-api/internal/validation"
	"github.com/rs/zerolog"
)

// categoryService is the concrete implementation of CategoryService
type categoryService struct {
	repos     *repository.Repositories
	validator *validation.Validator
	log       zerolog.Logger
}

// newCategoryService creates a new CategoryService
func newCategoryService(repos *repository.Repositories, validator *validation.Validator, log zerolog.Logger) *categoryService {
	return &categoryService{
		repos:     repos,
		validator: validator,
		log:       log.With().Str("service", "category").Logger(),
	}
}

// Create adds a category; its slug is derived from the name
func (s *categoryService) Create(ctx context.Context, actor *models.User, in *models.CategoryInput) (*models.Category, error) {
	if err := fromValidation(s.validator.ValidateCategory(in)); err != nil {
		return nil, err
	}

	category := &models.Category{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Description: optional(in.Description),
	}
	category.Slug = slug.Generate(category.Name)
	if actor != nil {
		category.CreatedBy = &actor.ID
	}

	if err := s.repos.Category.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, conflict("Category already exists")
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Info().Str("category_id", category.ID).Str("slug", category.Slug).Msg("Category created")
	return category, nil
}

// Update renames a category and regenerates its slug
func (s *categoryService) Update(ctx context.Context, id string, in *models.CategoryInput) (*models.Category, error) {
	if !validation.IsUUID(id) {
		return nil, notFound("Category not found")
	}
	if err := fromValidation(s.validator.ValidateCategory(in)); err != nil {
		return nil, err
	}

	category, err := s.repos.Category.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, notFound("Category not found")
	}

	category.Name = strings.TrimSpace(in.Name)
	category.Slug = slug.Generate(category.Name)
	category.Description = optional(in.Description)

	found, err := s.repos.Category.Update(ctx, category)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, conflict("Category already exists")
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	if !found {
		return nil, notFound("Category not found")
	}
	return category, nil
}

// Delete removes a category that no article references
func (s *categoryService) Delete(ctx context.Context, id string) error {
	if !validation.IsUUID(id) {
		return notFound("Category not found")
	}
	deleted, err := s.repos.Category.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return conflict("Cannot delete category with articles")
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if !deleted {
		return notFound("Category not found")
	}
	s.log.Info().Str("category_id", id).Msg("Category deleted")
	return nil
}

// List returns all categories ordered by name
func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.repos.Category.List(ctx)
}

// ListWithCounts returns all categories with their published article counts
func (s *categoryService) ListWithCounts(ctx context.Context) ([]*models.CategoryWithCount, error) {
	return s.repos.Category.ListWithCounts(ctx)
}

// GetBySlug returns one category
func (s *categoryService) GetBySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	category, err := s.repos.Category.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, notFound("Category not found")
	}
	return category, nil
}

// tagService is the concrete implementation of TagService
type tagService struct {
	repos     *repository.Repositories
	validator *validation.Validator
	log       zerolog.Logger
}

// newTagService creates a new TagService
func newTagService(repos *repository.Repositories, validator *validation.Validator, log zerolog.Logger) *tagService {
	return &tagService{
		repos:     repos,
		validator: validator,
		log:       log.With().Str("service", "tag").Logger(),
	}
}

// Create adds a tag
func (s *tagService) Create(ctx context.Context, actor *models.User, in *models.TagInput) (*models.Tag, error) {
	if err := fromValidation(s.validator.ValidateTag(in)); err != nil {
		return nil, err
	}

	tag := &models.Tag{ID: uuid.NewString(), Name: strings.TrimSpace(in.Name)}
	if actor != nil {
		tag.CreatedBy = &actor.ID
	}

	if err := s.repos.Tag.Create(ctx, tag); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, conflict("Tag already exists")
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}

// Update renames a tag
func (s *tagService) Update(ctx context.Context, id string, in *models.TagInput) (*models.Tag, error) {
	if !validation.IsUUID(id) {
		return nil, notFound("Tag not found")
	}
	if err := fromValidation(s.validator.ValidateTag(in)); err != nil {
		return nil, err
	}

	tag, err := s.repos.Tag.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, notFound("Tag not found")
	}
	tag.Name = strings.TrimSpace(in.Name)

	found, err := s.repos.Tag.Update(ctx, tag)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, conflict("Tag already exists")
		}
		return nil, fmt.Errorf("update tag: %w", err)
	}
	if !found {
		return nil, notFound("Tag not found")
	}
	return tag, nil
}

// Delete removes a tag; article links go with it
func (s *tagService) Delete(ctx context.Context, id string) error {
	if !validation.IsUUID(id) {
		return notFound("Tag not found")
	}
	deleted, err := s.repos.Tag.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if !deleted {
		return notFound("Tag not found")
	}
	return nil
}

// List returns all tags ordered by name
func (s *tagService) List(ctx context.Context) ([]*models.Tag, error) {
	return s.repos.Tag.List(ctx)
}

// optional turns blank text into a NULL column
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
