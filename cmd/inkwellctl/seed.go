package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/inkwell-api/internal/models"
	"github.com/inkwell-api/internal/service"
	"github.com/inkwell-api/internal/validation"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// seedFile is the YAML document accepted by the seed command
type seedFile struct {
	Categories []models.CategoryInput `yaml:"categories"`
	Tags       []models.TagInput      `yaml:"tags"`
}

// seedResult counts what a seed run did
type seedResult struct {
	CategoriesCreated int
	CategoriesSkipped int
	TagsCreated       int
	TagsSkipped       int
}

func loadSeed(r io.Reader) (*seedFile, error) {
	var seed seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &seed, nil
}

// applySeed creates every category and tag in seed. Entries repeated within
// the file, and entries that already exist, are skipped.
func applySeed(ctx context.Context, services *service.Services, seed *seedFile, log zerolog.Logger) (*seedResult, error) {
	validator := validation.NewValidator()
	result := &seedResult{}

	for i := range seed.Categories {
		in := &seed.Categories[i]
		if errs := validator.ValidateCategory(in); len(errs) > 0 {
			log.Warn().Str("name", in.Name).Str("reason", errs[0].Message).Msg("Skipping category")
			result.CategoriesSkipped++
			continue
		}
		validator.AddCategoryName(in.Name)

		if _, err := services.Category.Create(ctx, nil, in); err != nil {
			if errors.Is(err, service.ErrConflict) {
				result.CategoriesSkipped++
				continue
			}
			return result, fmt.Errorf("category %q: %w", in.Name, err)
		}
		result.CategoriesCreated++
	}

	for i := range seed.Tags {
		in := &seed.Tags[i]
		if errs := validator.ValidateTag(in); len(errs) > 0 {
			log.Warn().Str("name", in.Name).Str("reason", errs[0].Message).Msg("Skipping tag")
			result.TagsSkipped++
			continue
		}
		validator.AddTagName(in.Name)

		if _, err := services.Tag.Create(ctx, nil, in); err != nil {
			if errors.Is(err, service.ErrConflict) {
				result.TagsSkipped++
				continue
			}
			return result, fmt.Errorf("tag %q: %w", in.Name, err)
		}
		result.TagsCreated++
	}

	log.Info().
		Int("categories", result.CategoriesCreated).
		Int("tags", result.TagsCreated).
		Msg("Seed applied")

	return result, nil
}
