package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/inkwell-api/internal/models"
	"github.com/inkwell-api/internal/repository"
	"github.com/rs/zerolog"
)

// flushEvery is how many records are written between flushes
const flushEvery = 100

// exportService is the concrete implementation of ExportService
type exportService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(repos *repository.Repositories, log zerolog.Logger) *exportService {
	return &exportService{
		repos: repos,
		log:   log.With().Str("service", "export").Logger(),
	}
}

// StreamArticles streams every article, drafts included, in the specified format
func (s *exportService) StreamArticles(ctx context.Context, w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting articles export")

	switch format {
	case "ndjson":
		return s.streamArticlesNDJSON(ctx, w)
	case "json":
		return s.streamArticlesJSON(ctx, w)
	default:
		return invalid(fmt.Sprintf("unsupported format: %s", format))
	}
}

// StreamCategories streams categories in the specified format
func (s *exportService) StreamCategories(ctx context.Context, w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting categories export")

	switch format {
	case "ndjson":
		return s.streamCategoriesNDJSON(ctx, w)
	case "json":
		return s.streamCategoriesJSON(ctx, w)
	case "csv":
		return s.streamCategoriesCSV(ctx, w)
	default:
		return invalid(fmt.Sprintf("unsupported format: %s", format))
	}
}

// StreamResource streams any exportable resource
func (s *exportService) StreamResource(ctx context.Context, w http.ResponseWriter, resource, format string) error {
	switch resource {
	case "articles", "prompti":
		return s.StreamArticles(ctx, w, format)
	case "categories":
		return s.StreamCategories(ctx, w, format)
	default:
		return invalid(fmt.Sprintf("unknown resource: %s", resource))
	}
}

// Articles streaming implementations

func (s *exportService) streamArticlesNDJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Content-Disposition", "attachment; filename=articles.ndjson")

	flusher, _ := w.(http.Flusher)
	count := 0

	err := s.repos.Article.StreamAll(ctx, func(article *models.ArticleDetails) error {
		data, err := json.Marshal(article)
		if err != nil {
			return err
		}
		w.Write(data)
		w.Write([]byte("\n"))
		count++

		if count%flushEvery == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	s.log.Info().Int("count", count).Msg("Articles export completed")
	return err
}

func (s *exportService) streamArticlesJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=articles.json")

	w.Write([]byte("["))
	first := true

	err := s.repos.Article.StreamAll(ctx, func(article *models.ArticleDetails) error {
		if !first {
			w.Write([]byte(","))
		}
		first = false

		data, err := json.Marshal(article)
		if err != nil {
			return err
		}
		w.Write(data)
		return nil
	})
	if err != nil {
		// a failed export leaves the array unterminated
		return err
	}

	w.Write([]byte("]"))
	return nil
}

// Categories streaming implementations

func (s *exportService) streamCategoriesNDJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Content-Disposition", "attachment; filename=categories.ndjson")

	flusher, _ := w.(http.Flusher)
	count := 0

	err := s.repos.Category.StreamAll(ctx, func(category *models.Category) error {
		data, err := json.Marshal(category)
		if err != nil {
			return err
		}
		w.Write(data)
		w.Write([]byte("\n"))
		count++

		if count%flushEvery == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	s.log.Info().Int("count", count).Msg("Categories export completed")
	return err
}

func (s *exportService) streamCategoriesJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=categories.json")

	w.Write([]byte("["))
	first := true

	err := s.repos.Category.StreamAll(ctx, func(category *models.Category) error {
		if !first {
			w.Write([]byte(","))
		}
		first = false

		data, err := json.Marshal(category)
		if err != nil {
			return err
		}
		w.Write(data)
		return nil
	})
	if err != nil {
		// a failed export leaves the array unterminated
		return err
	}

	w.Write([]byte("]"))
	return nil
}

func (s *exportService) streamCategoriesCSV(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=categories.csv")

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"id", "name", "slug", "description", "created_at"})

	return s.repos.Category.StreamAll(ctx, func(category *models.Category) error {
		description := ""
		if category.Description != nil {
			description = *category.Description
		}
		return writer.Write([]string{
			category.ID,
			category.Name,
			category.Slug,
			description,
			category.CreatedAt.UTC().Format(time.RFC3339),
		})
	})
}
