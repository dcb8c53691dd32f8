package mocks

import (
	"context"
	"net/http"

	"github.com/inkwell-api/internal/models"
	"github.com/inkwell-api/internal/service"
)

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	StreamArticlesFunc   func(ctx context.Context, w http.ResponseWriter, format string) error
	StreamCategoriesFunc func(ctx context.Context, w http.ResponseWriter, format string) error
	Calls                []string
}

// Verify interface compliance
var _ service.ExportService = (*MockExportService)(nil)

func NewMockExportService() *MockExportService {
	return &MockExportService{Calls: make([]string, 0)}
}

func (m *MockExportService) StreamArticles(ctx context.Context, w http.ResponseWriter, format string) error {
	m.Calls = append(m.Calls, "articles:"+format)
	if m.StreamArticlesFunc != nil {
		return m.StreamArticlesFunc(ctx, w, format)
	}
	return nil
}

func (m *MockExportService) StreamCategories(ctx context.Context, w http.ResponseWriter, format string) error {
	m.Calls = append(m.Calls, "categories:"+format)
	if m.StreamCategoriesFunc != nil {
		return m.StreamCategoriesFunc(ctx, w, format)
	}
	return nil
}

func (m *MockExportService) StreamResource(ctx context.Context, w http.ResponseWriter, resource, format string) error {
	switch resource {
	case "articles", "prompti":
		return m.StreamArticles(ctx, w, format)
	case "categories":
		return m.StreamCategories(ctx, w, format)
	}
	return &service.ValidationError{Message: "unknown resource: " + resource}
}

// MockDashboardService is a mock implementation of DashboardService
type MockDashboardService struct {
	Result *models.DashboardStats
	Err    error
}

// Verify interface compliance
var _ service.DashboardService = (*MockDashboardService)(nil)

func NewMockDashboardService(stats models.DashboardStats) *MockDashboardService {
	return &MockDashboardService{Result: &stats}
}

func (m *MockDashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}
