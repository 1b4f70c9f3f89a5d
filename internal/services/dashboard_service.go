package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jjss-seva/registration-service/internal/models"
	"github.com/jjss-seva/registration-service/internal/repositories"
)

type dashboardService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

// NewDashboardService creates the admin-facing listing and export service.
func NewDashboardService(repo repositories.Repository, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		logger: logger,
	}
}

func (s *dashboardService) List(ctx context.Context, filters *ListFilters) (*ListResponse, error) {
	all, err := s.repo.Registration().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}

	filtered := applyFilters(all, filters)

	return &ListResponse{
		Registrations: filtered,
		Total:         len(all),
		Filtered:      len(filtered),
	}, nil
}

func (s *dashboardService) Stats(ctx context.Context) (*StatsResponse, error) {
	stats, err := s.repo.Registration().Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	return &StatsResponse{RegistrationStats: stats}, nil
}

func (s *dashboardService) ExportCSV(ctx context.Context, filters *ListFilters) (*ExportFile, error) {
	list, err := s.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Exporting registrations as CSV", "count", list.Filtered)

	return &ExportFile{
		Filename:    exportFilename("csv"),
		ContentType: "text/csv; charset=utf-8",
		Content:     []byte(buildCSV(list.Registrations)),
	}, nil
}

func (s *dashboardService) ExportXLSX(ctx context.Context, filters *ListFilters) (*ExportFile, error) {
	list, err := s.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	content, err := buildXLSX(list.Registrations)
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}

	s.logger.Info("Exporting registrations as XLSX", "count", list.Filtered)

	return &ExportFile{
		Filename:    exportFilename("xlsx"),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     content,
	}, nil
}

// applyFilters narrows the full list; all active filters must match.
func applyFilters(registrations []models.Registration, filters *ListFilters) []models.Registration {
	if filters == nil {
		return registrations
	}

	search := strings.ToLower(strings.TrimSpace(filters.Search))
	state := strings.TrimSpace(filters.State)
	district := strings.ToLower(strings.TrimSpace(filters.District))
	vehicle := strings.ToLower(strings.TrimSpace(filters.Vehicle))

	result := make([]models.Registration, 0, len(registrations))
	for _, r := range registrations {
		if search != "" && !matchesSearch(&r, search) {
			continue
		}
		if state != "" && r.PresentState != state && r.PermanentState != state {
			continue
		}
		if district != "" && !matchesDistrict(&r, district) {
			continue
		}
		if vehicle == "yes" && !r.HasVehicle {
			continue
		}
		if vehicle == "no" && r.HasVehicle {
			continue
		}
		result = append(result, r)
	}

	return result
}

func matchesSearch(r *models.Registration, search string) bool {
	return strings.Contains(strings.ToLower(r.FullName), search) ||
		strings.Contains(strings.ToLower(r.Mobile), search) ||
		strings.Contains(strings.ToLower(r.ApplicationID), search) ||
		strings.Contains(strings.ToLower(r.Email), search)
}

func matchesDistrict(r *models.Registration, district string) bool {
	return strings.Contains(strings.ToLower(r.PresentDistrict), district) ||
		strings.Contains(strings.ToLower(r.PermanentDistrict), district)
}
