package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/storely/store-rating-service/internal/models"
	"github.com/storely/store-rating-service/internal/repositories"
)

type adminService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewAdminService(repo repositories.Repository, logger *slog.Logger) AdminService {
	return &adminService{
		repo:   repo,
		logger: logger,
	}
}

func (s *adminService) DashboardStats(ctx context.Context) (*DashboardStatsResponse, error) {
	totalUsers, err := s.repo.Dashboard().CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total users: %w", err)
	}

	totalStores, err := s.repo.Dashboard().CountStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total stores: %w", err)
	}

	totalRatings, err := s.repo.Dashboard().CountRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total ratings: %w", err)
	}

	byRole, err := s.repo.Dashboard().CountUsersByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by role: %w", err)
	}

	// Roles with no users are reported as 0, not omitted.
	return &DashboardStatsResponse{
		TotalUsers:   totalUsers,
		TotalStores:  totalStores,
		TotalRatings: totalRatings,
		UsersByRole: RoleCounts{
			Admin: byRole[models.RoleAdmin],
			User:  byRole[models.RoleUser],
			Owner: byRole[models.RoleOwner],
		},
	}, nil
}

const exportSheet = "Stores"

func (s *adminService) ExportStores(ctx context.Context) ([]byte, error) {
	stores, err := s.repo.Store().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create export sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := []interface{}{"ID", "Name", "Email", "Address", "Average Rating", "Total Ratings", "Created At"}
	if err := f.SetSheetRow(exportSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, store := range stores {
		avg, count := averageAndCount(store.Ratings)
		row := []interface{}{
			store.ID,
			store.Name,
			store.Email,
			store.Address,
			avg,
			count,
			store.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write store row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	s.logger.Info("stores exported", "count", len(stores))
	return buf.Bytes(), nil
}
