package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/HUSC-F-2025/housing-service/internal/repositories"
)

const exportSheet = "Applications"

var exportHeaders = []string{
	"ID", "Student Type", "Full Name", "Student ID", "National ID",
	"Email", "Phone", "Major", "GPA", "GPA Scale",
	"Governorate", "Family Income", "Status", "Submitted At",
}

// ===== SERVICE INTERFACE =====

type ExportService interface {
	// ExportApplications renders the filtered applications as an xlsx
	// workbook and returns its bytes.
	ExportApplications(ctx context.Context, filters repositories.ApplicationFilters) ([]byte, error)
}

// ===== SERVICE IMPLEMENTATION =====

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportApplications(ctx context.Context, filters repositories.ApplicationFilters) ([]byte, error) {
	apps, _, err := s.repo.Application().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to load applications for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create export sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for row, app := range apps {
		values := []interface{}{
			app.ID, string(app.StudentType), app.FullName, app.StudentID, app.NationalID,
			app.Email, app.Phone, app.Major, app.GPA, app.GPAScale,
			app.Governorate, app.FamilyIncome, string(app.Status),
			app.SubmittedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address data cell: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write data cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.Info("applications exported", "rows", len(apps))
	return buf.Bytes(), nil
}
