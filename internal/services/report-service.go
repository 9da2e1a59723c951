package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/repositories"
	"gearguard/pkg/apperrors"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportServiceInterface interface {
	GetMaintenanceReport(ctx context.Context, from, to string) ([]dto.ReportRowDTO, error)
	ExportMaintenanceReportXLSX(ctx context.Context, from, to string) (*bytes.Buffer, string, error)
}

type ReportService struct {
	statsRepo repositories.StatsRepositoryInterface
	logger    *zap.Logger
}

func NewReportService(statsRepo repositories.StatsRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{statsRepo: statsRepo, logger: logger}
}

func validateReportRange(from, to string) error {
	if from == "" && to == "" {
		return nil
	}
	if from == "" || to == "" {
		return apperrors.NewInvalidInputError("date range requires both from and to")
	}
	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return apperrors.NewInvalidInputError("invalid from date %q, expected YYYY-MM-DD", from)
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return apperrors.NewInvalidInputError("invalid to date %q, expected YYYY-MM-DD", to)
	}
	if toDate.Before(fromDate) {
		return apperrors.NewInvalidInputError("to date is before from date")
	}
	return nil
}

func (s *ReportService) GetMaintenanceReport(ctx context.Context, from, to string) ([]dto.ReportRowDTO, error) {
	if err := validateReportRange(from, to); err != nil {
		return nil, err
	}
	return s.statsRepo.GetReportRows(ctx, from, to)
}

var reportHeaders = []string{
	"ID", "Title", "Type", "Priority", "Status",
	"Equipment", "Team", "Created", "Completed", "Actual Cost",
}

// ExportMaintenanceReportXLSX renders the report rows as a spreadsheet and
// returns the serialized file plus a suggested file name.
func (s *ReportService) ExportMaintenanceReportXLSX(ctx context.Context, from, to string) (*bytes.Buffer, string, error) {
	rows, err := s.GetMaintenanceReport(ctx, from, to)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("failed to close report workbook", zap.Error(err))
		}
	}()

	const sheet = "Maintenance Report"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return nil, "", err
	}

	for col, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, "", err
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.RequestID, row.Title, row.RequestType, row.Priority, row.Status,
			row.EquipmentName, row.TeamName, row.CreatedAt, row.CompletedAt, row.ActualCost,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", err
			}
		}
	}

	if err := f.SetColWidth(sheet, "B", "B", 40); err != nil {
		return nil, "", err
	}
	if err := f.SetColWidth(sheet, "F", "G", 25); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	fileName := fmt.Sprintf("maintenance-report-%s.xlsx", time.Now().Format("2006-01-02"))
	return buf, fileName, nil
}
