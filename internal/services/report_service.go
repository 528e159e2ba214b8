package services

import (
	"context"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"

	"go.uber.org/zap"
)

type ReportServiceInterface interface {
	GetReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, uint64, error)
	GetSummary(ctx context.Context, filter entities.ReportFilter) (*dto.ReportSummaryDTO, error)
}

type reportService struct {
	reportRepo repositories.ReportRepositoryInterface
	logger     *zap.Logger
}

func NewReportService(reportRepo repositories.ReportRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &reportService{reportRepo: reportRepo, logger: logger}
}

func (s *reportService) GetReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, uint64, error) {
	return s.reportRepo.GetReport(ctx, filter)
}

// GetSummary агрегирует отчетные строки в сводку. Пагинация фильтра
// игнорируется: сводка всегда считается по всей выборке.
func (s *reportService) GetSummary(ctx context.Context, filter entities.ReportFilter) (*dto.ReportSummaryDTO, error) {
	filter.Page = 0
	filter.PerPage = 0

	items, total, err := s.reportRepo.GetReport(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := &dto.ReportSummaryDTO{TotalRequests: total}
	var resolutionSum float64
	var resolutionCount uint64

	for _, item := range items {
		switch item.MaintenanceType {
		case entities.TypeCorrective:
			summary.CorrectiveCount++
		case entities.TypePreventive:
			summary.PreventiveCount++
		}
		if item.Stage != entities.StageRepaired {
			continue
		}
		summary.RepairedCount++
		summary.TotalCost += item.CostTotal
		summary.TotalDowntime += item.DurationHours
		if item.ResolutionDays.Valid {
			resolutionSum += item.ResolutionDays.Float64
			resolutionCount++
		}
	}
	if resolutionCount > 0 {
		summary.AvgResolution = resolutionSum / float64(resolutionCount)
	}
	return summary, nil
}
