package services

import (
	"context"

	"gearguard/internal/repositories"
	"gearguard/pkg/config"
	"gearguard/pkg/types"

	"go.uber.org/zap"
)

const dashboardTopEquipmentLimit = 10

type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context) (*types.Dashboard, error)
}

type dashboardService struct {
	dashboardRepo repositories.DashboardRepositoryInterface
	cfg           config.MaintenanceConfig
	logger        *zap.Logger
}

func NewDashboardService(
	dashboardRepo repositories.DashboardRepositoryInterface,
	cfg config.MaintenanceConfig,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &dashboardService{dashboardRepo: dashboardRepo, cfg: cfg, logger: logger}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (*types.Dashboard, error) {
	alerts, err := s.dashboardRepo.GetAlerts(ctx, s.cfg.WarrantyAlertDays)
	if err != nil {
		return nil, err
	}
	kpis, err := s.dashboardRepo.GetKPIs(ctx)
	if err != nil {
		return nil, err
	}
	countByStage, err := s.dashboardRepo.GetCountByStage(ctx)
	if err != nil {
		return nil, err
	}
	countByTeam, err := s.dashboardRepo.GetCountByTeam(ctx)
	if err != nil {
		return nil, err
	}
	topEquipment, err := s.dashboardRepo.GetTopEquipmentByCost(ctx, dashboardTopEquipmentLimit)
	if err != nil {
		return nil, err
	}

	return &types.Dashboard{
		Alerts:             alerts,
		KPIs:               kpis,
		CountByStage:       countByStage,
		CountByTeam:        countByTeam,
		TopEquipmentByCost: topEquipment,
	}, nil
}
