package repositories

import (
	"context"
	"fmt"

	"gearguard/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type DashboardRepositoryInterface interface {
	GetAlerts(ctx context.Context, warrantyDays int) (*types.DashboardAlerts, error)
	GetKPIs(ctx context.Context) (*types.DashboardKPIs, error)
	GetCountByStage(ctx context.Context) ([]types.DashboardCountByGroup, error)
	GetCountByTeam(ctx context.Context) ([]types.DashboardCountByGroup, error)
	GetTopEquipmentByCost(ctx context.Context, limit uint64) ([]types.DashboardCostByEquipment, error)
}

type dashboardRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDashboardRepository(db *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &dashboardRepository{db: db, logger: logger}
}

var dashboardPsql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *dashboardRepository) GetAlerts(ctx context.Context, warrantyDays int) (*types.DashboardAlerts, error) {
	var alerts types.DashboardAlerts

	err := r.db.QueryRow(ctx, `
		SELECT COUNT(id) FROM maintenance_requests
		WHERE deleted_at IS NULL
		  AND schedule_date IS NOT NULL AND schedule_date < CURRENT_DATE
		  AND stage NOT IN ('repaired', 'scrap')`).Scan(&alerts.OverdueCount)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчета просроченных заявок: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT COUNT(id) FROM equipments
		WHERE deleted_at IS NULL AND active = TRUE
		  AND warranty_date IS NOT NULL
		  AND warranty_date > CURRENT_DATE
		  AND warranty_date <= CURRENT_DATE + $1 * INTERVAL '1 day'`,
		warrantyDays).Scan(&alerts.WarrantyExpiringCount)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчета истекающих гарантий: %w", err)
	}

	return &alerts, nil
}

func (r *dashboardRepository) GetKPIs(ctx context.Context) (*types.DashboardKPIs, error) {
	var kpis types.DashboardKPIs
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(id),
			COUNT(id) FILTER (WHERE stage NOT IN ('repaired', 'scrap')),
			COUNT(id) FILTER (WHERE stage = 'repaired' AND close_date >= CURRENT_DATE - INTERVAL '30 days'),
			COALESCE(SUM(cost_parts + duration_hours * cost_labor_rate)
				FILTER (WHERE stage = 'repaired' AND close_date >= CURRENT_DATE - INTERVAL '30 days'), 0),
			COUNT(id) FILTER (WHERE maintenance_type = 'corrective'),
			COUNT(id) FILTER (WHERE maintenance_type = 'preventive')
		FROM maintenance_requests
		WHERE deleted_at IS NULL`).Scan(
		&kpis.TotalRequests, &kpis.OpenRequests, &kpis.RepairedLast30d,
		&kpis.CostLast30d, &kpis.CorrectiveCount, &kpis.PreventiveCount,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчета KPI: %w", err)
	}
	return &kpis, nil
}

func (r *dashboardRepository) GetCountByStage(ctx context.Context) ([]types.DashboardCountByGroup, error) {
	query, args, err := dashboardPsql.Select("r.stage", "COUNT(r.id)").
		From("maintenance_requests r").
		Where(sq.Eq{"r.deleted_at": nil}).
		GroupBy("r.stage").
		OrderBy("COUNT(r.id) DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса по этапам: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчета заявок по этапам: %w", err)
	}
	defer rows.Close()

	result := make([]types.DashboardCountByGroup, 0)
	for rows.Next() {
		var g types.DashboardCountByGroup
		if err := rows.Scan(&g.Name, &g.Count); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

func (r *dashboardRepository) GetCountByTeam(ctx context.Context) ([]types.DashboardCountByGroup, error) {
	query, args, err := dashboardPsql.Select("t.id", "t.name", "COUNT(r.id)").
		From("maintenance_requests r").
		Join("maintenance_teams t ON r.team_id = t.id").
		Where(sq.Eq{"r.deleted_at": nil}).
		GroupBy("t.id", "t.name").
		OrderBy("COUNT(r.id) DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса по командам: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчета заявок по командам: %w", err)
	}
	defer rows.Close()

	result := make([]types.DashboardCountByGroup, 0)
	for rows.Next() {
		var g types.DashboardCountByGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.Count); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

func (r *dashboardRepository) GetTopEquipmentByCost(ctx context.Context, limit uint64) ([]types.DashboardCostByEquipment, error) {
	query, args, err := dashboardPsql.Select(
		"e.id", "e.name",
		"ROUND(SUM(r.cost_parts + r.duration_hours * r.cost_labor_rate)::numeric, 2)").
		From("maintenance_requests r").
		Join("equipments e ON r.equipment_id = e.id").
		Where(sq.Eq{"r.deleted_at": nil, "r.stage": "repaired"}).
		GroupBy("e.id", "e.name").
		OrderBy("SUM(r.cost_parts + r.duration_hours * r.cost_labor_rate) DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса по стоимости: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки оборудования по стоимости: %w", err)
	}
	defer rows.Close()

	result := make([]types.DashboardCostByEquipment, 0)
	for rows.Next() {
		var e types.DashboardCostByEquipment
		if err := rows.Scan(&e.EquipmentID, &e.EquipmentName, &e.TotalCost); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
