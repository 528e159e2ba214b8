package repositories

import (
	"context"
	"fmt"

	"gearguard/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepositoryInterface interface {
	GetReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, uint64, error)
}

type reportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepositoryInterface {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	// Общая база (FROM, JOIN, WHERE) для COUNT и основного запроса
	baseSelect := psql.Select().
		From("maintenance_requests r").
		Join("equipments e ON r.equipment_id = e.id").
		Join("maintenance_teams t ON r.team_id = t.id").
		LeftJoin("equipment_categories c ON r.category_id = c.id").
		LeftJoin("users tech ON r.technician_id = tech.id").
		Where(sq.Eq{"r.deleted_at": nil})

	if filter.DateFrom != nil {
		baseSelect = baseSelect.Where(sq.GtOrEq{"r.request_date": filter.DateFrom})
	}
	if filter.DateTo != nil {
		baseSelect = baseSelect.Where(sq.LtOrEq{"r.request_date": filter.DateTo})
	}
	if len(filter.TeamIDs) > 0 {
		baseSelect = baseSelect.Where(sq.Eq{"r.team_id": filter.TeamIDs})
	}
	if len(filter.CategoryIDs) > 0 {
		baseSelect = baseSelect.Where(sq.Eq{"r.category_id": filter.CategoryIDs})
	}
	if len(filter.TechnicianIDs) > 0 {
		baseSelect = baseSelect.Where(sq.Eq{"r.technician_id": filter.TechnicianIDs})
	}
	if len(filter.EquipmentIDs) > 0 {
		baseSelect = baseSelect.Where(sq.Eq{"r.equipment_id": filter.EquipmentIDs})
	}
	if len(filter.Stages) > 0 {
		baseSelect = baseSelect.Where(sq.Eq{"r.stage": filter.Stages})
	}
	if filter.MaintenanceType != "" {
		baseSelect = baseSelect.Where(sq.Eq{"r.maintenance_type": filter.MaintenanceType})
	}

	countBuilder := baseSelect.Columns("COUNT(r.id)")
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса: %w", err)
	}
	var totalCount uint64
	if err = r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("ошибка выполнения COUNT-запроса: %w", err)
	}
	if totalCount == 0 {
		return []entities.ReportItem{}, 0, nil
	}

	sortOrder := "r.id DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "r.id ASC"
	}

	mainBuilder := baseSelect.Columns(
		"r.id", "r.name", "r.stage", "r.maintenance_type", "r.priority",
		"e.id", "e.name", "e.serial_number",
		"c.name", "t.name", "tech.fio",
		"r.request_date", "r.schedule_date", "r.close_date",
		"CASE WHEN r.close_date IS NOT NULL THEN ROUND(EXTRACT(EPOCH FROM (r.close_date - r.request_date))::numeric / 86400, 2) ELSE NULL END",
		"r.duration_hours", "r.cost_parts",
		"ROUND((r.duration_hours * r.cost_labor_rate)::numeric, 2)",
		"ROUND((r.cost_parts + r.duration_hours * r.cost_labor_rate)::numeric, 2)",
	).OrderBy(sortOrder)

	if filter.PerPage > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		mainBuilder = mainBuilder.Limit(uint64(filter.PerPage)).Offset(uint64((page - 1) * filter.PerPage))
	}

	query, args, err := mainBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки основного запроса: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка выполнения основного запроса: %w", err)
	}
	defer rows.Close()

	items := make([]entities.ReportItem, 0)
	for rows.Next() {
		var item entities.ReportItem
		err := rows.Scan(
			&item.RequestID, &item.RequestName, &item.Stage, &item.MaintenanceType, &item.Priority,
			&item.EquipmentID, &item.EquipmentName, &item.SerialNumber,
			&item.CategoryName, &item.TeamName, &item.TechnicianName,
			&item.RequestDate, &item.ScheduleDate, &item.CloseDate,
			&item.ResolutionDays,
			&item.DurationHours, &item.CostParts, &item.CostLabor, &item.CostTotal,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования строки отчета: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, totalCount, nil
}
