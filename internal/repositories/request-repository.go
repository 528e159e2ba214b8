package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const requestSelectFieldsRepo = `r.id, r.name, r.description, r.equipment_id, r.category_id,
	r.team_id, r.technician_id, r.created_by_id, r.maintenance_type, r.stage, r.priority,
	r.request_date, r.schedule_date, r.close_date,
	r.duration_hours, r.cost_parts, r.cost_labor_rate,
	r.created_at, r.updated_at, r.deleted_at`

var requestAllowedFilterFields = map[string]bool{
	"equipment_id": true, "category_id": true, "team_id": true, "technician_id": true,
	"stage": true, "maintenance_type": true, "priority": true, "created_by_id": true,
}
var requestAllowedSortFields = map[string]bool{
	"id": true, "name": true, "priority": true, "request_date": true,
	"schedule_date": true, "close_date": true, "created_at": true,
}

// OverdueRow - просроченная заявка вместе с контактами техника,
// используется планировщиком напоминаний.
type OverdueRow struct {
	RequestID       uint64
	RequestName     string
	EquipmentName   string
	ScheduleDate    time.Time
	TechnicianID    *uint64
	TechnicianFio   *string
	TechnicianEmail *string
}

type RequestRepositoryInterface interface {
	GetRequests(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, uint64, error)
	FindRequest(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error)
	CreateRequest(ctx context.Context, entity *entities.MaintenanceRequest) (*entities.MaintenanceRequest, error)
	UpdateRequest(ctx context.Context, entity *entities.MaintenanceRequest) (*entities.MaintenanceRequest, error)
	UpdateStageInTx(ctx context.Context, tx pgx.Tx, entity *entities.MaintenanceRequest) error
	DeleteRequest(ctx context.Context, id uint64) error
	ListOverdue(ctx context.Context, today time.Time) ([]OverdueRow, error)
}

type RequestRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRequestRepository(storage *pgxpool.Pool, logger *zap.Logger) RequestRepositoryInterface {
	return &RequestRepository{storage: storage, logger: logger}
}

func scanRequest(row pgx.Row) (*entities.MaintenanceRequest, error) {
	var r entities.MaintenanceRequest
	err := row.Scan(
		&r.ID, &r.Name, &r.Description, &r.EquipmentID, &r.CategoryID,
		&r.TeamID, &r.TechnicianID, &r.CreatedByID, &r.MaintenanceType, &r.Stage, &r.Priority,
		&r.RequestDate, &r.ScheduleDate, &r.CloseDate,
		&r.DurationHours, &r.CostParts, &r.CostLaborRate,
		&r.CreatedAt, &r.UpdatedAt, &r.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (r *RequestRepository) GetRequests(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, uint64, error) {
	args := make([]interface{}, 0)
	conditions := []string{"r.deleted_at IS NULL"}

	for key, value := range filter.Filter {
		if !requestAllowedFilterFields[key] {
			continue
		}
		if list, ok := value.([]string); ok {
			args = append(args, list)
			conditions = append(conditions, fmt.Sprintf("r.%s::text = ANY($%d)", key, len(args)))
			continue
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("r.%s = $%d", key, len(args)))
	}

	// filter[overdue]=true сужает до просроченных заявок
	if overdue, ok := filter.Filter["overdue"]; ok {
		if v, isStr := overdue.(string); isStr && v == "true" {
			conditions = append(conditions,
				"r.schedule_date < CURRENT_DATE AND r.stage NOT IN ('repaired', 'scrap')")
		}
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		conditions = append(conditions, fmt.Sprintf(
			"(r.name ILIKE %s OR r.description ILIKE %s)", placeholder, placeholder))
	}

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(r.id) FROM maintenance_requests r %s", whereClause)
	r.logger.Debug("Выполнение SQL-запроса на подсчет заявок", zap.String("query", countQuery))

	var totalCount uint64
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета заявок: %w", err)
	}
	if totalCount == 0 {
		return []entities.MaintenanceRequest{}, 0, nil
	}

	orderBy := "r.id DESC"
	for field, dir := range filter.Sort {
		if !requestAllowedSortFields[field] {
			continue
		}
		direction := "ASC"
		if strings.EqualFold(dir, "desc") {
			direction = "DESC"
		}
		orderBy = fmt.Sprintf("r.%s %s", field, direction)
		break
	}

	query := fmt.Sprintf(
		"SELECT %s FROM maintenance_requests r %s ORDER BY %s LIMIT $%d OFFSET $%d",
		requestSelectFieldsRepo, whereClause, orderBy, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка выборки заявок: %w", err)
	}
	defer rows.Close()

	requests := make([]entities.MaintenanceRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, *req)
	}
	return requests, totalCount, rows.Err()
}

func (r *RequestRepository) FindRequest(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM maintenance_requests r WHERE r.id = $1 AND r.deleted_at IS NULL", requestSelectFieldsRepo)
	return scanRequest(r.storage.QueryRow(ctx, query, id))
}

func (r *RequestRepository) CreateRequest(ctx context.Context, entity *entities.MaintenanceRequest) (*entities.MaintenanceRequest, error) {
	err := r.storage.QueryRow(ctx, `
		INSERT INTO maintenance_requests (name, description, equipment_id, category_id,
			team_id, technician_id, created_by_id, maintenance_type, stage, priority,
			request_date, schedule_date, duration_hours, cost_parts, cost_labor_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`,
		entity.Name, entity.Description, entity.EquipmentID, entity.CategoryID,
		entity.TeamID, entity.TechnicianID, entity.CreatedByID, entity.MaintenanceType,
		entity.Stage, entity.Priority,
		entity.RequestDate, entity.ScheduleDate,
		entity.DurationHours, entity.CostParts, entity.CostLaborRate,
	).Scan(&entity.ID, &entity.CreatedAt, &entity.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания заявки: %w", err)
	}
	return entity, nil
}

func (r *RequestRepository) UpdateRequest(ctx context.Context, entity *entities.MaintenanceRequest) (*entities.MaintenanceRequest, error) {
	err := r.storage.QueryRow(ctx, `
		UPDATE maintenance_requests
		SET name = $1, description = $2, category_id = $3, team_id = $4,
		    technician_id = $5, maintenance_type = $6, priority = $7,
		    schedule_date = $8, duration_hours = $9, cost_parts = $10,
		    cost_labor_rate = $11, updated_at = NOW()
		WHERE id = $12 AND deleted_at IS NULL
		RETURNING updated_at`,
		entity.Name, entity.Description, entity.CategoryID, entity.TeamID,
		entity.TechnicianID, entity.MaintenanceType, entity.Priority,
		entity.ScheduleDate, entity.DurationHours, entity.CostParts,
		entity.CostLaborRate, entity.ID,
	).Scan(&entity.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка обновления заявки: %w", err)
	}
	return entity, nil
}

// UpdateStageInTx пишет смену этапа вместе с полями закрытия. Вызывается
// из сервиса внутри транзакции, чтобы списание оборудования шло атомарно.
func (r *RequestRepository) UpdateStageInTx(ctx context.Context, tx pgx.Tx, entity *entities.MaintenanceRequest) error {
	err := tx.QueryRow(ctx, `
		UPDATE maintenance_requests
		SET stage = $1, close_date = $2, technician_id = $3,
		    duration_hours = $4, cost_parts = $5, updated_at = NOW()
		WHERE id = $6 AND deleted_at IS NULL
		RETURNING updated_at`,
		entity.Stage, entity.CloseDate, entity.TechnicianID,
		entity.DurationHours, entity.CostParts, entity.ID,
	).Scan(&entity.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("ошибка смены этапа заявки: %w", err)
	}
	return nil
}

func (r *RequestRepository) DeleteRequest(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE maintenance_requests SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL", id)
	if err != nil {
		return fmt.Errorf("ошибка удаления заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RequestRepository) ListOverdue(ctx context.Context, today time.Time) ([]OverdueRow, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT r.id, r.name, e.name, r.schedule_date,
		       r.technician_id, u.fio, u.email
		FROM maintenance_requests r
		JOIN equipments e ON e.id = r.equipment_id
		LEFT JOIN users u ON u.id = r.technician_id
		WHERE r.deleted_at IS NULL
		  AND r.schedule_date IS NOT NULL AND r.schedule_date < $1
		  AND r.stage NOT IN ('repaired', 'scrap')
		ORDER BY r.technician_id NULLS LAST, r.schedule_date`, today)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки просроченных заявок: %w", err)
	}
	defer rows.Close()

	overdue := make([]OverdueRow, 0)
	for rows.Next() {
		var row OverdueRow
		if err := rows.Scan(&row.RequestID, &row.RequestName, &row.EquipmentName,
			&row.ScheduleDate, &row.TechnicianID, &row.TechnicianFio, &row.TechnicianEmail); err != nil {
			return nil, err
		}
		overdue = append(overdue, row)
	}
	return overdue, rows.Err()
}
