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

const equipmentSelectFieldsRepo = `e.id, e.name, e.serial_number, e.state, e.active,
	e.location, e.note, e.photo_url, e.purchase_date, e.warranty_date, e.scrap_date,
	e.owner_type, e.department_id, e.employee_id,
	e.category_id, e.team_id, e.technician_id,
	e.created_at, e.updated_at, e.deleted_at`

var equipmentAllowedFilterFields = map[string]bool{
	"category_id": true, "team_id": true, "technician_id": true,
	"department_id": true, "state": true, "active": true,
}
var equipmentAllowedSortFields = map[string]bool{
	"id": true, "name": true, "serial_number": true,
	"purchase_date": true, "warranty_date": true, "created_at": true,
}

// MaintenanceHistoryRow - сырая строка истории обслуживания единицы
// оборудования. Производные показатели считает сервисный слой.
type MaintenanceHistoryRow struct {
	MaintenanceType string
	Stage           string
	CloseDate       *time.Time
	DurationHours   float64
	CostParts       float64
	CostLaborRate   float64
}

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	FindBySerial(ctx context.Context, serial string) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, entity *entities.Equipment) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, entity *entities.Equipment) (*entities.Equipment, error)
	UpdatePhotoURL(ctx context.Context, id uint64, photoURL string) error
	DeleteEquipment(ctx context.Context, id uint64) error
	ScrapInTx(ctx context.Context, tx pgx.Tx, id uint64, scrapDate time.Time) error
	GetMaintenanceHistory(ctx context.Context, equipmentID uint64) ([]MaintenanceHistoryRow, error)
	ListWarrantyExpiring(ctx context.Context, from, to time.Time) ([]entities.Equipment, error)
	ListByIDs(ctx context.Context, ids []uint64) ([]entities.Equipment, error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(
		&e.ID, &e.Name, &e.SerialNumber, &e.State, &e.Active,
		&e.Location, &e.Note, &e.PhotoURL, &e.PurchaseDate, &e.WarrantyDate, &e.ScrapDate,
		&e.OwnerType, &e.DepartmentID, &e.EmployeeID,
		&e.CategoryID, &e.TeamID, &e.TechnicianID,
		&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	args := make([]interface{}, 0)
	conditions := []string{"e.deleted_at IS NULL"}

	for key, value := range filter.Filter {
		if !equipmentAllowedFilterFields[key] {
			continue
		}
		if list, ok := value.([]string); ok {
			args = append(args, list)
			conditions = append(conditions, fmt.Sprintf("e.%s::text = ANY($%d)", key, len(args)))
			continue
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("e.%s = $%d", key, len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		conditions = append(conditions, fmt.Sprintf(
			"(e.name ILIKE %s OR e.serial_number ILIKE %s OR e.location ILIKE %s)",
			placeholder, placeholder, placeholder))
	}

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(e.id) FROM equipments e %s", whereClause)
	r.logger.Debug("Выполнение SQL-запроса на подсчет оборудования", zap.String("query", countQuery))

	var totalCount uint64
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета оборудования: %w", err)
	}
	if totalCount == 0 {
		return []entities.Equipment{}, 0, nil
	}

	orderBy := "e.id DESC"
	for field, dir := range filter.Sort {
		if !equipmentAllowedSortFields[field] {
			continue
		}
		direction := "ASC"
		if strings.EqualFold(dir, "desc") {
			direction = "DESC"
		}
		orderBy = fmt.Sprintf("e.%s %s", field, direction)
		break
	}

	query := fmt.Sprintf(
		"SELECT %s FROM equipments e %s ORDER BY %s LIMIT $%d OFFSET $%d",
		equipmentSelectFieldsRepo, whereClause, orderBy, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка выборки оборудования: %w", err)
	}
	defer rows.Close()

	equipments := make([]entities.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		equipments = append(equipments, *e)
	}
	return equipments, totalCount, rows.Err()
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := fmt.Sprintf("SELECT %s FROM equipments e WHERE e.id = $1 AND e.deleted_at IS NULL", equipmentSelectFieldsRepo)
	return scanEquipment(r.storage.QueryRow(ctx, query, id))
}

func (r *EquipmentRepository) FindBySerial(ctx context.Context, serial string) (*entities.Equipment, error) {
	query := fmt.Sprintf("SELECT %s FROM equipments e WHERE e.serial_number = $1 AND e.deleted_at IS NULL", equipmentSelectFieldsRepo)
	return scanEquipment(r.storage.QueryRow(ctx, query, serial))
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, entity *entities.Equipment) (*entities.Equipment, error) {
	err := r.storage.QueryRow(ctx, `
		INSERT INTO equipments (name, serial_number, state, active, location, note,
			purchase_date, warranty_date, owner_type, department_id, employee_id,
			category_id, team_id, technician_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at`,
		entity.Name, entity.SerialNumber, entity.State, entity.Active, entity.Location, entity.Note,
		entity.PurchaseDate, entity.WarrantyDate, entity.OwnerType, entity.DepartmentID, entity.EmployeeID,
		entity.CategoryID, entity.TeamID, entity.TechnicianID,
	).Scan(&entity.ID, &entity.CreatedAt, &entity.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания оборудования: %w", err)
	}
	return entity, nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, entity *entities.Equipment) (*entities.Equipment, error) {
	err := r.storage.QueryRow(ctx, `
		UPDATE equipments
		SET name = $1, serial_number = $2, state = $3, active = $4, location = $5, note = $6,
		    purchase_date = $7, warranty_date = $8, owner_type = $9, department_id = $10,
		    employee_id = $11, category_id = $12, team_id = $13, technician_id = $14,
		    updated_at = NOW()
		WHERE id = $15 AND deleted_at IS NULL
		RETURNING updated_at`,
		entity.Name, entity.SerialNumber, entity.State, entity.Active, entity.Location, entity.Note,
		entity.PurchaseDate, entity.WarrantyDate, entity.OwnerType, entity.DepartmentID,
		entity.EmployeeID, entity.CategoryID, entity.TeamID, entity.TechnicianID,
		entity.ID,
	).Scan(&entity.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка обновления оборудования: %w", err)
	}
	return entity, nil
}

func (r *EquipmentRepository) UpdatePhotoURL(ctx context.Context, id uint64, photoURL string) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE equipments SET photo_url = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL",
		photoURL, id)
	if err != nil {
		return fmt.Errorf("ошибка обновления фото оборудования: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE equipments SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL", id)
	if err != nil {
		return fmt.Errorf("ошибка удаления оборудования: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ScrapInTx переводит оборудование в состояние "списано" в рамках
// транзакции списания заявки.
func (r *EquipmentRepository) ScrapInTx(ctx context.Context, tx pgx.Tx, id uint64, scrapDate time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE equipments
		SET active = FALSE, state = $1, scrap_date = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL`,
		entities.EquipmentStateScrapped, scrapDate, id)
	if err != nil {
		return fmt.Errorf("ошибка списания оборудования: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) GetMaintenanceHistory(ctx context.Context, equipmentID uint64) ([]MaintenanceHistoryRow, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT maintenance_type, stage, close_date, duration_hours, cost_parts, cost_labor_rate
		FROM maintenance_requests
		WHERE equipment_id = $1 AND deleted_at IS NULL
		ORDER BY close_date ASC NULLS LAST`, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки истории обслуживания: %w", err)
	}
	defer rows.Close()

	history := make([]MaintenanceHistoryRow, 0)
	for rows.Next() {
		var row MaintenanceHistoryRow
		if err := rows.Scan(&row.MaintenanceType, &row.Stage, &row.CloseDate,
			&row.DurationHours, &row.CostParts, &row.CostLaborRate); err != nil {
			return nil, err
		}
		history = append(history, row)
	}
	return history, rows.Err()
}

// ListWarrantyExpiring отдает активное оборудование с гарантией,
// истекающей в интервале (from, to].
func (r *EquipmentRepository) ListWarrantyExpiring(ctx context.Context, from, to time.Time) ([]entities.Equipment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM equipments e
		WHERE e.deleted_at IS NULL AND e.active = TRUE
		  AND e.warranty_date IS NOT NULL
		  AND e.warranty_date > $1 AND e.warranty_date <= $2
		ORDER BY e.warranty_date`, equipmentSelectFieldsRepo)

	rows, err := r.storage.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки оборудования с истекающей гарантией: %w", err)
	}
	defer rows.Close()

	equipments := make([]entities.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		equipments = append(equipments, *e)
	}
	return equipments, rows.Err()
}

func (r *EquipmentRepository) ListByIDs(ctx context.Context, ids []uint64) ([]entities.Equipment, error) {
	if len(ids) == 0 {
		return []entities.Equipment{}, nil
	}
	query := fmt.Sprintf(
		"SELECT %s FROM equipments e WHERE e.id = ANY($1) AND e.deleted_at IS NULL ORDER BY e.id",
		equipmentSelectFieldsRepo)

	rows, err := r.storage.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки оборудования по списку id: %w", err)
	}
	defer rows.Close()

	equipments := make([]entities.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		equipments = append(equipments, *e)
	}
	return equipments, rows.Err()
}
