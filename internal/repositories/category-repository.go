package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categorySelectFieldsRepo = "c.id, c.name, c.color, c.note, c.created_at, c.updated_at, c.deleted_at"

type CategoryRepositoryInterface interface {
	GetCategories(ctx context.Context, filter types.Filter) ([]entities.EquipmentCategory, uint64, error)
	FindCategory(ctx context.Context, id uint64) (*entities.EquipmentCategory, error)
	CreateCategory(ctx context.Context, entity *entities.EquipmentCategory) (*entities.EquipmentCategory, error)
	UpdateCategory(ctx context.Context, entity *entities.EquipmentCategory) (*entities.EquipmentCategory, error)
	DeleteCategory(ctx context.Context, id uint64) error
	CountEquipment(ctx context.Context, categoryID uint64) (uint64, error)
}

type CategoryRepository struct {
	storage *pgxpool.Pool
}

func NewCategoryRepository(storage *pgxpool.Pool) CategoryRepositoryInterface {
	return &CategoryRepository{storage: storage}
}

func scanCategory(row pgx.Row) (*entities.EquipmentCategory, error) {
	var c entities.EquipmentCategory
	err := row.Scan(&c.ID, &c.Name, &c.Color, &c.Note, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) GetCategories(ctx context.Context, filter types.Filter) ([]entities.EquipmentCategory, uint64, error) {
	args := make([]interface{}, 0)
	conditions := []string{"c.deleted_at IS NULL"}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("c.name ILIKE $%d", len(args)))
	}

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	var totalCount uint64
	countQuery := fmt.Sprintf("SELECT COUNT(c.id) FROM equipment_categories c %s", whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета категорий: %w", err)
	}
	if totalCount == 0 {
		return []entities.EquipmentCategory{}, 0, nil
	}

	query := fmt.Sprintf(
		"SELECT %s FROM equipment_categories c %s ORDER BY c.name LIMIT $%d OFFSET $%d",
		categorySelectFieldsRepo, whereClause, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка выборки категорий: %w", err)
	}
	defer rows.Close()

	categories := make([]entities.EquipmentCategory, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, err
		}
		categories = append(categories, *c)
	}
	return categories, totalCount, rows.Err()
}

func (r *CategoryRepository) FindCategory(ctx context.Context, id uint64) (*entities.EquipmentCategory, error) {
	query := fmt.Sprintf("SELECT %s FROM equipment_categories c WHERE c.id = $1 AND c.deleted_at IS NULL", categorySelectFieldsRepo)
	return scanCategory(r.storage.QueryRow(ctx, query, id))
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, entity *entities.EquipmentCategory) (*entities.EquipmentCategory, error) {
	err := r.storage.QueryRow(ctx, `
		INSERT INTO equipment_categories (name, color, note)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		entity.Name, entity.Color, entity.Note,
	).Scan(&entity.ID, &entity.CreatedAt, &entity.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания категории: %w", err)
	}
	return entity, nil
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, entity *entities.EquipmentCategory) (*entities.EquipmentCategory, error) {
	err := r.storage.QueryRow(ctx, `
		UPDATE equipment_categories
		SET name = $1, color = $2, note = $3, updated_at = NOW()
		WHERE id = $4 AND deleted_at IS NULL
		RETURNING updated_at`,
		entity.Name, entity.Color, entity.Note, entity.ID,
	).Scan(&entity.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка обновления категории: %w", err)
	}
	return entity, nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE equipment_categories SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL", id)
	if err != nil {
		return fmt.Errorf("ошибка удаления категории: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountEquipment считает активное оборудование категории.
func (r *CategoryRepository) CountEquipment(ctx context.Context, categoryID uint64) (uint64, error) {
	var count uint64
	err := r.storage.QueryRow(ctx,
		"SELECT COUNT(id) FROM equipments WHERE category_id = $1 AND active = TRUE AND deleted_at IS NULL",
		categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета оборудования категории: %w", err)
	}
	return count, nil
}
