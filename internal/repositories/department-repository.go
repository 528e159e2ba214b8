package repositories

import (
	"context"
	"errors"
	"fmt"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DepartmentRepositoryInterface interface {
	GetDepartments(ctx context.Context) ([]entities.Department, error)
	FindDepartment(ctx context.Context, id uint64) (*entities.Department, error)
}

type DepartmentRepository struct {
	storage *pgxpool.Pool
}

func NewDepartmentRepository(storage *pgxpool.Pool) DepartmentRepositoryInterface {
	return &DepartmentRepository{storage: storage}
}

func (r *DepartmentRepository) GetDepartments(ctx context.Context) ([]entities.Department, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT id, name, created_at, updated_at FROM departments ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки отделов: %w", err)
	}
	defer rows.Close()

	departments := make([]entities.Department, 0)
	for rows.Next() {
		var d entities.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *DepartmentRepository) FindDepartment(ctx context.Context, id uint64) (*entities.Department, error) {
	var d entities.Department
	err := r.storage.QueryRow(ctx,
		"SELECT id, name, created_at, updated_at FROM departments WHERE id = $1", id).
		Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}
