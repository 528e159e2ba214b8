package repositories

import (
	"context"
	"fmt"

	"gearguard/internal/entities"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PermissionRepositoryInterface interface {
	GetPermissions(ctx context.Context) ([]entities.Permission, error)
	GetPermissionsNamesByRoleID(ctx context.Context, roleID uint64) ([]string, error)
}

type PermissionRepository struct {
	storage *pgxpool.Pool
}

func NewPermissionRepository(storage *pgxpool.Pool) PermissionRepositoryInterface {
	return &PermissionRepository{storage: storage}
}

func (r *PermissionRepository) GetPermissions(ctx context.Context) ([]entities.Permission, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT id, name, description, created_at, updated_at FROM permissions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки привилегий: %w", err)
	}
	defer rows.Close()

	permissions := make([]entities.Permission, 0)
	for rows.Next() {
		var p entities.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		permissions = append(permissions, p)
	}
	return permissions, rows.Err()
}

// GetPermissionsNamesByRoleID отдает имена привилегий роли для кеша авторизации.
func (r *PermissionRepository) GetPermissionsNamesByRoleID(ctx context.Context, roleID uint64) ([]string, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT p.name
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role_id = $1
		ORDER BY p.name`, roleID)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки привилегий роли: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
