package seeders

import (
	"context"
	"log"

	"gearguard/internal/authz"
	"gearguard/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Базовые роли и их привилегии. Сидер только добавляет недостающие связи,
// чтобы не затирать права, настроенные вручную.
func rolePermissionsMap() map[string][]string {
	return map[string][]string{
		"admin": {authz.Superuser},
		"manager": {
			authz.EquipmentCreate, authz.EquipmentView, authz.EquipmentUpdate, authz.EquipmentDelete, authz.EquipmentScrap,
			authz.RequestsCreate, authz.RequestsView, authz.RequestsUpdate, authz.RequestsDelete,
			authz.TeamsCreate, authz.TeamsView, authz.TeamsUpdate, authz.TeamsDelete,
			authz.CatalogsCreate, authz.CatalogsView, authz.CatalogsUpdate, authz.CatalogsDelete,
			authz.UsersView, authz.RolesView, authz.PermissionsView,
			authz.ReportsView, authz.DashboardView, authz.WarrantySend,
			authz.ScopeAll,
		},
		"technician": {
			authz.EquipmentView,
			authz.RequestsCreate, authz.RequestsView, authz.RequestsUpdate,
			authz.TeamsView, authz.CatalogsView, authz.DashboardView,
			authz.ScopeOwn,
		},
	}
}

var roleDescriptions = map[string]string{
	"admin":      "Администратор системы",
	"manager":    "Руководитель обслуживания",
	"technician": "Техник",
}

func seedRoles(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'roles'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for name, description := range roleDescriptions {
		_, err := tx.Exec(ctx,
			`INSERT INTO roles (name, description) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING;`,
			name, description)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedRolePermissions(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'role_permissions'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO role_permissions (role_id, permission_id)
		SELECT r.id, p.id FROM roles r, permissions p
		WHERE r.name = $1 AND p.name = $2
		ON CONFLICT DO NOTHING;`

	for roleName, permissions := range rolePermissionsMap() {
		for _, permissionName := range permissions {
			if _, err := tx.Exec(ctx, query, roleName, permissionName); err != nil {
				return err
			}
		}
	}
	return tx.Commit(ctx)
}

func seedAdminUser(ctx context.Context, db *pgxpool.Pool, cfg *config.Config) error {
	log.Println("  - Создание администратора...")

	email := "admin@gearguard.local"
	var exists bool
	if err := db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))", email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		log.Println("    - Администратор уже существует, пропуск.")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx, `
		INSERT INTO users (fio, email, phone_number, password, role_id, active)
		SELECT 'Администратор', $1, '', $2, r.id, TRUE FROM roles r WHERE r.name = 'admin'`,
		email, string(hash))
	if err != nil {
		return err
	}
	log.Println("    - Администратор создан: admin@gearguard.local / admin (смените пароль).")
	return nil
}
