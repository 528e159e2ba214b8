package seeders

import (
	"context"
	"log"

	"gearguard/internal/authz"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Описания привилегий для справки в админке.
var permissionDescriptions = map[string]string{
	authz.EquipmentCreate: "Создание оборудования",
	authz.EquipmentView:   "Просмотр оборудования",
	authz.EquipmentUpdate: "Изменение оборудования",
	authz.EquipmentDelete: "Удаление оборудования",
	authz.EquipmentScrap:  "Списание оборудования",

	authz.RequestsCreate: "Создание заявок на обслуживание",
	authz.RequestsView:   "Просмотр заявок на обслуживание",
	authz.RequestsUpdate: "Изменение заявок и смена этапа",
	authz.RequestsDelete: "Удаление заявок на обслуживание",

	authz.TeamsCreate: "Создание команд обслуживания",
	authz.TeamsView:   "Просмотр команд обслуживания",
	authz.TeamsUpdate: "Изменение команд обслуживания",
	authz.TeamsDelete: "Удаление команд обслуживания",

	authz.CatalogsCreate: "Создание справочников",
	authz.CatalogsView:   "Просмотр справочников",
	authz.CatalogsUpdate: "Изменение справочников",
	authz.CatalogsDelete: "Удаление справочников",

	authz.UsersCreate:     "Создание пользователей",
	authz.UsersView:       "Просмотр пользователей",
	authz.UsersUpdate:     "Изменение пользователей",
	authz.UsersDelete:     "Удаление пользователей",
	authz.RolesView:       "Просмотр ролей",
	authz.PermissionsView: "Просмотр привилегий",

	authz.ReportsView:   "Просмотр отчетов",
	authz.DashboardView: "Просмотр дашборда",
	authz.WarrantySend:  "Ручная рассылка гарантийных уведомлений",

	authz.ScopeOwn:  "Видимость: только свои заявки",
	authz.ScopeTeam: "Видимость: заявки своей команды",
	authz.ScopeAll:  "Видимость: все заявки",

	authz.Superuser: "Полный доступ без проверок привилегий",
}

func seedPermissions(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'permissions'...")

	query := `INSERT INTO permissions (name, description) VALUES ($1, $2)
			  ON CONFLICT (name) DO NOTHING;`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, name := range authz.All {
		if _, err := tx.Exec(ctx, query, name, permissionDescriptions[name]); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
