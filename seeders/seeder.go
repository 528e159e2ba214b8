package seeders

import (
	"context"
	"log"

	"gearguard/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedCore наполняет привилегии и базовые справочники.
func SeedCore(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("Запуск базовых сидеров...")

	if err := seedPermissions(ctx, db); err != nil {
		log.Fatalf("ошибка сидера привилегий: %v", err)
	}
	if err := seedDictionaries(ctx, db); err != nil {
		log.Fatalf("ошибка сидера справочников: %v", err)
	}
	log.Println("Базовые сидеры завершены.")
}

// SeedRolesAndAdmin создает роли, их привилегии и администратора.
// Зависит от SeedCore (привилегии должны существовать).
func SeedRolesAndAdmin(db *pgxpool.Pool, cfg *config.Config) {
	ctx := context.Background()
	log.Println("Запуск сидера ролей и администратора...")

	if err := seedRoles(ctx, db); err != nil {
		log.Fatalf("ошибка сидера ролей: %v", err)
	}
	if err := seedRolePermissions(ctx, db); err != nil {
		log.Fatalf("ошибка сидера связей роль-привилегия: %v", err)
	}
	if err := seedAdminUser(ctx, db, cfg); err != nil {
		log.Fatalf("ошибка создания администратора: %v", err)
	}
	log.Println("Сидер ролей и администратора завершен.")
}
