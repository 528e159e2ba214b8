package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedDictionaries(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение базовых справочников...")

	departments := []string{"Производство", "Администрация", "Склад"}
	for _, name := range departments {
		if _, err := db.Exec(ctx,
			"INSERT INTO departments (name) VALUES ($1) ON CONFLICT (name) DO NOTHING;", name); err != nil {
			return err
		}
	}

	categories := []struct {
		Name  string
		Color int16
	}{
		{"Станки", 1},
		{"Компьютеры", 4},
		{"Транспорт", 7},
	}
	for _, c := range categories {
		if _, err := db.Exec(ctx,
			"INSERT INTO equipment_categories (name, color) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING;",
			c.Name, c.Color); err != nil {
			return err
		}
	}

	teams := []struct {
		Name  string
		Color int16
	}{
		{"Внутреннее обслуживание", 2},
		{"Подрядчик", 5},
	}
	for _, t := range teams {
		if _, err := db.Exec(ctx,
			"INSERT INTO maintenance_teams (name, color) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING;",
			t.Name, t.Color); err != nil {
			return err
		}
	}

	log.Println("    - Справочники успешно проверены/созданы.")
	return nil
}
