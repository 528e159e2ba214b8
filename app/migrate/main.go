package main

import (
	"database/sql"
	"flag"
	"log"

	"gearguard/pkg/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const migrationsDir = "db/migrations"

// Запуск: go run ./app/migrate -cmd up | down | status
func main() {
	cmd := flag.String("cmd", "up", "команда goose: up, down, status")
	flag.Parse()

	cfg := config.New()

	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("не удалось открыть соединение с БД: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("goose: %v", err)
	}

	switch *cmd {
	case "up":
		err = goose.Up(db, migrationsDir)
	case "down":
		err = goose.Down(db, migrationsDir)
	case "status":
		err = goose.Status(db, migrationsDir)
	default:
		log.Fatalf("неизвестная команда: %s", *cmd)
	}
	if err != nil {
		log.Fatalf("goose %s: %v", *cmd, err)
	}
}
