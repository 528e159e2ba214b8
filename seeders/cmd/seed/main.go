package main

import (
	"flag"
	"log"

	"gearguard/pkg/config"
	"gearguard/pkg/database/postgresql"
	"gearguard/seeders"
)

func main() {
	runCore := flag.Bool("core", false, "Наполнить привилегии и базовые справочники")
	runRoles := flag.Bool("roles", false, "Создать роли и администратора")
	runAll := flag.Bool("all", false, "Запустить все сидеры")
	flag.Parse()

	if !*runCore && !*runRoles && !*runAll {
		log.Println("Не выбран ни один сидер для запуска.")
		flag.PrintDefaults()
		log.Println("Пример: go run ./seeders/cmd/seed -all")
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if *runAll || *runCore {
		seeders.SeedCore(dbPool)
	}
	if *runAll || *runRoles {
		seeders.SeedRolesAndAdmin(dbPool, cfg)
	}

	log.Println("Сидирование завершено.")
}
