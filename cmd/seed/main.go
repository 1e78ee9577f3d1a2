package main

import (
	"log"

	"smart_eujian_backend/internals/configs"
	database "smart_eujian_backend/internals/databases"
	"smart_eujian_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	db := configs.InitSeederDB()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ migrate: %v", err)
	}

	seeds.RunAllSeeds(db)
	log.Println("✅ Seeding selesai")

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
