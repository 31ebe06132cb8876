package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"attendease/internal/config"
	"attendease/internal/store"
)

// Seed creates the schema and loads the demo dataset: admin/admin123 and
// teacher/teacher123 accounts, three courses, subjects with weekly sessions,
// and ten students. Safe to re-run.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := store.InitSchema(ctx, db.Client); err != nil {
		log.Fatalf("schema init failed: %v", err)
	}
	log.Println("schema ready")

	if err := store.SeedDemo(ctx, db.Client); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Println("seed complete: login with admin/admin123 or teacher/teacher123")
}
