package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/manzapp/manz/backend/internal/database"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "migrations", "Directory holding the NNNN_name.up.sql and .down.sql files")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to reach database: %v", err)
	}

	if *rollback {
		name, err := database.RollbackLast(ctx, db, *dir)
		if errors.Is(err, database.ErrNothingToRollback) {
			log.Println("No migrations to roll back")
			return
		}
		if err != nil {
			log.Fatalf("rollback failed: %v", err)
		}
		log.Printf("Rolled back migration %s", name)
		return
	}

	applied, err := database.ApplyMigrations(ctx, db, *dir)
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if len(applied) == 0 {
		log.Println("Database is up to date")
		return
	}
	log.Printf("Applied %d migration(s)", len(applied))
}
