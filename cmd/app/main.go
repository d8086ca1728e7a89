package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"invoice-discounting/internal/adapters/cli"
	"invoice-discounting/internal/app"
	"invoice-discounting/internal/bus"
	"invoice-discounting/internal/core"
	"invoice-discounting/internal/db"
	"invoice-discounting/internal/store"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		log.Fatal("Usage: app <command> [args]\nCommands: quote, score, contracts, invoices")
	}

	ctx := context.Background()

	var st store.Store
	if os.Getenv("DATABASE_URL") != "" {
		pool, err := db.NewPool(ctx)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer pool.Close()
		st = store.NewPostgresStore(pool)
	} else {
		st = store.NewMemoryStore()
	}

	b := bus.New()
	engine := core.NewWorkflowEngine(st, b, nil)
	svc := app.NewAppService(st, engine, nil)

	cli.Run(ctx, svc, os.Args[1:])
}
