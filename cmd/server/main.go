package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	webAdapter "invoice-discounting/internal/adapters/web"
	"invoice-discounting/internal/app"
	"invoice-discounting/internal/bus"
	"invoice-discounting/internal/core"
	"invoice-discounting/internal/db"
	"invoice-discounting/internal/store"
)

func main() {
	_ = godotenv.Load()

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
		log.Println("DATABASE_URL not set; using in-memory store")
		st = store.NewMemoryStore()
	}

	b := bus.New()
	engine := core.NewWorkflowEngine(st, b, nil)
	svc := app.NewAppService(st, engine, nil)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, b, allowedOrigins)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
