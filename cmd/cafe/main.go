package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cafe-pos/cafe/internal/cli"
	"github.com/cafe-pos/cafe/internal/config"
	"github.com/cafe-pos/cafe/internal/database"
	"github.com/cafe-pos/cafe/internal/service"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <dbname> <port>\n", os.Args[0])
		os.Exit(1)
	}
	cfg := config.Load(os.Args[1], os.Args[2])

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Println("Make sure you started postgres on this machine")
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	queries := database.New(pool)

	app := cli.NewApp(os.Stdin, os.Stdout, cli.Services{
		Auth:    service.NewAuthService(queries),
		Catalog: service.NewCatalogService(queries),
		Orders: service.NewOrderService(pool, func(db database.DBTX) service.OrderStore {
			return database.New(db)
		}),
		Fulfillment: service.NewFulfillmentService(queries),
		Admin:       service.NewAdminService(queries),
		Profile:     service.NewProfileService(queries),
	})

	if err := app.Run(ctx); err != nil {
		log.Fatalf("session ended with error: %v", err)
	}
}
