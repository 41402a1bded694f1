package main

import (
	"context"
	"log"
	"os"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/config"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/datamigrate"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/db"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/migrate"
	productrepo "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/repository/product"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}
	logger.Println("schema migrations applied")

	count, err := datamigrate.NewRunner(productrepo.NewPostgres(pool, logger), logger).Run(ctx)
	if err != nil {
		logger.Fatalf("data migrations: %v", err)
	}
	logger.Printf("data migrations applied, %d products rewritten", count)
}
