package main

import (
	"context"
	"log"
	"os"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/config"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/db"
	productrepo "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/repository/product"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	inserted, err := seed.Apply(ctx, productrepo.NewPostgres(pool, logger), logger)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}
	logger.Printf("seed applied, %d products inserted", inserted)
}
