package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/config"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/db"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/importer"
	productrepo "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/repository/product"
)

func main() {
	var (
		filePath string
		export   bool
	)
	flag.StringVar(&filePath, "file", "", "Path to a catalog JSON backup")
	flag.BoolVar(&export, "export", false, "Write the current catalog to the file instead of importing")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC)
	repo := productrepo.NewPostgres(pool, logger)

	if export {
		f, err := os.Create(filePath)
		if err != nil {
			log.Fatalf("create file: %v", err)
		}
		defer f.Close()
		if err := importer.Export(ctx, repo, f); err != nil {
			log.Fatalf("export failed: %v", err)
		}
		fmt.Printf("Catalog exported to %s\n", filePath)
		return
	}

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	start := time.Now()
	count, err := importer.NewJSON(f, repo).Run(ctx)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	fmt.Printf("Imported %d products in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
