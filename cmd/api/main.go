package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/config"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/datamigrate"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/db"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/httpserver"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/migrate"
	cartrepo "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/repository/cart"
	productrepo "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/repository/product"
	sessionrepo "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/repository/session"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/seed"
	cartsvc "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/service/cart"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/service/catalog"
	sessionsvc "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/service/session"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/whatsapp"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	if err := migrate.Apply(ctx, dbpool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool, logger)
	sessionRepo := sessionrepo.NewPostgres(dbpool)

	if cfg.SeedOnStart {
		inserted, err := seed.Apply(ctx, productRepo, logger)
		if err != nil {
			logger.Fatalf("seed apply: %v", err)
		}
		if inserted > 0 {
			logger.Printf("seeded %d products", inserted)
		}
	}

	migrated, err := datamigrate.NewRunner(productRepo, logger).Run(ctx)
	if err != nil {
		logger.Fatalf("data migrations: %v", err)
	}
	if migrated > 0 {
		logger.Printf("rewrote %d products", migrated)
	}

	catalogService := catalog.New(productRepo)
	cartService := cartsvc.New(cartRepo, productRepo)
	sessionService, err := sessionsvc.New(sessionRepo, cfg.AdminPassword, cfg.SessionTTL)
	if err != nil {
		logger.Fatalf("init sessions: %v", err)
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CatalogSvc:  catalogService,
		CartSvc:     cartService,
		SessionSvc:  sessionService,
		ProductRepo: productRepo,
		WhatsApp:    whatsapp.NewBuilder(cfg.WhatsAppNumber),
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
