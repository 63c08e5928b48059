// catalogd is the primary catalog and mock-auth backend the storefront talks
// to. Products live in SQLite; accounts are the in-memory demo users.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ellurunanda/Shopping-Cart/internal/config"
	"github.com/ellurunanda/Shopping-Cart/internal/server/auth"
	"github.com/ellurunanda/Shopping-Cart/internal/server/httpapi"
	"github.com/ellurunanda/Shopping-Cart/internal/server/repository"
)

func main() {
	cfg := config.Load()

	repo, err := repository.NewRepository(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open catalog database: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("Catalog database ready at %s", cfg.DBPath)

	products := httpapi.NewProductsHandler(repo, cfg.RequestTimeout)
	users := httpapi.NewAuthHandler(auth.NewStore())
	router := httpapi.NewRouter(products, users, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "catalogd"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("catalogd listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down catalogd...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("catalogd stopped")
}
