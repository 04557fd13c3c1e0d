package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookvault/bookvault/pkg/cache"
	"github.com/bookvault/bookvault/pkg/config"
	"github.com/bookvault/bookvault/pkg/db"
	"github.com/bookvault/bookvault/pkg/logger"
	"github.com/bookvault/bookvault/pkg/model"
	"github.com/bookvault/bookvault/pkg/repository"
	"github.com/bookvault/bookvault/pkg/server"
	"github.com/bookvault/bookvault/pkg/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run composes the object graph once at startup: config, logger, store,
// cache, repositories, services, handlers. Everything is wired through
// explicit constructor arguments.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.NewZapLogger(cfg.Logger)
	defer log.Sync()

	dbManager, err := db.NewManager(cfg.DB)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.DB().AutoMigrate(&model.Book{}, &model.ContactMessage{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	cacheManager, err := cache.NewManager(cfg.Cache)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	defer cacheManager.Close()

	if err := cacheManager.Ping(context.Background()); err != nil {
		// Fail-open: the API serves from the store alone when Redis is down.
		log.Warn("cache unreachable at startup, continuing without it", "error", err)
	}

	bookRepo := repository.NewGenericRepository[model.Book](dbManager, model.BookSchema())
	contactRepo := repository.NewGenericRepository[model.ContactMessage](dbManager, model.ContactMessageSchema())

	bookService := service.NewBookService(bookRepo, cacheManager, log)
	contactService := service.NewContactService(contactRepo, log)

	router := server.NewRouter(server.Deps{
		Books:    server.NewBookHandler(bookService, log),
		Contacts: server.NewContactHandler(contactService, log),
		DB:       dbManager,
		Cache:    cacheManager,
		Log:      log,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
