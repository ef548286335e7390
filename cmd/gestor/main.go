// Package main запускает HTTP-сервер сервиса Gestor.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/gestor/internal/config"
	"github.com/mmeshcher/gestor/internal/engine"
	"github.com/mmeshcher/gestor/internal/handler"
	"github.com/mmeshcher/gestor/internal/middleware"
	"github.com/mmeshcher/gestor/internal/repository"
	"github.com/mmeshcher/gestor/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	slots, err := openSlots(cfg)
	if err != nil {
		sugar.Fatalw("storage initialization error", "error", err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := repository.NewStore(slots, logger)
	svc := service.NewService(ctx, store, engine.New(), logger)
	defer svc.Close()

	sessionMiddleware := middleware.NewSessionMiddleware(cfg.SessionSecret, svc.ValidSession)
	h := handler.NewHandler(svc, logger, sessionMiddleware)

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           h.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	// Запуск HTTP-сервера
	g.Go(func() error {
		sugar.Infow("starting gestor server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Errorw("application terminated with error", "error", err)
	}
}

// openSlots выбирает хранилище слотов: PostgreSQL при заданном DATABASE_URI,
// иначе каталог с JSON-файлами.
func openSlots(cfg *config.Config) (repository.SlotStore, error) {
	if cfg.UsePostgres() {
		return repository.NewPostgresRepository(cfg.DatabaseURI)
	}
	return repository.NewFileRepository(cfg.DataDir)
}
