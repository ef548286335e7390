package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mmeshcher/gestor/internal/model"
	"github.com/mmeshcher/gestor/internal/repository"
	"github.com/mmeshcher/gestor/internal/validation"
)

// Settings возвращает реквизиты магазина.
func (s *Service) Settings(ctx context.Context) model.ShopConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Config
}

// UpdateSettings заменяет реквизиты магазина.
func (s *Service) UpdateSettings(ctx context.Context, cfg model.ShopConfig) model.ShopConfig {
	cfg = validation.ShopConfig(cfg)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Config = cfg
	s.persist(ctx)
	return cfg
}

// ExportBackup сериализует всё состояние в документ резервной копии.
func (s *Service) ExportBackup(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return repository.Export(s.state)
}

// ImportBackup заменяет слоты из резервной копии и перечитывает состояние
// из хранилища. Некорректный документ не меняет ни хранилище, ни состояние.
func (s *Service) ImportBackup(ctx context.Context, data []byte) error {
	b, err := repository.ParseBackup(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	if err := s.store.Restore(ctx, b); err != nil {
		// Часть слотов могла быть записана: возвращаем хранилищу состояние из памяти.
		s.persist(ctx)
		return fmt.Errorf("restore backup: %w", err)
	}

	s.state = s.store.Load(ctx)
	s.cart.Clear()

	s.logger.Info("backup restored",
		zap.Int("products", len(s.state.Products)),
		zap.Int("sales", len(s.state.Sales)),
	)
	return nil
}

// ClearData удаляет все данные и возвращает состояние по умолчанию.
func (s *Service) ClearData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return err
	}

	s.state = model.NewState()
	s.cart.Clear()

	s.logger.Info("all data cleared")
	return nil
}
