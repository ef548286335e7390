// Package service реализует прикладной уровень сервиса Gestor: единственный владелец
// состояния приложения. Каждое намерение пользователя выполняется целиком под
// блокировкой, после изменения состояние сохраняется во всех слотах.
package service

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/mmeshcher/gestor/internal/engine"
	"github.com/mmeshcher/gestor/internal/model"
	"github.com/mmeshcher/gestor/internal/repository"
)

// ErrNotFound возвращается, если сущность с указанным идентификатором не найдена.
var ErrNotFound = errors.New("not found")

// Store описывает контракт постоянного хранилища, используемый сервисом.
type Store interface {
	Load(ctx context.Context) model.State
	Save(ctx context.Context, state model.State) error
	Restore(ctx context.Context, b repository.Backup) error
	Clear(ctx context.Context) error
	Close() error
}

// Service содержит состояние приложения и бизнес-логику над ним.
type Service struct {
	mu     sync.Mutex
	store  Store
	engine *engine.Engine
	logger *zap.Logger

	state model.State
	cart  engine.Cart
}

// NewService создаёт сервис и загружает состояние из хранилища.
func NewService(ctx context.Context, store Store, eng *engine.Engine, logger *zap.Logger) *Service {
	if eng == nil {
		eng = engine.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		store:  store,
		engine: eng,
		logger: logger,
	}
	s.state = store.Load(ctx)

	logger.Info("state loaded",
		zap.Int("products", len(s.state.Products)),
		zap.Int("customers", len(s.state.Customers)),
		zap.Int("sales", len(s.state.Sales)),
		zap.Int("expenses", len(s.state.Expenses)),
	)

	return s
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// persist сохраняет состояние. Ошибка записи не прерывает операцию:
// состояние в памяти остаётся определяющим до конца сессии.
// Отмена запроса клиентом не прерывает запись слотов.
func (s *Service) persist(ctx context.Context) {
	if err := s.store.Save(context.WithoutCancel(ctx), s.state); err != nil {
		s.logger.Warn("persist state error", zap.Error(err))
	}
}

// Snapshot возвращает копию текущего состояния.
func (s *Service) Snapshot(ctx context.Context) model.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneState(s.state)
}

func cloneState(st model.State) model.State {
	out := model.State{
		Products:  slices.Clone(st.Products),
		Customers: slices.Clone(st.Customers),
		Sales:     slices.Clone(st.Sales),
		Expenses:  slices.Clone(st.Expenses),
		Config:    st.Config,
	}
	if st.Session != nil {
		session := *st.Session
		out.Session = &session
	}
	return out
}
