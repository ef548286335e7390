package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mmeshcher/gestor/internal/model"
	"github.com/mmeshcher/gestor/internal/validation"
)

// Store читает и записывает состояние приложения поверх SlotStore.
type Store struct {
	slots  SlotStore
	logger *zap.Logger
}

// NewStore создаёт хранилище состояния.
func NewStore(slots SlotStore, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{slots: slots, logger: logger}
}

// Close закрывает нижележащее хранилище.
func (s *Store) Close() error {
	return s.slots.Close()
}

// Load читает все слоты. Отсутствующий, нечитаемый или повреждённый слот
// заменяется значением по умолчанию; ошибка не возвращается.
func (s *Store) Load(ctx context.Context) model.State {
	state := model.NewState()

	loadSlot(ctx, s, SlotProducts, &state.Products)
	loadSlot(ctx, s, SlotCustomers, &state.Customers)
	loadSlot(ctx, s, SlotSales, &state.Sales)
	loadSlot(ctx, s, SlotExpenses, &state.Expenses)
	loadSlot(ctx, s, SlotConfig, &state.Config)

	var session model.Session
	if loadSlot(ctx, s, SlotSession, &session) && session.Token != "" {
		state.Session = &session
	}

	if state.Products == nil {
		state.Products = []model.Product{}
	}
	if state.Customers == nil {
		state.Customers = []model.Customer{}
	}
	if state.Sales == nil {
		state.Sales = []model.Sale{}
	}
	if state.Expenses == nil {
		state.Expenses = []model.Expense{}
	}
	state.Config = validation.ShopConfig(state.Config)

	return state
}

// loadSlot декодирует слот в dst. При ошибке dst остаётся нетронутым.
func loadSlot[T any](ctx context.Context, s *Store, key string, dst *T) bool {
	raw, ok, err := s.slots.Get(ctx, key)
	if err != nil {
		s.logger.Warn("read slot error", zap.String("slot", key), zap.Error(err))
		return false
	}
	if !ok || isNull(raw) {
		return false
	}

	v := *dst
	if err := json.Unmarshal(raw, &v); err != nil {
		s.logger.Warn("malformed slot ignored", zap.String("slot", key), zap.Error(err))
		return false
	}
	*dst = v
	return true
}

// Save перезаписывает все слоты целиком. Атомарность между слотами не гарантируется.
func (s *Store) Save(ctx context.Context, state model.State) error {
	var errs []error

	put := func(key string, v any) {
		data, err := json.Marshal(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("encode %s: %w", key, err))
			return
		}
		if err := s.slots.Put(ctx, key, data); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", key, err))
		}
	}

	put(SlotProducts, nonNil(state.Products))
	put(SlotCustomers, nonNil(state.Customers))
	put(SlotSales, nonNil(state.Sales))
	put(SlotExpenses, nonNil(state.Expenses))
	put(SlotConfig, state.Config)

	if state.Session != nil {
		put(SlotSession, state.Session)
	} else if err := s.slots.Delete(ctx, SlotSession); err != nil {
		errs = append(errs, fmt.Errorf("delete %s: %w", SlotSession, err))
	}

	return errors.Join(errs...)
}

// Clear удаляет все слоты.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.slots.Clear(ctx); err != nil {
		return fmt.Errorf("clear slots: %w", err)
	}
	return nil
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}

func isNull(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
