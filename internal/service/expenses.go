package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/mmeshcher/gestor/internal/model"
	"github.com/mmeshcher/gestor/internal/validation"
)

// ListExpenses возвращает расходы, новые первыми.
func (s *Service) ListExpenses(ctx context.Context) []model.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.state.Expenses)
}

// AddExpense регистрирует расход с текущей датой.
func (s *Service) AddExpense(ctx context.Context, e model.Expense) (model.Expense, error) {
	e, err := validation.Expense(e)
	if err != nil {
		return model.Expense{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.engine.NewID()
	e.Date = s.engine.Now()
	s.state.Expenses = prepend(s.state.Expenses, e)

	s.persist(ctx)
	return e, nil
}

// DeleteExpense удаляет расход.
func (s *Service) DeleteExpense(ctx context.Context, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.state.Expenses, func(e model.Expense) bool { return e.ID == expenseID })
	if idx < 0 {
		return fmt.Errorf("%w: expense %s", ErrNotFound, expenseID)
	}

	s.state.Expenses = removeAt(s.state.Expenses, idx)
	s.persist(ctx)
	return nil
}
