package service

import (
	"context"
	"fmt"

	"github.com/mmeshcher/gestor/internal/model"
	"github.com/mmeshcher/gestor/internal/stats"
	"github.com/mmeshcher/gestor/internal/validation"
)

// ListCustomers возвращает клиентов по убыванию суммы покупок с отбором по имени.
func (s *Service) ListCustomers(ctx context.Context, query string) []model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return stats.RankCustomers(s.state.Customers, query)
}

// CreateCustomer регистрирует клиента с нулевой суммой покупок.
func (s *Service) CreateCustomer(ctx context.Context, name, phone string) (model.Customer, error) {
	name, phone, err := validation.Customer(name, phone)
	if err != nil {
		return model.Customer{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := model.Customer{
		ID:    s.engine.NewID(),
		Name:  name,
		Phone: phone,
	}
	s.state.Customers = prepend(s.state.Customers, c)

	s.persist(ctx)
	return c, nil
}

// UpdateCustomer меняет имя и телефон, накопленные показатели сохраняются.
func (s *Service) UpdateCustomer(ctx context.Context, customerID, name, phone string) (model.Customer, error) {
	name, phone, err := validation.Customer(name, phone)
	if err != nil {
		return model.Customer{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := model.FindCustomer(s.state.Customers, customerID)
	if idx < 0 {
		return model.Customer{}, fmt.Errorf("%w: customer %s", ErrNotFound, customerID)
	}

	next := make([]model.Customer, len(s.state.Customers))
	copy(next, s.state.Customers)
	next[idx].Name = name
	next[idx].Phone = phone
	s.state.Customers = next

	s.persist(ctx)
	return next[idx], nil
}

// DeleteCustomer удаляет клиента. Продажи и их суммы не меняются.
func (s *Service) DeleteCustomer(ctx context.Context, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := model.FindCustomer(s.state.Customers, customerID)
	if idx < 0 {
		return fmt.Errorf("%w: customer %s", ErrNotFound, customerID)
	}

	s.state.Customers = removeAt(s.state.Customers, idx)
	s.persist(ctx)
	return nil
}

// CustomerSales возвращает историю продаж клиента.
func (s *Service) CustomerSales(ctx context.Context, customerID string) ([]model.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if model.FindCustomer(s.state.Customers, customerID) < 0 {
		return nil, fmt.Errorf("%w: customer %s", ErrNotFound, customerID)
	}
	return stats.CustomerHistory(s.state.Sales, customerID), nil
}
