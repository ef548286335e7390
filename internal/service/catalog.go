package service

import (
	"context"
	"fmt"

	"github.com/mmeshcher/gestor/internal/model"
	"github.com/mmeshcher/gestor/internal/stats"
	"github.com/mmeshcher/gestor/internal/validation"
)

// ListProducts возвращает товары, отобранные по названию и категории.
func (s *Service) ListProducts(ctx context.Context, query, category string) []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return stats.FilterProducts(s.state.Products, query, category)
}

// CreateProduct добавляет товар в конец каталога.
func (s *Service) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	p, err := validation.Product(p)
	if err != nil {
		return model.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.engine.NewID()

	next := make([]model.Product, 0, len(s.state.Products)+1)
	next = append(next, s.state.Products...)
	s.state.Products = append(next, p)

	s.persist(ctx)
	return p, nil
}

// UpdateProduct заменяет данные товара. Исторические продажи не меняются.
func (s *Service) UpdateProduct(ctx context.Context, productID string, p model.Product) (model.Product, error) {
	p, err := validation.Product(p)
	if err != nil {
		return model.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := model.FindProduct(s.state.Products, productID)
	if idx < 0 {
		return model.Product{}, fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}

	p.ID = productID
	next := make([]model.Product, len(s.state.Products))
	copy(next, s.state.Products)
	next[idx] = p
	s.state.Products = next

	s.persist(ctx)
	return p, nil
}

// DeleteProduct удаляет товар без каскада: продажи хранят снимки строк.
func (s *Service) DeleteProduct(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := model.FindProduct(s.state.Products, productID)
	if idx < 0 {
		return fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}

	s.state.Products = removeAt(s.state.Products, idx)
	s.persist(ctx)
	return nil
}

// removeAt возвращает новый срез без элемента idx.
func removeAt[T any](items []T, idx int) []T {
	next := make([]T, 0, len(items)-1)
	next = append(next, items[:idx]...)
	return append(next, items[idx+1:]...)
}

// prepend возвращает новый срез с v в начале.
func prepend[T any](items []T, v T) []T {
	next := make([]T, 0, len(items)+1)
	next = append(next, v)
	return append(next, items...)
}
