package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mmeshcher/gestor/internal/model"
)

// Backup описывает документ полной резервной копии. Отсутствующий ключ при импорте
// оставляет соответствующий слот без изменений.
type Backup struct {
	Products  json.RawMessage `json:"products,omitempty"`
	Customers json.RawMessage `json:"customers,omitempty"`
	Sales     json.RawMessage `json:"sales,omitempty"`
	Expenses  json.RawMessage `json:"expenses,omitempty"`
	Config    json.RawMessage `json:"config,omitempty"`
}

type backupDocument struct {
	Products  []model.Product  `json:"products"`
	Customers []model.Customer `json:"customers"`
	Sales     []model.Sale     `json:"sales"`
	Expenses  []model.Expense  `json:"expenses"`
	Config    model.ShopConfig `json:"config"`
}

// Export сериализует состояние в документ резервной копии.
func Export(state model.State) ([]byte, error) {
	doc := backupDocument{
		Products:  nonNil(state.Products),
		Customers: nonNil(state.Customers),
		Sales:     nonNil(state.Sales),
		Expenses:  nonNil(state.Expenses),
		Config:    state.Config,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return data, nil
}

// ParseBackup разбирает документ резервной копии и проверяет форму каждого
// присутствующего раздела. Любая ошибка оборачивает ErrImportParse.
func ParseBackup(data []byte) (Backup, error) {
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return Backup{}, fmt.Errorf("%w: %v", ErrImportParse, err)
	}

	checks := []struct {
		name string
		raw  json.RawMessage
		dst  any
	}{
		{"products", b.Products, &[]model.Product{}},
		{"customers", b.Customers, &[]model.Customer{}},
		{"sales", b.Sales, &[]model.Sale{}},
		{"expenses", b.Expenses, &[]model.Expense{}},
		{"config", b.Config, &model.ShopConfig{}},
	}
	for _, c := range checks {
		if isNull(c.raw) {
			continue
		}
		if err := json.Unmarshal(c.raw, c.dst); err != nil {
			return Backup{}, fmt.Errorf("%w: %s: %v", ErrImportParse, c.name, err)
		}
	}

	return b, nil
}

// Restore заменяет слоты, присутствующие в резервной копии.
func (s *Store) Restore(ctx context.Context, b Backup) error {
	var errs []error

	pairs := []struct {
		key string
		raw json.RawMessage
	}{
		{SlotProducts, b.Products},
		{SlotCustomers, b.Customers},
		{SlotSales, b.Sales},
		{SlotExpenses, b.Expenses},
		{SlotConfig, b.Config},
	}
	for _, p := range pairs {
		if isNull(p.raw) {
			continue
		}
		if err := s.slots.Put(ctx, p.key, p.raw); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", p.key, err))
		}
	}

	return errors.Join(errs...)
}
