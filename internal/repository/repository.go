// Package repository содержит постоянное хранилище состояния: именованные слоты
// с сериализованными снимками коллекций и их реализации.
package repository

import (
	"context"
	"errors"
)

// Имена слотов совместимы с ключами localStorage веб-клиента.
const (
	SlotProducts  = "ga_products"
	SlotCustomers = "ga_customers"
	SlotSales     = "ga_sales"
	SlotExpenses  = "ga_expenses"
	SlotConfig    = "ga_shop_config"
	SlotSession   = "ga_session"
)

// Slots перечисляет все слоты в порядке записи.
var Slots = []string{SlotProducts, SlotCustomers, SlotSales, SlotExpenses, SlotConfig, SlotSession}

// ErrImportParse возвращается для некорректного файла резервной копии.
var ErrImportParse = errors.New("backup parse error")

// SlotStore описывает хранилище документов по ключу. Запись заменяет слот целиком.
type SlotStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}
