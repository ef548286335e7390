// Package engine реализует транзакционную логику продаж: корзину, оформление продажи
// и возврат. Функции не выполняют ввода-вывода и не изменяют переданные коллекции:
// результатом всегда служат новые состояния коллекций.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/mmeshcher/gestor/internal/id"
	"github.com/mmeshcher/gestor/internal/validation"
)

// DefaultRefundReason подставляется, если причина возврата не указана.
const DefaultRefundReason = "Não informado"

var (
	// ErrEmptyCart возвращается при попытке оформить пустую корзину.
	ErrEmptyCart = fmt.Errorf("%w: cart is empty", validation.ErrValidation)
	// ErrEmptyCustomerName возвращается, если не указано имя клиента.
	ErrEmptyCustomerName = fmt.Errorf("%w: customer name is required", validation.ErrValidation)
	// ErrInvalidPaymentMethod возвращается для неизвестного способа оплаты.
	ErrInvalidPaymentMethod = fmt.Errorf("%w: unknown payment method", validation.ErrValidation)
	// ErrInvalidQuantity возвращается для неположительного количества.
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be positive", validation.ErrValidation)
	// ErrOutOfStock возвращается при добавлении товара с нулевым остатком.
	ErrOutOfStock = errors.New("product out of stock")
	// ErrStockExceeded возвращается, если запрошено больше, чем есть на остатке.
	ErrStockExceeded = errors.New("stock limit exceeded")
	// ErrAlreadyRefunded возвращается при повторном возврате продажи.
	ErrAlreadyRefunded = errors.New("sale already refunded")
)

// Engine вычисляет следующие состояния коллекций для продаж и возвратов.
type Engine struct {
	now   func() time.Time
	newID id.Generator
}

// New создаёт движок с системными часами (UTC) и генератором UUIDv7.
func New() *Engine {
	return &Engine{
		now:   func() time.Time { return time.Now().UTC() },
		newID: id.New,
	}
}

// NewWithClock создаёт движок с заданными часами и генератором идентификаторов.
func NewWithClock(now func() time.Time, newID id.Generator) *Engine {
	return &Engine{now: now, newID: newID}
}

// Now возвращает текущее время по часам движка.
func (e *Engine) Now() time.Time {
	return e.now()
}

// NewID возвращает новый идентификатор от генератора движка.
func (e *Engine) NewID() string {
	return e.newID()
}
