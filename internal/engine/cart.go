package engine

import (
	"fmt"
	"math"

	"github.com/mmeshcher/gestor/internal/model"
)

// Cart описывает открытую корзину до оформления продажи. Остаток проверяется при каждом добавлении.
type Cart struct {
	items []model.SaleItem
}

// Add добавляет qty единиц товара. Цена и название фиксируются в момент первого добавления.
func (c *Cart) Add(p model.Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	if p.ManageStock && p.Stock <= 0 {
		return fmt.Errorf("%w: %s", ErrOutOfStock, p.Name)
	}

	for i := range c.items {
		if c.items[i].ProductID != p.ID {
			continue
		}
		if p.ManageStock && qty > p.Stock-c.items[i].Quantity {
			return fmt.Errorf("%w: %s (available %d)", ErrStockExceeded, p.Name, p.Stock)
		}
		if c.items[i].Quantity > math.MaxInt-qty {
			return ErrInvalidQuantity
		}
		c.items[i].Quantity += qty
		return nil
	}

	if p.ManageStock && qty > p.Stock {
		return fmt.Errorf("%w: %s (available %d)", ErrStockExceeded, p.Name, p.Stock)
	}

	c.items = append(c.items, model.SaleItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  qty,
	})
	return nil
}

// Remove удаляет строку товара из корзины и сообщает, была ли она там.
func (c *Cart) Remove(productID string) bool {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear очищает корзину.
func (c *Cart) Clear() {
	c.items = nil
}

// Items возвращает копию строк корзины в порядке добавления.
func (c *Cart) Items() []model.SaleItem {
	out := make([]model.SaleItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len возвращает количество строк.
func (c *Cart) Len() int {
	return len(c.items)
}

// Total возвращает сумму корзины по ценам на момент добавления.
func (c *Cart) Total() float64 {
	return itemsTotal(c.items)
}

func itemsTotal(items []model.SaleItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}
