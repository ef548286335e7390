package engine

import (
	"strings"

	"github.com/mmeshcher/gestor/internal/model"
)

// RefundResult содержит продажу после возврата и следующие состояния товаров и клиентов.
type RefundResult struct {
	Sale      model.Sale
	Products  []model.Product
	Customers []model.Customer
}

// Refund переводит продажу в терминальный статус refunded, возвращает остатки
// существующих учитываемых товаров и уменьшает сумму покупок клиента (не ниже нуля).
func (e *Engine) Refund(sale model.Sale, reason string, products []model.Product, customers []model.Customer) (RefundResult, error) {
	if sale.Refunded() {
		return RefundResult{}, ErrAlreadyRefunded
	}

	now := e.now()

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultRefundReason
	}

	refunded := sale
	refunded.Items = make([]model.SaleItem, len(sale.Items))
	copy(refunded.Items, sale.Items)
	refunded.Status = model.SaleStatusRefunded
	refunded.RefundedAt = &now
	refunded.RefundReason = reason

	nextProducts := make([]model.Product, len(products))
	copy(nextProducts, products)
	for _, item := range sale.Items {
		// Удалённые после продажи товары пропускаются.
		idx := model.FindProduct(nextProducts, item.ProductID)
		if idx < 0 || !nextProducts[idx].ManageStock {
			continue
		}
		nextProducts[idx].Stock += item.Quantity
	}

	nextCustomers := make([]model.Customer, len(customers))
	copy(nextCustomers, customers)
	if sale.CustomerID != "" {
		if idx := model.FindCustomer(nextCustomers, sale.CustomerID); idx >= 0 {
			spent := nextCustomers[idx].TotalSpent - sale.Total
			if spent < 0 {
				spent = 0
			}
			nextCustomers[idx].TotalSpent = spent
		}
	}

	return RefundResult{
		Sale:      refunded,
		Products:  nextProducts,
		Customers: nextCustomers,
	}, nil
}
