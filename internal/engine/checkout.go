package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/mmeshcher/gestor/internal/model"
)

// CheckoutRequest описывает запрос на оформление продажи.
type CheckoutRequest struct {
	Items         []model.SaleItem
	CustomerName  string
	CustomerID    string
	PaymentMethod model.PaymentMethod
}

// CheckoutResult содержит новую продажу и следующие состояния товаров и клиентов.
type CheckoutResult struct {
	Sale      model.Sale
	Products  []model.Product
	Customers []model.Customer
	Customer  CustomerResolution
}

// Checkout оформляет продажу: фиксирует сумму по ценам корзины, списывает остатки
// учитываемых товаров и начисляет сумму клиенту. При ошибке ничего не меняется.
func (e *Engine) Checkout(req CheckoutRequest, products []model.Product, customers []model.Customer) (CheckoutResult, error) {
	if len(req.Items) == 0 {
		return CheckoutResult{}, ErrEmptyCart
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return CheckoutResult{}, ErrEmptyCustomerName
	}

	if !req.PaymentMethod.Valid() {
		return CheckoutResult{}, ErrInvalidPaymentMethod
	}

	sold, err := soldQuantities(req.Items, products)
	if err != nil {
		return CheckoutResult{}, err
	}

	now := e.now()

	items := make([]model.SaleItem, len(req.Items))
	copy(items, req.Items)

	sale := model.Sale{
		ID:            e.newID(),
		Date:          now,
		Items:         items,
		Total:         itemsTotal(items),
		PaymentMethod: req.PaymentMethod,
		Status:        model.SaleStatusCompleted,
	}

	nextProducts := make([]model.Product, len(products))
	copy(nextProducts, products)
	for i := range nextProducts {
		if q, ok := sold[nextProducts[i].ID]; ok && nextProducts[i].ManageStock {
			nextProducts[i].Stock -= q
		}
	}

	res := e.ResolveCustomer(customers, req.CustomerID, name)
	nextCustomers, customer := applyPurchase(customers, res, sale.Total, now)
	res.Customer = customer
	sale.CustomerID = customer.ID

	return CheckoutResult{
		Sale:      sale,
		Products:  nextProducts,
		Customers: nextCustomers,
		Customer:  res,
	}, nil
}

// soldQuantities суммирует количество по товарам и проверяет остатки по текущему каталогу.
func soldQuantities(items []model.SaleItem, products []model.Product) (map[string]int, error) {
	sold := make(map[string]int, len(items))
	for _, item := range items {
		if item.Quantity <= 0 || sold[item.ProductID] > math.MaxInt-item.Quantity {
			return nil, ErrInvalidQuantity
		}
		sold[item.ProductID] += item.Quantity

		idx := model.FindProduct(products, item.ProductID)
		if idx < 0 || !products[idx].ManageStock {
			continue
		}
		p := products[idx]
		if p.Stock <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrOutOfStock, p.Name)
		}
		if sold[item.ProductID] > p.Stock {
			return nil, fmt.Errorf("%w: %s (available %d)", ErrStockExceeded, p.Name, p.Stock)
		}
	}
	return sold, nil
}
