package service

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/mmeshcher/gestor/internal/engine"
	"github.com/mmeshcher/gestor/internal/model"
	"github.com/mmeshcher/gestor/internal/receipt"
)

// CartView содержит открытую корзину и её сумму.
type CartView struct {
	Items []model.SaleItem `json:"items"`
	Total float64          `json:"total"`
}

func (s *Service) cartView() CartView {
	return CartView{Items: s.cart.Items(), Total: s.cart.Total()}
}

// Cart возвращает открытую корзину.
func (s *Service) Cart(ctx context.Context) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cartView()
}

// AddToCart добавляет qty единиц товара в корзину с проверкой остатка.
func (s *Service) AddToCart(ctx context.Context, productID string, qty int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := model.FindProduct(s.state.Products, productID)
	if idx < 0 {
		return CartView{}, fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}

	if err := s.cart.Add(s.state.Products[idx], qty); err != nil {
		return CartView{}, err
	}
	return s.cartView(), nil
}

// RemoveFromCart удаляет строку товара из корзины.
func (s *Service) RemoveFromCart(ctx context.Context, productID string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cart.Remove(productID) {
		return CartView{}, fmt.Errorf("%w: cart item %s", ErrNotFound, productID)
	}
	return s.cartView(), nil
}

// ClearCart отменяет корзину без сохраняемых последствий.
func (s *Service) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
}

// CheckoutRequest описывает параметры оформления открытой корзины.
type CheckoutRequest struct {
	CustomerName  string
	CustomerID    string
	PaymentMethod model.PaymentMethod
}

// Checkout оформляет открытую корзину. После успешного оформления корзина очищается.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (model.Sale, engine.CustomerResolution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.engine.Checkout(engine.CheckoutRequest{
		Items:         s.cart.Items(),
		CustomerName:  req.CustomerName,
		CustomerID:    req.CustomerID,
		PaymentMethod: req.PaymentMethod,
	}, s.state.Products, s.state.Customers)
	if err != nil {
		return model.Sale{}, engine.CustomerResolution{}, err
	}

	s.state.Sales = prepend(s.state.Sales, res.Sale)
	s.state.Products = res.Products
	s.state.Customers = res.Customers
	s.cart.Clear()

	s.persist(ctx)
	s.logger.Info("sale completed",
		zap.String("sale", res.Sale.ID),
		zap.Float64("total", res.Sale.Total),
		zap.String("customer", res.Customer.Customer.ID),
		zap.Stringer("resolution", res.Customer.Kind),
	)

	return res.Sale, res.Customer, nil
}

// ListSales возвращает продажи, новые первыми.
func (s *Service) ListSales(ctx context.Context) []model.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.state.Sales)
}

// Refund выполняет возврат продажи.
func (s *Service) Refund(ctx context.Context, saleID, reason string) (model.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := model.FindSale(s.state.Sales, saleID)
	if idx < 0 {
		return model.Sale{}, fmt.Errorf("%w: sale %s", ErrNotFound, saleID)
	}

	res, err := s.engine.Refund(s.state.Sales[idx], reason, s.state.Products, s.state.Customers)
	if err != nil {
		return model.Sale{}, err
	}

	sales := slices.Clone(s.state.Sales)
	sales[idx] = res.Sale
	s.state.Sales = sales
	s.state.Products = res.Products
	s.state.Customers = res.Customers

	s.persist(ctx)
	s.logger.Info("sale refunded", zap.String("sale", saleID), zap.Float64("total", res.Sale.Total))

	return res.Sale, nil
}

// Receipt формирует чек продажи. Удалённый клиент выводится как анонимный покупатель.
func (s *Service) Receipt(ctx context.Context, saleID string) (receipt.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := model.FindSale(s.state.Sales, saleID)
	if idx < 0 {
		return receipt.Receipt{}, fmt.Errorf("%w: sale %s", ErrNotFound, saleID)
	}
	sale := s.state.Sales[idx]

	var customer *model.Customer
	if ci := model.FindCustomer(s.state.Customers, sale.CustomerID); sale.CustomerID != "" && ci >= 0 {
		c := s.state.Customers[ci]
		customer = &c
	}

	return receipt.Render(sale, customer, s.state.Config), nil
}
