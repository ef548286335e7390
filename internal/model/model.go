// Package model содержит доменные сущности сервиса Gestor.
package model

import "time"

// Значения по умолчанию, применяемые при отсутствии данных.
const (
	DefaultShopName        = "Minha Loja"
	DefaultCurrency        = "Kz"
	DefaultProductCategory = "Geral"
	DefaultExpenseCategory = "Outros"
)

// ExpenseCategories содержит предлагаемый набор категорий расходов.
var ExpenseCategories = []string{
	"Aluguer", "Stock", "Marketing", "Energia/Água", "Salários", "Transporte", "Outros",
}

// Product описывает позицию каталога: товар с учётом остатков или услугу.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	Stock       int     `json:"stock"`
	ManageStock bool    `json:"manageStock"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category"`
}

// Customer описывает клиента и его накопленные покупки.
type Customer struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone"`
	TotalSpent float64    `json:"totalSpent"`
	LastVisit  *time.Time `json:"lastVisit,omitempty"`
}

// SaleItem описывает строку продажи со снимком названия и цены на момент добавления в корзину.
type SaleItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Subtotal возвращает стоимость строки.
func (i SaleItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// PaymentMethod описывает способ оплаты продажи.
type PaymentMethod string

const (
	PaymentCash              PaymentMethod = "Dinheiro"
	PaymentCardTerminal      PaymentMethod = "TPA"
	PaymentBankTransfer      PaymentMethod = "Transferência"
	PaymentMulticaixaExpress PaymentMethod = "Multicaixa Express"
)

// Valid сообщает, входит ли способ оплаты в допустимый набор.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCardTerminal, PaymentBankTransfer, PaymentMulticaixaExpress:
		return true
	}
	return false
}

// SaleStatus описывает статус продажи.
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusRefunded  SaleStatus = "refunded"
)

// Sale описывает завершённую продажу. Total вычисляется один раз при оформлении.
type Sale struct {
	ID            string        `json:"id"`
	Date          time.Time     `json:"date"`
	CustomerID    string        `json:"customerId,omitempty"`
	Items         []SaleItem    `json:"items"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Status        SaleStatus    `json:"status"`
	RefundedAt    *time.Time    `json:"refundedAt,omitempty"`
	RefundReason  string        `json:"refundReason,omitempty"`
}

// Refunded сообщает, находится ли продажа в терминальном статусе возврата.
func (s Sale) Refunded() bool {
	return s.Status == SaleStatusRefunded
}

// Expense описывает расход магазина.
type Expense struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
}

// ShopConfig содержит реквизиты магазина.
type ShopConfig struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	NIF      string `json:"nif"`
	Currency string `json:"currency"`
}

// DefaultShopConfig возвращает конфигурацию магазина по умолчанию.
func DefaultShopConfig() ShopConfig {
	return ShopConfig{
		Name:     DefaultShopName,
		Currency: DefaultCurrency,
	}
}

// Session отмечает факт входа в систему. Не является границей безопасности.
type Session struct {
	CompanyName string    `json:"companyName"`
	LastLogin   time.Time `json:"lastLogin"`
	Token       string    `json:"token"`
}

// State содержит всё состояние приложения.
type State struct {
	Products  []Product
	Customers []Customer
	Sales     []Sale
	Expenses  []Expense
	Config    ShopConfig
	Session   *Session
}

// NewState возвращает пустое состояние с конфигурацией по умолчанию.
func NewState() State {
	return State{
		Products:  []Product{},
		Customers: []Customer{},
		Sales:     []Sale{},
		Expenses:  []Expense{},
		Config:    DefaultShopConfig(),
	}
}

// FindProduct возвращает индекс товара по идентификатору или -1.
func FindProduct(products []Product, id string) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

// FindCustomer возвращает индекс клиента по идентификатору или -1.
func FindCustomer(customers []Customer, id string) int {
	for i := range customers {
		if customers[i].ID == id {
			return i
		}
	}
	return -1
}

// FindSale возвращает индекс продажи по идентификатору или -1.
func FindSale(sales []Sale, id string) int {
	for i := range sales {
		if sales[i].ID == id {
			return i
		}
	}
	return -1
}
