// Package validation содержит функции валидации и нормализации входных данных.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmeshcher/gestor/internal/model"
)

// ErrValidation является родителем всех ошибок валидации.
var ErrValidation = errors.New("validation error")

var (
	// ErrNameRequired возвращается, если не указано название или имя.
	ErrNameRequired = fmt.Errorf("%w: name is required", ErrValidation)
	// ErrPriceRequired возвращается, если цена товара не указана или не положительна.
	ErrPriceRequired = fmt.Errorf("%w: price must be positive", ErrValidation)
	// ErrNegativeValue возвращается для отрицательной себестоимости или остатка.
	ErrNegativeValue = fmt.Errorf("%w: value must not be negative", ErrValidation)
	// ErrDescriptionRequired возвращается, если у расхода нет описания.
	ErrDescriptionRequired = fmt.Errorf("%w: description is required", ErrValidation)
	// ErrAmountNotPositive возвращается, если сумма расхода не положительна.
	ErrAmountNotPositive = fmt.Errorf("%w: amount must be positive", ErrValidation)
	// ErrCredentialsRequired возвращается, если при входе не указаны название компании или пароль.
	ErrCredentialsRequired = fmt.Errorf("%w: company name and password are required", ErrValidation)
)

// Product проверяет товар и приводит его к каноническому виду.
// Для позиций без учёта остатков остаток обнуляется.
func Product(p model.Product) (model.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)

	if p.Name == "" {
		return model.Product{}, ErrNameRequired
	}
	if p.Price <= 0 {
		return model.Product{}, ErrPriceRequired
	}
	if p.Cost < 0 || (p.ManageStock && p.Stock < 0) {
		return model.Product{}, ErrNegativeValue
	}

	if !p.ManageStock {
		p.Stock = 0
	}
	if p.Category == "" {
		p.Category = model.DefaultProductCategory
	}

	return p, nil
}

// Customer проверяет имя клиента и нормализует контактные данные.
func Customer(name, phone string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", ErrNameRequired
	}
	return name, strings.TrimSpace(phone), nil
}

// Expense проверяет расход и подставляет категорию по умолчанию.
func Expense(e model.Expense) (model.Expense, error) {
	e.Description = strings.TrimSpace(e.Description)
	e.Category = strings.TrimSpace(e.Category)

	if e.Description == "" {
		return model.Expense{}, ErrDescriptionRequired
	}
	if e.Amount <= 0 {
		return model.Expense{}, ErrAmountNotPositive
	}
	if e.Category == "" {
		e.Category = model.DefaultExpenseCategory
	}

	return e, nil
}

// ShopConfig подставляет значения по умолчанию для пустых названия и валюты.
func ShopConfig(c model.ShopConfig) model.ShopConfig {
	c.Name = strings.TrimSpace(c.Name)
	c.Currency = strings.TrimSpace(c.Currency)
	if c.Name == "" {
		c.Name = model.DefaultShopName
	}
	if c.Currency == "" {
		c.Currency = model.DefaultCurrency
	}
	return c
}

// Credentials проверяет данные формы входа.
func Credentials(companyName, password string) (string, error) {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" || password == "" {
		return "", ErrCredentialsRequired
	}
	return companyName, nil
}
