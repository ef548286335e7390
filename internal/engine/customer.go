package engine

import (
	"strings"
	"time"

	"github.com/mmeshcher/gestor/internal/model"
)

// ResolutionKind показывает, какая ветка разрешения клиента сработала.
type ResolutionKind int

const (
	// ResolvedExisting: продажа отнесена к существующему клиенту.
	ResolvedExisting ResolutionKind = iota + 1
	// ResolvedCreated: клиент создан этой продажей.
	ResolvedCreated
)

func (k ResolutionKind) String() string {
	switch k {
	case ResolvedExisting:
		return "existing"
	case ResolvedCreated:
		return "created"
	}
	return "unknown"
}

// CustomerResolution описывает результат разрешения клиента продажи.
type CustomerResolution struct {
	Kind     ResolutionKind
	Customer model.Customer
}

// ResolveCustomer находит клиента по явному идентификатору, затем по имени без учёта
// регистра. Если клиент не найден, возвращается новая запись с нулевой суммой покупок.
func (e *Engine) ResolveCustomer(customers []model.Customer, customerID, name string) CustomerResolution {
	if customerID != "" {
		if idx := model.FindCustomer(customers, customerID); idx >= 0 {
			return CustomerResolution{Kind: ResolvedExisting, Customer: customers[idx]}
		}
	}

	name = strings.TrimSpace(name)
	for _, c := range customers {
		if strings.EqualFold(strings.TrimSpace(c.Name), name) {
			return CustomerResolution{Kind: ResolvedExisting, Customer: c}
		}
	}

	return CustomerResolution{
		Kind: ResolvedCreated,
		Customer: model.Customer{
			ID:   e.newID(),
			Name: name,
		},
	}
}

// applyPurchase начисляет сумму продажи клиенту и обновляет дату визита.
// Новый клиент добавляется в начало коллекции.
func applyPurchase(customers []model.Customer, res CustomerResolution, total float64, now time.Time) ([]model.Customer, model.Customer) {
	visit := now
	updated := res.Customer
	updated.TotalSpent += total
	updated.LastVisit = &visit

	if res.Kind == ResolvedCreated {
		next := make([]model.Customer, 0, len(customers)+1)
		next = append(next, updated)
		next = append(next, customers...)
		return next, updated
	}

	next := make([]model.Customer, len(customers))
	copy(next, customers)
	if idx := model.FindCustomer(next, updated.ID); idx >= 0 {
		next[idx] = updated
	}
	return next, updated
}
