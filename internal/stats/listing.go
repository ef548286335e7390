package stats

import (
	"sort"
	"strings"

	"github.com/mmeshcher/gestor/internal/model"
)

// AllCategories отключает отбор по категории.
const AllCategories = "Todas"

// FilterProducts отбирает товары по подстроке названия и категории.
func FilterProducts(products []model.Product, query, category string) []model.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	category = strings.TrimSpace(category)

	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// RankCustomers сортирует клиентов по сумме покупок и отбирает по подстроке имени.
func RankCustomers(customers []model.Customer, query string) []model.Customer {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]model.Customer, 0, len(customers))
	for _, c := range customers {
		if query == "" || strings.Contains(strings.ToLower(c.Name), query) {
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSpent > out[j].TotalSpent
	})
	return out
}

// CustomerHistory возвращает продажи клиента в порядке коллекции.
func CustomerHistory(sales []model.Sale, customerID string) []model.Sale {
	out := make([]model.Sale, 0)
	for _, s := range sales {
		if s.CustomerID == customerID {
			out = append(out, s)
		}
	}
	return out
}
