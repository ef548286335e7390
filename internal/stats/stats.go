// Package stats содержит производные представления над коллекциями: показатели
// панели, финансовую сводку и выборки для списков. Всё пересчитывается при
// каждом чтении и не хранит состояния.
package stats

import (
	"sort"
	"time"

	"github.com/mmeshcher/gestor/internal/model"
)

const (
	dateLayout        = "2006-01-02"
	lowStockThreshold = 10
	topProductsLimit  = 3
	weeklySeriesDays  = 7
)

// Dashboard содержит показатели главной панели.
type Dashboard struct {
	TodaySales      float64        `json:"todaySales"`
	TotalRevenue    float64        `json:"totalRevenue"`
	TotalProfit     float64        `json:"totalProfit"`
	LowStockCount   int            `json:"lowStockCount"`
	OutOfStockCount int            `json:"outOfStockCount"`
	AvgTicket       float64        `json:"avgTicket"`
	TotalCustomers  int            `json:"totalCustomers"`
	TopProducts     []ProductTally `json:"topProducts"`
	Week            []DailyRevenue `json:"week"`
}

// Summary содержит финансовую сводку. Возвращённые продажи в доход не входят.
type Summary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Net          float64 `json:"net"`
}

// StockAlert содержит количество товаров с малым и нулевым остатком.
type StockAlert struct {
	Low        int `json:"low"`
	OutOfStock int `json:"outOfStock"`
}

// ProductTally содержит количество проданных единиц по товару.
type ProductTally struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
}

// DailyRevenue содержит выручку за календарный день.
type DailyRevenue struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// BuildDashboard собирает показатели панели на момент now.
// Выручка и прибыль, как и в сводке за день, учитывают возвращённые продажи.
func BuildDashboard(state model.State, now time.Time) Dashboard {
	revenue := TotalRevenue(state.Sales)
	alerts := StockAlerts(state.Products)

	return Dashboard{
		TodaySales:      TodayRevenue(state.Sales, now),
		TotalRevenue:    revenue,
		TotalProfit:     revenue - TotalExpenses(state.Expenses),
		LowStockCount:   alerts.Low,
		OutOfStockCount: alerts.OutOfStock,
		AvgTicket:       AverageTicket(state.Sales),
		TotalCustomers:  len(state.Customers),
		TopProducts:     TopProducts(state.Sales, topProductsLimit),
		Week:            WeeklySeries(state.Sales, now),
	}
}

// TodayRevenue суммирует продажи, дата которых (UTC) совпадает с датой now.
func TodayRevenue(sales []model.Sale, now time.Time) float64 {
	return revenueOn(sales, now.UTC().Format(dateLayout))
}

func revenueOn(sales []model.Sale, day string) float64 {
	var total float64
	for _, s := range sales {
		if s.Date.UTC().Format(dateLayout) == day {
			total += s.Total
		}
	}
	return total
}

// WeeklySeries возвращает выручку за последние семь дней, от самого раннего к now.
func WeeklySeries(sales []model.Sale, now time.Time) []DailyRevenue {
	series := make([]DailyRevenue, 0, weeklySeriesDays)
	for i := weeklySeriesDays - 1; i >= 0; i-- {
		day := now.UTC().AddDate(0, 0, -i).Format(dateLayout)
		series = append(series, DailyRevenue{Date: day, Total: revenueOn(sales, day)})
	}
	return series
}

// TotalRevenue суммирует все продажи, включая возвращённые.
func TotalRevenue(sales []model.Sale) float64 {
	var total float64
	for _, s := range sales {
		total += s.Total
	}
	return total
}

// TotalExpenses суммирует все расходы.
func TotalExpenses(expenses []model.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// Summarize строит финансовую сводку.
func Summarize(sales []model.Sale, expenses []model.Expense) Summary {
	var income float64
	for _, s := range sales {
		if !s.Refunded() {
			income += s.Total
		}
	}
	out := TotalExpenses(expenses)

	return Summary{
		TotalIncome:  income,
		TotalExpense: out,
		Net:          income - out,
	}
}

// StockAlerts считает товары с учётом остатков: малый остаток (0; 10) и нулевой.
func StockAlerts(products []model.Product) StockAlert {
	var a StockAlert
	for _, p := range products {
		if !p.ManageStock {
			continue
		}
		switch {
		case p.Stock == 0:
			a.OutOfStock++
		case p.Stock > 0 && p.Stock < lowStockThreshold:
			a.Low++
		}
	}
	return a
}

// TopProducts возвращает n самых продаваемых товаров по количеству единиц.
// При равенстве сохраняется порядок первого появления.
func TopProducts(sales []model.Sale, n int) []ProductTally {
	index := make(map[string]int)
	tallies := make([]ProductTally, 0)

	for _, s := range sales {
		for _, item := range s.Items {
			i, ok := index[item.ProductID]
			if !ok {
				i = len(tallies)
				index[item.ProductID] = i
				tallies = append(tallies, ProductTally{ProductID: item.ProductID, Name: item.Name})
			}
			tallies[i].Count += item.Quantity
		}
	}

	sort.SliceStable(tallies, func(i, j int) bool {
		return tallies[i].Count > tallies[j].Count
	})

	if len(tallies) > n {
		tallies = tallies[:n]
	}
	return tallies
}

// AverageTicket возвращает средний чек или 0 для пустого списка.
func AverageTicket(sales []model.Sale) float64 {
	if len(sales) == 0 {
		return 0
	}
	return TotalRevenue(sales) / float64(len(sales))
}
