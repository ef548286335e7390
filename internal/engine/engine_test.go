package engine

import (
	"fmt"
	"time"

	"github.com/mmeshcher/gestor/internal/model"
)

var testNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func newTestEngine() *Engine {
	n := 0
	return NewWithClock(
		func() time.Time { return testNow },
		func() string {
			n++
			return fmt.Sprintf("ID%03d", n)
		},
	)
}

func testProducts() []model.Product {
	return []model.Product{
		{ID: "P1", Name: "Sumo", Price: 500, Cost: 300, Stock: 10, ManageStock: true, Category: "Bebidas"},
		{ID: "P2", Name: "Corte de cabelo", Price: 2000, ManageStock: false, Category: "Serviços"},
		{ID: "P3", Name: "Pão", Price: 100, Stock: 0, ManageStock: true, Category: "Alimentos"},
	}
}
