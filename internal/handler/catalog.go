package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/gestor/internal/model"
)

// ListProducts возвращает каталог с отбором по параметрам q и category.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.writeJSON(w, http.StatusOK, h.service.ListProducts(r.Context(), q.Get("q"), q.Get("category")))
}

// CreateProduct добавляет товар в каталог.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.Product
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w)
		return
	}

	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		h.writeError(w, err, "create product")
		return
	}
	h.writeJSON(w, http.StatusCreated, p)
}

// UpdateProduct заменяет данные товара.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.Product
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w)
		return
	}

	p, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, err, "update product")
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

// DeleteProduct удаляет товар.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err, "delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type customerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ListCustomers возвращает клиентов по убыванию суммы покупок.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.ListCustomers(r.Context(), r.URL.Query().Get("q")))
}

// CreateCustomer регистрирует клиента.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w)
		return
	}

	c, err := h.service.CreateCustomer(r.Context(), req.Name, req.Phone)
	if err != nil {
		h.writeError(w, err, "create customer")
		return
	}
	h.writeJSON(w, http.StatusCreated, c)
}

// UpdateCustomer меняет имя и телефон клиента.
func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w)
		return
	}

	c, err := h.service.UpdateCustomer(r.Context(), chi.URLParam(r, "id"), req.Name, req.Phone)
	if err != nil {
		h.writeError(w, err, "update customer")
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

// DeleteCustomer удаляет клиента.
func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCustomer(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err, "delete customer")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CustomerSales возвращает историю продаж клиента.
func (h *Handler) CustomerSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.CustomerSales(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err, "customer sales")
		return
	}
	h.writeJSON(w, http.StatusOK, sales)
}

type expenseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

// ListExpenses возвращает расходы.
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.ListExpenses(r.Context()))
}

// AddExpense регистрирует расход.
func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w)
		return
	}

	e, err := h.service.AddExpense(r.Context(), model.Expense{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
	})
	if err != nil {
		h.writeError(w, err, "add expense")
		return
	}
	h.writeJSON(w, http.StatusCreated, e)
}

// DeleteExpense удаляет расход.
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteExpense(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err, "delete expense")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
