// Package handler содержит HTTP-обработчики API сервиса Gestor.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mmeshcher/gestor/internal/engine"
	"github.com/mmeshcher/gestor/internal/middleware"
	"github.com/mmeshcher/gestor/internal/model"
	"github.com/mmeshcher/gestor/internal/receipt"
	"github.com/mmeshcher/gestor/internal/repository"
	"github.com/mmeshcher/gestor/internal/service"
	"github.com/mmeshcher/gestor/internal/stats"
	"github.com/mmeshcher/gestor/internal/validation"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	Login(ctx context.Context, companyName, password string, register bool) (model.Session, error)
	Logout(ctx context.Context)
	Session(ctx context.Context) *model.Session

	ListProducts(ctx context.Context, query, category string) []model.Product
	CreateProduct(ctx context.Context, p model.Product) (model.Product, error)
	UpdateProduct(ctx context.Context, productID string, p model.Product) (model.Product, error)
	DeleteProduct(ctx context.Context, productID string) error

	ListCustomers(ctx context.Context, query string) []model.Customer
	CreateCustomer(ctx context.Context, name, phone string) (model.Customer, error)
	UpdateCustomer(ctx context.Context, customerID, name, phone string) (model.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error
	CustomerSales(ctx context.Context, customerID string) ([]model.Sale, error)

	ListExpenses(ctx context.Context) []model.Expense
	AddExpense(ctx context.Context, e model.Expense) (model.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string) error

	Cart(ctx context.Context) service.CartView
	AddToCart(ctx context.Context, productID string, qty int) (service.CartView, error)
	RemoveFromCart(ctx context.Context, productID string) (service.CartView, error)
	ClearCart(ctx context.Context)
	Checkout(ctx context.Context, req service.CheckoutRequest) (model.Sale, engine.CustomerResolution, error)

	ListSales(ctx context.Context) []model.Sale
	Refund(ctx context.Context, saleID, reason string) (model.Sale, error)
	Receipt(ctx context.Context, saleID string) (receipt.Receipt, error)

	Dashboard(ctx context.Context) stats.Dashboard
	Finances(ctx context.Context) stats.Summary

	Settings(ctx context.Context) model.ShopConfig
	UpdateSettings(ctx context.Context, cfg model.ShopConfig) model.ShopConfig
	ExportBackup(ctx context.Context) ([]byte, error)
	ImportBackup(ctx context.Context, data []byte) error
	ClearData(ctx context.Context) error
}

// Handler реализует HTTP-обработчики API сервиса Gestor.
type Handler struct {
	service           Service
	logger            *zap.Logger
	sessionMiddleware *middleware.SessionMiddleware
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, session *middleware.SessionMiddleware) *Handler {
	return &Handler{
		service:           s,
		logger:            logger,
		sessionMiddleware: session,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
	}
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// errorResponse описывает тело ответа с ошибкой.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError переводит доменную ошибку в HTTP-статус.
func (h *Handler) writeError(w http.ResponseWriter, err error, op string) {
	var status int
	switch {
	case errors.Is(err, validation.ErrValidation), errors.Is(err, repository.ErrImportParse):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrOutOfStock),
		errors.Is(err, engine.ErrStockExceeded),
		errors.Is(err, engine.ErrAlreadyRefunded):
		status = http.StatusConflict
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	default:
		h.logger.Error(op+" error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func badRequest(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
}

type credentialsRequest struct {
	CompanyName string `json:"companyName"`
	Password    string `json:"password"`
}

// Register открывает сессию и задаёт название магазина.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	h.openSession(w, r, true)
}

// Login открывает сессию.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.openSession(w, r, false)
}

func (h *Handler) openSession(w http.ResponseWriter, r *http.Request, register bool) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w)
		return
	}

	session, err := h.service.Login(r.Context(), req.CompanyName, req.Password, register)
	if err != nil {
		h.writeError(w, err, "login")
		return
	}

	h.sessionMiddleware.SetSessionCookie(w, session.Token)
	h.writeJSON(w, http.StatusOK, session)
}

// Logout закрывает сессию и удаляет cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.service.Logout(r.Context())
	h.sessionMiddleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// GetSession возвращает текущую сессию.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session := h.service.Session(r.Context())
	if session == nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	h.writeJSON(w, http.StatusOK, session)
}
