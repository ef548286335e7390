package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/gestor/internal/model"
	"github.com/mmeshcher/gestor/internal/service"
)

// GetCart возвращает открытую корзину.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Cart(r.Context()))
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddCartItem добавляет товар в корзину. Без quantity добавляется одна единица.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil || req.ProductID == "" {
		badRequest(w)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.service.AddToCart(r.Context(), req.ProductID, req.Quantity)
	if err != nil {
		h.writeError(w, err, "add cart item")
		return
	}
	h.writeJSON(w, http.StatusOK, cart)
}

// RemoveCartItem удаляет строку товара из корзины.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.RemoveFromCart(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		h.writeError(w, err, "remove cart item")
		return
	}
	h.writeJSON(w, http.StatusOK, cart)
}

// ClearCart отменяет корзину.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.service.ClearCart(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

type checkoutRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerID    string `json:"customerId"`
	PaymentMethod string `json:"paymentMethod"`
}

type checkoutResponse struct {
	Sale       model.Sale     `json:"sale"`
	Customer   model.Customer `json:"customer"`
	Resolution string         `json:"customerResolution"`
}

// Checkout оформляет открытую корзину.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w)
		return
	}

	sale, res, err := h.service.Checkout(r.Context(), service.CheckoutRequest{
		CustomerName:  req.CustomerName,
		CustomerID:    req.CustomerID,
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		h.writeError(w, err, "checkout")
		return
	}

	h.writeJSON(w, http.StatusCreated, checkoutResponse{
		Sale:       sale,
		Customer:   res.Customer,
		Resolution: res.Kind.String(),
	})
}

// ListSales возвращает историю продаж.
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.ListSales(r.Context()))
}

type refundRequest struct {
	Reason string `json:"reason"`
}

// Refund выполняет возврат продажи. Тело запроса необязательно.
func (h *Handler) Refund(w http.ResponseWriter, r *http.Request) {
	var req refundRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w)
			return
		}
	}

	sale, err := h.service.Refund(r.Context(), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		h.writeError(w, err, "refund")
		return
	}
	h.writeJSON(w, http.StatusOK, sale)
}

// GetReceipt возвращает чек продажи.
func (h *Handler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	rc, err := h.service.Receipt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err, "receipt")
		return
	}
	h.writeJSON(w, http.StatusOK, rc)
}
