package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/mmeshcher/gestor/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware сервиса Gestor.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/session/register", h.Register)
		r.Post("/session/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(h.sessionMiddleware.Middleware)

			r.Post("/session/logout", h.Logout)
			r.Get("/session", h.GetSession)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.ListProducts)
				r.Post("/", h.CreateProduct)
				r.Put("/{id}", h.UpdateProduct)
				r.Delete("/{id}", h.DeleteProduct)
			})

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", h.ListCustomers)
				r.Post("/", h.CreateCustomer)
				r.Put("/{id}", h.UpdateCustomer)
				r.Delete("/{id}", h.DeleteCustomer)
				r.Get("/{id}/sales", h.CustomerSales)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", h.ListExpenses)
				r.Post("/", h.AddExpense)
				r.Delete("/{id}", h.DeleteExpense)
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.GetCart)
				r.Delete("/", h.ClearCart)
				r.Post("/items", h.AddCartItem)
				r.Delete("/items/{productID}", h.RemoveCartItem)
			})

			r.Post("/checkout", h.Checkout)

			r.Route("/sales", func(r chi.Router) {
				r.Get("/", h.ListSales)
				r.Post("/{id}/refund", h.Refund)
				r.Get("/{id}/receipt", h.GetReceipt)
			})

			r.Get("/dashboard", h.GetDashboard)
			r.Get("/finances", h.GetFinances)

			r.Get("/settings", h.GetSettings)
			r.Put("/settings", h.UpdateSettings)

			r.Get("/backup", h.ExportBackup)
			r.Post("/backup", h.ImportBackup)

			r.Delete("/data", h.ClearData)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
