package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/catalogkit/product-catalog-service/internal/http/handler"
	"github.com/catalogkit/product-catalog-service/internal/http/middleware"
)

func New(logger *slog.Logger, products *handler.ProductHandler, suppliers *handler.SupplierHandler, categories *handler.CategoryHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", products.List)
		r.Post("/", products.Create)
		r.Get("/{id}", products.Get)
		r.Put("/{id}", products.Update)
		r.Delete("/{id}", products.Delete)
	})

	r.Route("/api/suppliers", func(r chi.Router) {
		r.Get("/", suppliers.List)
		r.Post("/", suppliers.Create)
		r.Post("/atomic", suppliers.CreateAtomic)
		r.Get("/{id}", suppliers.Get)
		r.Put("/{id}", suppliers.Update)
		r.Delete("/{id}", suppliers.Delete)
	})

	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", categories.List)
		r.Post("/", categories.Create)
		r.Delete("/{id}", categories.Delete)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
