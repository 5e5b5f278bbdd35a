package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// products is the fixed catalogue served by ProductsHandler.
var products = []string{"mouse", "keyboard", "speakers"}

// ProductsHandler serves a constant list of product labels.
type ProductsHandler struct{}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler() *ProductsHandler {
	return &ProductsHandler{}
}

// Routes registers product routes on the given chi router.
func (h *ProductsHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
}

// List returns every product label.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, products)
}
