// Package handler exposes the order and menu operations over HTTP and maps
// domain faults to status codes.
package handler

import (
	"net/http"

	"github.com/dishpatch/order-api/internal/domain/menu"
	"github.com/dishpatch/order-api/internal/domain/order"
)

// Handler serves the JSON API, delegating business logic to the order
// service and menu repository.
type Handler struct {
	orders *order.Service
	menu   menu.Repository
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(orders *order.Service, menuRepo menu.Repository) *Handler {
	return &Handler{
		orders: orders,
		menu:   menuRepo,
	}
}

// Register attaches the API routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/orders", h.CreateOrder)
	mux.HandleFunc("GET /api/orders/{id}", h.GetOrder)
	mux.HandleFunc("GET /api/menu", h.ListMenu)
}
