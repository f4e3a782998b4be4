package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/example/crystal-shop/internal/catalog"
	"github.com/example/crystal-shop/internal/order"
)

// AdminHandlers serves the admin panel: all orders, order status updates,
// and product management. Routes using these are wrapped in RequireAdmin.
type AdminHandlers struct {
	orders  order.Store
	catalog *catalog.PostgresStore
}

func NewAdminHandlers(orders order.Store, cat *catalog.PostgresStore) *AdminHandlers {
	return &AdminHandlers{orders: orders, catalog: cat}
}

func (h *AdminHandlers) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// UpdateOrderStatus transitions an order to a new status. Invalid
// transitions are rejected by the order state machine.
func (h *AdminHandlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/admin/orders/")
	id := strings.TrimSuffix(path, "/status")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.orders.UpdateStatus(r.Context(), id, status)
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrInvalidTransit),
		errors.Is(err, order.ErrOrderCancelled),
		errors.Is(err, order.ErrOrderDelivered):
		respondError(w, http.StatusConflict, err.Error())
	case err != nil:
		respondError(w, http.StatusInternalServerError, err.Error())
	default:
		respondJSON(w, http.StatusOK, map[string]string{"message": "Order status updated"})
	}
}

func (h *AdminHandlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.catalog.Create(r.Context(), p)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *AdminHandlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/admin/products/")

	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	p.ID = id

	err := h.catalog.Update(r.Context(), p)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product updated"})
}

func (h *AdminHandlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/admin/products/")

	err := h.catalog.Delete(r.Context(), id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}
