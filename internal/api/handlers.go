package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/example/crystal-shop/internal/api/middleware"
	"github.com/example/crystal-shop/internal/cart"
	"github.com/example/crystal-shop/internal/catalog"
	"github.com/example/crystal-shop/internal/checkout"
	"github.com/example/crystal-shop/internal/order"
	"github.com/example/crystal-shop/internal/payment"
)

type Handlers struct {
	catalog  catalog.Provider
	carts    *cart.Service
	checkout *checkout.Service
	orders   order.Store
	payments *payment.Registry
}

func NewHandlers(cat catalog.Provider, carts *cart.Service, co *checkout.Service, orders order.Store, payments *payment.Registry) *Handlers {
	return &Handlers{
		catalog:  cat,
		carts:    carts,
		checkout: co,
		orders:   orders,
		payments: payments,
	}
}

// Product Handlers

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListFeatured(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/products/")
	product, err := h.catalog.GetByID(r.Context(), id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// Payment method listing

func (h *Handlers) GetPaymentMethods(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"methods": h.payments.Names()})
}

// Cart Handlers

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	respondJSON(w, http.StatusOK, h.carts.ForUser(r.Context(), userID).Snapshot())
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Price and name come from the catalog, never from the client.
	product, err := h.catalog.GetByID(r.Context(), req.ProductID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	userCart := h.carts.ForUser(r.Context(), userID)
	userCart.AddItem(r.Context(), cart.LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		ImageURL:  product.ImageURL,
	}, req.Quantity)

	respondJSON(w, http.StatusOK, userCart.Snapshot())
}

func (h *Handlers) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	productID := extractPathParam(r.URL.Path, "/cart/items/")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	userCart := h.carts.ForUser(r.Context(), userID)
	userCart.SetQuantity(r.Context(), productID, req.Quantity)
	respondJSON(w, http.StatusOK, userCart.Snapshot())
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	productID := extractPathParam(r.URL.Path, "/cart/items/")

	userCart := h.carts.ForUser(r.Context(), userID)
	userCart.RemoveItem(r.Context(), productID)
	respondJSON(w, http.StatusOK, userCart.Snapshot())
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	userCart := h.carts.ForUser(r.Context(), userID)
	userCart.Clear(r.Context())
	respondJSON(w, http.StatusOK, userCart.Snapshot())
}

func (h *Handlers) ToggleCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	userCart := h.carts.ForUser(r.Context(), userID)
	userCart.ToggleVisibility(r.Context())
	respondJSON(w, http.StatusOK, userCart.Snapshot())
}

// Checkout Handler

func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req struct {
		ShippingAddress order.ShippingAddress `json:"shipping_address"`
		PaymentMethod   string                `json:"payment_method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.checkout.Submit(r.Context(), userID, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		h.respondCheckoutError(w, err)
		return
	}

	// The client redirects to the confirmation view keyed by this id.
	respondJSON(w, http.StatusCreated, map[string]any{
		"order":            o,
		"confirmation_url": "/orders/" + o.ID + "/confirmation",
	})
}

func (h *Handlers) respondCheckoutError(w http.ResponseWriter, err error) {
	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		respondFieldErrors(w, verr.Fields)
		return
	}

	switch {
	case errors.Is(err, checkout.ErrAuthenticationRequired):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, checkout.ErrSubmissionInFlight):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusBadGateway, err.Error())
	}
}

// Order Handlers

func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	orders, err := h.orders.ListByUser(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/orders/")

	o, err := h.orders.GetByID(r.Context(), id)
	if errors.Is(err, order.ErrOrderNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Users can only see their own orders; admins can see all.
	claims, _ := middleware.GetUserFromContext(r.Context())
	if o.UserID != middleware.GetUserID(r.Context()) && (claims == nil || !claims.IsAdmin) {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	respondJSON(w, http.StatusOK, o)
}

// Helper functions

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}
