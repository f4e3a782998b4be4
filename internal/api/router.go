package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/example/crystal-shop/internal/api/middleware"
	"github.com/example/crystal-shop/internal/auth"
)

// RouterConfig bundles the handler groups and services the router needs.
type RouterConfig struct {
	Handlers      *Handlers
	AuthHandlers  *AuthHandlers
	AdminHandlers *AdminHandlers
	JWTService    *auth.JWTService
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	requireAuth := middleware.AuthMiddleware(cfg.JWTService)
	optionalAuth := middleware.OptionalAuthMiddleware(cfg.JWTService)

	// Auth
	mux.HandleFunc("/auth/register", methodHandler(http.MethodPost, cfg.AuthHandlers.Register))
	mux.HandleFunc("/auth/login", methodHandler(http.MethodPost, cfg.AuthHandlers.Login))
	mux.HandleFunc("/auth/logout", methodHandler(http.MethodPost, cfg.AuthHandlers.Logout))
	mux.Handle("/auth/me", requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			cfg.AuthHandlers.Me(w, r)
		case http.MethodPut:
			cfg.AuthHandlers.UpdateProfile(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	// Products (public)
	mux.HandleFunc("/products", methodHandler(http.MethodGet, cfg.Handlers.GetProducts))
	mux.HandleFunc("/products/featured", methodHandler(http.MethodGet, cfg.Handlers.GetFeaturedProducts))
	mux.HandleFunc("/products/", methodHandler(http.MethodGet, cfg.Handlers.GetProduct))

	// Payment methods (public)
	mux.HandleFunc("/payment-methods", methodHandler(http.MethodGet, cfg.Handlers.GetPaymentMethods))

	// Cart
	mux.Handle("/cart", requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			cfg.Handlers.GetCart(w, r)
		case http.MethodDelete:
			cfg.Handlers.ClearCart(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))
	mux.Handle("/cart/toggle", requireAuth(methodHandler(http.MethodPost, cfg.Handlers.ToggleCart)))
	mux.Handle("/cart/items", requireAuth(methodHandler(http.MethodPost, cfg.Handlers.AddToCart)))
	mux.Handle("/cart/items/", requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			cfg.Handlers.UpdateCartItem(w, r)
		case http.MethodDelete:
			cfg.Handlers.RemoveFromCart(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	// Checkout: optional auth so the flow itself can report
	// "authentication required" as a typed failure instead of a bare 401.
	mux.Handle("/checkout", optionalAuth(methodHandler(http.MethodPost, cfg.Handlers.Checkout)))

	// Orders
	mux.Handle("/orders", requireAuth(methodHandler(http.MethodGet, cfg.Handlers.GetOrders)))
	mux.Handle("/orders/", requireAuth(methodHandler(http.MethodGet, cfg.Handlers.GetOrder)))

	// Admin
	admin := func(h http.HandlerFunc) http.Handler {
		return requireAuth(middleware.RequireAdmin(h))
	}
	mux.Handle("/admin/orders", admin(methodHandler(http.MethodGet, cfg.AdminHandlers.GetAllOrders)))
	mux.Handle("/admin/orders/", admin(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/status") && r.Method == http.MethodPut {
			cfg.AdminHandlers.UpdateOrderStatus(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}))
	mux.Handle("/admin/products", admin(methodHandler(http.MethodPost, cfg.AdminHandlers.CreateProduct)))
	mux.Handle("/admin/products/", admin(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			cfg.AdminHandlers.UpdateProduct(w, r)
		case http.MethodDelete:
			cfg.AdminHandlers.DeleteProduct(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	return withLogging(mux)
}

func methodHandler(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[API] %s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
