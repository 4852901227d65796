package router

import (
	"net/http"
	"strings"

	"globaltrade/internal/auth"
	"globaltrade/internal/handler"
	"globaltrade/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	inquiryHandler *handler.InquiryHandler,
	tariffHandler *handler.TariffHandler,
	dashboardHandler *handler.DashboardHandler,
	tokens *auth.TokenIssuer,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// requireUser guards views that need a signed-in user.
	requireUser := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireUser(h).ServeHTTP
	}

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Account routes
	mux.HandleFunc("/api/auth/signup", authHandler.SignUp)
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/logout", authHandler.Logout)
	mux.HandleFunc("/api/auth/me", requireUser(authHandler.Me))

	// Product handler function
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// The suggestion endpoint shares the /api/products/ prefix and must
		// be matched before the detail route.
		if r.URL.Path == "/api/products/search" {
			productHandler.Suggest(w, r)
			return
		}

		if r.URL.Path == "/api/products" || r.URL.Path == "/api/products/" {
			switch r.Method {
			case http.MethodGet:
				productHandler.Search(w, r)
			case http.MethodPost:
				requireUser(productHandler.Create)(w, r)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		// Remaining paths carry a product ID
		switch r.Method {
		case http.MethodGet:
			productHandler.GetByID(w, r)
		case http.MethodPut:
			requireUser(productHandler.Update)(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}

	// Register product routes (both with and without trailing slash)
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Catalogue helper routes
	mux.HandleFunc("/api/categories", productHandler.Categories)
	mux.HandleFunc("/api/countries", productHandler.Countries)

	// Tariff routes
	mux.HandleFunc("/api/tariffs", tariffHandler.List)
	mux.HandleFunc("/api/tariffs/calculate", tariffHandler.Calculate)

	// Inquiry handler function
	inquiryRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/inquiries" || r.URL.Path == "/api/inquiries/" {
			switch r.Method {
			case http.MethodGet:
				requireUser(inquiryHandler.List)(w, r)
			case http.MethodPost:
				requireUser(inquiryHandler.Create)(w, r)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		if r.Method == http.MethodPatch && strings.HasSuffix(r.URL.Path, "/status") {
			requireUser(inquiryHandler.UpdateStatus)(w, r)
			return
		}

		http.Error(w, "not found", http.StatusNotFound)
	}

	// Register inquiry routes (both with and without trailing slash)
	mux.HandleFunc("/api/inquiries", inquiryRouteHandler)
	mux.HandleFunc("/api/inquiries/", inquiryRouteHandler)

	// Dashboard routes
	mux.HandleFunc("/api/dashboard", requireUser(dashboardHandler.Buyer))
	mux.HandleFunc("/api/dashboard/seller", requireUser(dashboardHandler.Seller))
	mux.HandleFunc("/api/dashboard/products", requireUser(productHandler.ListMine))

	// Apply middleware in order: Recovery -> Logging -> CORS -> Authenticate
	var h http.Handler = mux
	h = middleware.Authenticate(tokens, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
