package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	r := mux.NewRouter()
	r.Use(WithRequestID, WithLogging)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", app.healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/public/pricing", app.publicPricingHandler).Methods(http.MethodGet)

	api.HandleFunc("/auth/login", app.loginHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", app.logoutHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset-request", app.resetRequestHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset", app.resetHandler).Methods(http.MethodPost)

	api.HandleFunc("/products", app.listProductsHandler).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", app.getProductHandler).Methods(http.MethodGet)
	api.Handle("/products", app.requireAdmin(http.HandlerFunc(app.createProductHandler))).Methods(http.MethodPost)
	api.Handle("/products/{id}", app.requireAdmin(http.HandlerFunc(app.updateProductHandler))).Methods(http.MethodPut)
	api.Handle("/products/{id}", app.requireAdmin(http.HandlerFunc(app.deleteProductHandler))).Methods(http.MethodDelete)

	api.HandleFunc("/reviews", app.listReviewsHandler).Methods(http.MethodGet)
	api.HandleFunc("/reviews", app.createReviewHandler).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(app.requireAdmin)
	admin.HandleFunc("/pricing", app.adminPricingGetHandler).Methods(http.MethodGet)
	admin.HandleFunc("/pricing", app.adminPricingPostHandler).Methods(http.MethodPost)
	admin.HandleFunc("/users", app.listUsersHandler).Methods(http.MethodGet)
	admin.HandleFunc("/users", app.createUserHandler).Methods(http.MethodPost)
	admin.HandleFunc("/users/{email}", app.deleteUserHandler).Methods(http.MethodDelete)

	return r
}
