package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"civdef-inventory-backend/internal/domain"
	"civdef-inventory-backend/internal/security"
)

// NewRouter wires all handlers onto route hierarchies with auth middleware.
func NewRouter(
	tm security.TokenManager,
	authH *AuthHandler,
	itemH *ItemHandler,
	requestH *RequestHandler,
	userH *UserHandler,
	assistantH *AssistantHandler,
) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/login", authH.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authH.Refresh).Methods(http.MethodPost)

	// Authenticated routes
	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tm))
	authed.HandleFunc("/items", itemH.List).Methods(http.MethodGet)
	authed.HandleFunc("/items/{id:[0-9]+}", itemH.Get).Methods(http.MethodGet)
	authed.HandleFunc("/items/{id:[0-9]+}/observations", itemH.AddObservation).Methods(http.MethodPost)
	authed.HandleFunc("/requests", requestH.List).Methods(http.MethodGet)
	authed.HandleFunc("/requests", requestH.Create).Methods(http.MethodPost)
	authed.HandleFunc("/assistant/query", assistantH.Query).Methods(http.MethodPost)

	// Admin routes
	admin := api.NewRoute().Subrouter()
	admin.Use(AuthMiddleware(tm), RequireRole(domain.RoleAdmin))
	admin.HandleFunc("/items", itemH.Create).Methods(http.MethodPost)
	admin.HandleFunc("/items/{id:[0-9]+}", itemH.Update).Methods(http.MethodPut)
	admin.HandleFunc("/items/{id:[0-9]+}/observations/{obsID:[0-9]+}", itemH.DeleteObservation).Methods(http.MethodDelete)
	admin.HandleFunc("/requests/{id:[0-9]+}/status", requestH.UpdateStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/requests", requestH.ClearAll).Methods(http.MethodDelete)
	admin.HandleFunc("/users", userH.List).Methods(http.MethodGet)
	admin.HandleFunc("/users", userH.Create).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id:[0-9]+}", userH.Delete).Methods(http.MethodDelete)

	return r
}
