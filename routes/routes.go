package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"p9e.in/sendreq/handlers"
	"p9e.in/sendreq/middleware"
	"p9e.in/sendreq/models"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.HandleFunc("/token", handlers.GetCurrentUser).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.MetricsMiddleware)
	api.Use(middleware.JWTMiddleware)

	// Profile self-service
	api.HandleFunc("/profile", handlers.GetProfile).Methods("GET")
	api.HandleFunc("/profile", handlers.UpdateProfile).Methods("PUT")

	// User directory (authorizer/approver pickers)
	api.HandleFunc("/users", handlers.GetAllUsers).Methods("GET")

	// File uploads
	api.HandleFunc("/files", handlers.UploadFileHandler).Methods("POST")

	// Feature routes
	RegisterRequestRoutes(api)
	RegisterNotificationRoutes(api)
	RegisterChatRoutes(api)

	// =====================================================
	// Admin Routes (require the ADMIN role)
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	registerAdminRoutes(admin)

	return r
}

// registerAdminRoutes wires user management and system settings
func registerAdminRoutes(admin *mux.Router) {
	adminOnly := []string{models.RoleAdmin}

	admin.Handle("/users/{id}", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.UpdateUser))).Methods("PUT")

	admin.Handle("/settings/branding", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.UpdateBranding))).Methods("PUT")
	admin.Handle("/settings/lists/{name}", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.UpdateSystemList))).Methods("PUT")
}
