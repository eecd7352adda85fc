package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/sendreq/handlers"
	"p9e.in/sendreq/middleware"
	"p9e.in/sendreq/models"
)

// RegisterRequestRoutes registers all payment request routes
func RegisterRequestRoutes(api *mux.Router) {
	reqHandler := &handlers.RequestHandler{}

	// Submit a new request (staff only; the service re-checks)
	api.Handle("/requests", middleware.RequireRole([]string{models.RoleStaff},
		http.HandlerFunc(reqHandler.CreateRequest))).Methods("POST")

	// Role-scoped listing
	api.HandleFunc("/requests", reqHandler.GetRequests).Methods("GET")

	// Single request with transition history
	api.HandleFunc("/requests/{id}", reqHandler.GetRequest).Methods("GET")
	api.HandleFunc("/requests/{id}/history", reqHandler.GetHistory).Methods("GET")

	// Revise a request (resets the workflow, capped)
	api.HandleFunc("/requests/{id}", reqHandler.EditRequest).Methods("PUT")

	// Workflow transition (authorize, freeze, reject, approve)
	api.HandleFunc("/requests/{id}/status", reqHandler.UpdateStatus).Methods("PATCH")

	// Billing breakdown for print/report consumers
	api.HandleFunc("/billing/totals", reqHandler.ComputeBillingTotals).Methods("POST")

	// Auditor exports
	auditorExport := []string{models.RoleAuditor, models.RoleAdmin}
	api.Handle("/reports/approved/export", middleware.RequireRole(auditorExport,
		http.HandlerFunc(handlers.ExportApprovedToExcel))).Methods("GET")
	api.Handle("/reports/approved/export/csv", middleware.RequireRole(auditorExport,
		http.HandlerFunc(handlers.ExportApprovedToCSV))).Methods("GET")

	// Branding and dropdown lists are readable by any authenticated user
	api.HandleFunc("/settings/branding", handlers.GetBranding).Methods("GET")
	api.HandleFunc("/settings/lists", handlers.GetSystemLists).Methods("GET")
	api.HandleFunc("/settings/lists/{name}", handlers.GetSystemList).Methods("GET")
}
