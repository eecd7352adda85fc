package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"p9e.in/sendreq/config"
	"p9e.in/sendreq/middleware"
	"p9e.in/sendreq/models"
	"p9e.in/sendreq/pkg/billing"
)

// RequestHandler handles payment request operations
type RequestHandler struct{}

var requestService *RequestService

// getRequestService returns the request service instance, initializing it if needed
func getRequestService() *RequestService {
	if requestService == nil {
		requestService = NewRequestService()
	}
	return requestService
}

// currentUser loads the full user row for the authenticated caller
func currentUser(r *http.Request) (*models.User, error) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		return nil, errors.New("not authenticated")
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := config.DB.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// writeServiceError maps service errors onto HTTP status codes
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrRequestNotFound), errors.Is(err, ErrNotificationNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrEditLimitExceeded):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("❌ Internal error: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// CreateRequest submits a new payment request
// POST /api/v1/requests
func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var draft RequestDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	request, err := getRequestService().CreateRequest(actor, draft)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(request)
}

// GetRequests lists the requests visible to the caller under a role.
// The role defaults to the first one the caller holds.
// GET /api/v1/requests?role=AUTHORIZER
func (h *RequestHandler) GetRequests(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	role := r.URL.Query().Get("role")
	if role == "" {
		if len(actor.Roles) == 0 {
			http.Error(w, "no roles assigned", http.StatusForbidden)
			return
		}
		role = actor.Roles[0]
	}

	requests, err := getRequestService().ListRequestsForRole(actor, role)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"requests": requests,
		"count":    len(requests),
	})
}

// GetRequest retrieves a single request
// GET /api/v1/requests/{id}
func (h *RequestHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid request ID", http.StatusBadRequest)
		return
	}

	request, err := getRequestService().GetRequest(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(request)
}

// EditRequest revises a request within the edit cap
// PUT /api/v1/requests/{id}
func (h *RequestHandler) EditRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid request ID", http.StatusBadRequest)
		return
	}

	var updates RequestUpdates
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	request, err := getRequestService().EditRequest(actor.ID, id, updates)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(request)
}

type statusUpdatePayload struct {
	Status  models.RequestStatus `json:"status"`
	Remarks string               `json:"remarks,omitempty"`
	Role    string               `json:"role,omitempty"`
}

// UpdateStatus performs a workflow transition
// PATCH /api/v1/requests/{id}/status
func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid request ID", http.StatusBadRequest)
		return
	}

	var payload statusUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	role := payload.Role
	if role == "" && len(actor.Roles) > 0 {
		role = actor.Roles[0]
	}

	request, err := getRequestService().UpdateStatus(actor, role, id, payload.Status, payload.Remarks)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(request)
}

// GetHistory retrieves the transition audit trail
// GET /api/v1/requests/{id}/history
func (h *RequestHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid request ID", http.StatusBadRequest)
		return
	}

	history, err := getRequestService().GetHistory(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(history)
}

type billingPayload struct {
	Items      models.BillingItems `json:"items"`
	TaxPercent float64             `json:"tax_percent"`
}

// ComputeBillingTotals recomputes a billing breakdown for print and report
// consumers so they show the same numbers the request stores.
// POST /api/v1/billing/totals
func (h *RequestHandler) ComputeBillingTotals(w http.ResponseWriter, r *http.Request) {
	var payload billingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	totals := billing.ComputeTotals(payload.Items, payload.TaxPercent)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(totals)
}

// parsePagination reads limit/offset query params with defaults
func parsePagination(r *http.Request) (int, int) {
	limit := 50
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}
