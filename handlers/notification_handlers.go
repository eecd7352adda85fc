package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"p9e.in/sendreq/middleware"
	"p9e.in/sendreq/models"
)

// NotificationHandler handles notification operations
type NotificationHandler struct{}

var notificationService *NotificationService

// getNotificationService returns the notification service instance, initializing it if needed
func getNotificationService() *NotificationService {
	if notificationService == nil {
		notificationService = NewNotificationService()
	}
	return notificationService
}

// GetNotifications retrieves notifications for the current user
// GET /api/v1/notifications
func (h *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	limit, offset := parsePagination(r)
	notifications, err := getNotificationService().GetNotificationsForUser(userID, limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	unreadCount, _ := getNotificationService().GetUnreadCount(userID)

	dtos := make([]models.NotificationDTO, len(notifications))
	for i, notif := range notifications {
		dtos[i] = notif.ToDTO()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"notifications": dtos,
		"count":         len(dtos),
		"unread_count":  unreadCount,
	})
}

// GetUnreadCount gets the unread notification count
// GET /api/v1/notifications/unread-count
func (h *NotificationHandler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	count, err := getNotificationService().GetUnreadCount(userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"unread_count": count})
}

// MarkNotificationAsRead marks a single notification as read
// PATCH /api/v1/notifications/{id}/read
func (h *NotificationHandler) MarkNotificationAsRead(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid notification ID", http.StatusBadRequest)
		return
	}

	if err := getNotificationService().MarkRead(userID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkAllNotificationsAsRead marks all of the caller's notifications as read
// PATCH /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllNotificationsAsRead(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	if err := getNotificationService().MarkAllRead(userID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
