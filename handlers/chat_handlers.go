package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"p9e.in/sendreq/middleware"
)

// ChatHandler handles direct messaging endpoints
type ChatHandler struct{}

var chatService *ChatService

// getChatService returns the chat service instance, initializing it if needed
func getChatService() *ChatService {
	if chatService == nil {
		chatService = NewChatService()
	}
	return chatService
}

type sendMessagePayload struct {
	ReceiverID uuid.UUID `json:"receiver_id"`
	Content    string    `json:"content"`
}

// SendMessage sends a direct message
// POST /api/v1/chat/messages
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	senderID, err := uuid.Parse(middleware.GetUserID(r))
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var payload sendMessagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	message, err := getChatService().SendMessage(senderID, payload.ReceiverID, payload.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(message)
}

// GetConversation returns the message history with a peer
// GET /api/v1/chat/messages/{userId}
func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(middleware.GetUserID(r))
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	peerID, err := uuid.Parse(mux.Vars(r)["userId"])
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	messages, err := getChatService().GetConversation(userID, peerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messages)
}

// MarkConversationRead marks every message from the peer as read
// PATCH /api/v1/chat/messages/{userId}/read
func (h *ChatHandler) MarkConversationRead(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(middleware.GetUserID(r))
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	peerID, err := uuid.Parse(mux.Vars(r)["userId"])
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	if err := getChatService().MarkConversationRead(userID, peerID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetConversations lists the caller's conversations with unread counts
// GET /api/v1/chat/conversations
func (h *ChatHandler) GetConversations(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(middleware.GetUserID(r))
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conversations, err := getChatService().GetConversations(userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(conversations)
}
