package routes

import (
	"github.com/gorilla/mux"
	"p9e.in/sendreq/handlers"
)

// RegisterChatRoutes registers all direct messaging routes
func RegisterChatRoutes(api *mux.Router) {
	chatHandler := &handlers.ChatHandler{}

	api.HandleFunc("/chat/messages", chatHandler.SendMessage).Methods("POST")
	api.HandleFunc("/chat/conversations", chatHandler.GetConversations).Methods("GET")
	api.HandleFunc("/chat/messages/{userId}", chatHandler.GetConversation).Methods("GET")
	api.HandleFunc("/chat/messages/{userId}/read", chatHandler.MarkConversationRead).Methods("PATCH")
}
