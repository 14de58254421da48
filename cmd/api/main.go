package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"feedgram/cmd/app"
	"feedgram/internal/config"
	handlers "feedgram/internal/handler"
	"feedgram/internal/middleware"
	"feedgram/internal/realtime"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)
	hub := realtime.NewHub(services.Auth, services.Chat, cfg)

	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/auth/register", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/logout", handler.Logout).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/forgot-password", handler.ForgotPassword).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/reset-password/{token}", handler.ResetPassword).Methods(http.MethodPost)

	router.HandleFunc("/api/profile", handler.Profile).Methods(http.MethodGet)
	router.HandleFunc("/api/profile", handler.UpdateProfile).Methods(http.MethodPut)
	router.HandleFunc("/api/profile", handler.DeleteAccount).Methods(http.MethodDelete)
	router.HandleFunc("/api/profile/privacy", handler.TogglePrivacy).Methods(http.MethodPatch)

	router.HandleFunc("/api/users/search", handler.SearchUsers).Methods(http.MethodGet)
	router.HandleFunc("/api/users/{id}", handler.UserProfile).Methods(http.MethodGet)
	router.HandleFunc("/api/users/{id}/followers", handler.Followers).Methods(http.MethodGet)
	router.HandleFunc("/api/users/{id}/following", handler.Following).Methods(http.MethodGet)
	router.HandleFunc("/api/users/{id}/follow", handler.Follow).Methods(http.MethodPost)
	router.HandleFunc("/api/users/{id}/follow", handler.Unfollow).Methods(http.MethodDelete)
	router.HandleFunc("/api/users/{id}/follow-status", handler.FollowStatus).Methods(http.MethodGet)

	router.HandleFunc("/api/follow-requests", handler.FollowRequests).Methods(http.MethodGet)
	router.HandleFunc("/api/follow-requests/{id}/accept", handler.AcceptFollowRequest).Methods(http.MethodPost)
	router.HandleFunc("/api/follow-requests/{id}/reject", handler.RejectFollowRequest).Methods(http.MethodPost)

	router.HandleFunc("/api/posts", handler.CreatePost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/home", handler.HomeFeed).Methods(http.MethodGet)
	router.HandleFunc("/api/posts/{id}", handler.UpdatePost).Methods(http.MethodPut)
	router.HandleFunc("/api/posts/{id}", handler.DeletePost).Methods(http.MethodDelete)
	router.HandleFunc("/api/posts/{id}/like", handler.LikePost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{id}/like", handler.UnlikePost).Methods(http.MethodDelete)

	router.HandleFunc("/api/chat/users", handler.ChatUsers).Methods(http.MethodGet)
	router.HandleFunc("/api/chat/{id}/messages", handler.ChatHistory).Methods(http.MethodGet)
	router.HandleFunc("/api/chat/{id}/read", handler.MarkMessagesRead).Methods(http.MethodPut)

	router.HandleFunc("/ws", hub.HandleWebsocket)

	handlerChain := middleware.Chain(
		router,
		middleware.AuthMiddleware(services.Auth),
		middleware.CORSMiddleware(cfg),
		middleware.LoggingMiddleware,
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Server listening on %s", addr)
	log.Printf("Database: %s", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
