package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"feedgram/internal/config"
	handlers "feedgram/internal/handler"
	"feedgram/internal/service"
)

type Middleware func(http.Handler) http.Handler

// AuthMiddleware verifies the bearer token and adds user data to the
// context. The websocket endpoint authenticates over its own protocol
// after the upgrade, so it is listed as public here.
func AuthMiddleware(authService service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			publicPaths := []string{
				"/api/auth/register",
				"/api/auth/login",
				"/api/auth/forgot-password",
				"/health",
				"/ws",
				"/",
			}

			for _, path := range publicPaths {
				if r.URL.Path == path {
					next.ServeHTTP(w, r)
					return
				}
			}
			if strings.HasPrefix(r.URL.Path, "/api/auth/reset-password/") {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := extractToken(r)
			if tokenString == "" {
				handlers.WriteError(w, "Authorization required", http.StatusUnauthorized)
				return
			}

			user, err := authService.GetUserFromToken(tokenString)
			if err != nil {
				handlers.WriteError(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, "userID", user.UserID)
			ctx = context.WithValue(ctx, "username", user.Username)
			ctx = context.WithValue(ctx, "email", user.Email)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken prefers the Authorization header and falls back to the
// session cookie set at login.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := r.Cookie("token")
	if err != nil {
		return ""
	}
	return cookie.Value
}

func CORSMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.RequestURI, time.Since(start))
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
