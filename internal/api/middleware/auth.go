package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/dom/touchline-tactician/internal/service"
	"github.com/google/uuid"
)

func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Printf("ERROR [middleware.Auth] missing authorization header")
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Printf("ERROR [middleware.Auth] invalid authorization header format")
				http.Error(w, "Invalid authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := authService.ValidateToken(parts[1])
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			coachID, err := service.CoachIDFromClaims(claims)
			if err != nil {
				log.Printf("ERROR [middleware.Auth] bad subject claim: %v", err)
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(service.WithCoach(r.Context(), coachID)))
		})
	}
}

// GetCoachID returns the coach authenticated by Auth.
func GetCoachID(ctx context.Context) (uuid.UUID, bool) {
	return service.CoachFromContext(ctx)
}
