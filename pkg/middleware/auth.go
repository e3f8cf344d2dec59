package middleware

import (
	"context"
	"net/http"
	"strings"

	jwtutil "github.com/Dias221467/Meal_Planner/pkg/jwt"
)

type contextKey string

const deviceContextKey contextKey = "device"

// AuthMiddleware requires a valid device token, either as a Bearer header or
// a "token" query parameter (websocket clients cannot set headers).
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := r.URL.Query().Get("token")
			if tokenStr == "" {
				header := r.Header.Get("Authorization")
				tokenStr = strings.TrimPrefix(header, "Bearer ")
				if tokenStr == header {
					tokenStr = ""
				}
			}
			if tokenStr == "" {
				http.Error(w, "Missing token", http.StatusUnauthorized)
				return
			}

			claims, err := jwtutil.ValidateToken(tokenStr, jwtSecret)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), deviceContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetDeviceFromContext returns the device claims set by AuthMiddleware, or
// nil.
func GetDeviceFromContext(ctx context.Context) *jwtutil.Claims {
	claims, _ := ctx.Value(deviceContextKey).(*jwtutil.Claims)
	return claims
}
