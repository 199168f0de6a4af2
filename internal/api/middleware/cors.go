package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS lets browser boards on other origins read plans and open the socket.
var CORS = cors.Handler(cors.Options{
	AllowedOrigins:   []string{"*"},
	AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
	ExposedHeaders:   []string{"X-Plan-File"},
	AllowCredentials: false,
	MaxAge:           300,
})
