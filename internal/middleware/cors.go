package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors is permissive: the client is same-origin in production, but dev
// servers run the frontend on another port.
func Cors() Middleware {
	return cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler
}
