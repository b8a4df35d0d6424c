// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"tabscribe-api/api/middleware"
	"tabscribe-api/core/interfaces"
)

const (
	apiTitle       = "Tabscribe API"
	apiVersion     = "1.0.0"
	apiDescription = "Extracts text from browser tabs, converts it to markdown and shares the result"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger     interfaces.Logger
	RateLimit  int           // requests per window, 0 disables limiting
	RateWindow time.Duration // rate limit window

	// AllowedOrigins may call the API from a browser besides its own origin
	AllowedOrigins []string
}

// Route groups register their operations on the API
type Routes interface {
	RegisterRoutes(api huma.API)
}

func corsOptions(allowed []string) cors.Options {
	return cors.Options{
		// An empty AllowedOrigins list would allow every origin
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return middleware.OriginAllowed(r, allowed, origin)
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	return NewAPIWithMiddleware(APIConfig{})
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig, routes ...Routes) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// CORS first so preflight requests are neither logged as errors nor rate limited
	router.Use(cors.Handler(corsOptions(cfg.AllowedOrigins)))
	router.Use(middleware.OriginGuard(cfg.AllowedOrigins, cfg.Logger))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = apiDescription

	// The OpenAPI spec is served at /openapi.json and the docs UI at /docs
	api := humachi.New(router, config)

	for _, r := range routes {
		r.RegisterRoutes(api)
	}

	return api, router
}
