// Package api provides the HTTP panel API for Tabscribe.
// It uses the Huma framework on a chi router to provide automatic OpenAPI
// documentation, request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: tab, panel, settings, storage, auth and render handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: request logging with request IDs, per-IP rate limiting
//
// # Key Features
//
// 1. Automatic OpenAPI Generation
//
// The API automatically generates OpenAPI 3.1 documentation:
// - JSON spec available at /openapi.json
// - Interactive docs at /docs
//
// 2. Request/Response Validation
//
// Huma validates bodies and parameters from struct tags:
//
//	type PromptRequest struct {
//	    Name    string `json:"name" required:"true" minLength:"1"`
//	    Content string `json:"content" required:"true" minLength:"1"`
//	}
//
// 3. Middleware Support
//
// - Request logging with an X-Request-ID that is also attached to outgoing calls
// - Rate limiting per client IP
// - CORS for browser-based panels
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  60,
//	    RateWindow: time.Minute,
//	},
//	    handlers.NewTabsHandler(controller),
//	    handlers.NewPanelHandler(controller),
//	)
//
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// Errors use the RFC 7807 problem format:
//
//	{
//	    "status": 400,
//	    "title": "Bad Request",
//	    "detail": "validation error on field 'apiKey': Please save a valid API key first"
//	}
//
// Domain errors are mapped to status codes in one place: invalid input 400,
// authentication 401, not found 404, conflicting conversion 409, upstream
// throttling 429, upstream failures 502/503, unreachable upstream 504.
package api
