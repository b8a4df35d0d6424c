// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
// - browser/cdp: tab listing, activation and text extraction over the DevTools protocol (go-rod)
// - cache/memory: in-memory key-value store (go-cache)
// - cache/sqlite: local persistent key-value store, one table per namespace
// - cache/redis: synchronized key-value store with namespaced keys
// - clipboard: system clipboard and an in-process buffer
// - http/standard: net/http client making a single attempt per call
// - logger/structured: logrus logger with optional rotated file output
//
// # Key-value stores
//
//	pages, err := sqlite.NewSQLiteStore("tabscribe.db", "pages", logger)
//	err = pages.Set(ctx, "https://example.com", data, 0) // 0 never expires
//	keys, err := pages.Keys(ctx, "tab:")
//
// Every backend reports a miss with an error wrapping errors.ErrKeyNotFound.
//
// # HTTP Client
//
//	client := standard.NewStandardHTTPClient(2 * time.Minute)
//	resp, err := client.Post(ctx, url, body, nil)
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger := structured.New(structured.Options{Level: "info", Format: "json"})
//	logger.Info("Conversion started", map[string]interface{}{
//	    "tab": tabID,
//	})
package infrastructure
