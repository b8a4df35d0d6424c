package main

import (
	"context"
	"fmt"

	"tabscribe-api/core/interfaces"
	"tabscribe-api/core/store"
	"tabscribe-api/infrastructure/cache/memory"
	"tabscribe-api/infrastructure/cache/redis"
	"tabscribe-api/infrastructure/cache/sqlite"
	"tabscribe-api/pkg/config"
)

// openStore builds the key-value backend selected by sc. namespace keeps
// pages and settings apart when they share a database.
func openStore(sc config.StoreConfig, rc config.RedisConfig, namespace string, logger interfaces.Logger) (interfaces.KeyValueStore, func() error, error) {
	nop := func() error { return nil }

	switch sc.Type {
	case config.StoreMemory:
		logger.Info("Using memory store", map[string]interface{}{"namespace": namespace})
		return memory.NewMemoryCache(), nop, nil

	case config.StoreSQLite:
		kv, err := sqlite.NewSQLiteStore(sc.Path, namespace, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using SQLite store", map[string]interface{}{"namespace": namespace, "path": sc.Path})
		return kv, kv.Close, nil

	case config.StoreRedis:
		kv, err := redis.NewRedisCache(rc, namespace)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using Redis store", map[string]interface{}{"namespace": namespace, "address": rc.Address})
		return kv, kv.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store type %q", sc.Type)
}

// seedSettings fills unset settings from the environment and the prompts file
func seedSettings(ctx context.Context, cfg *config.Config, settings *store.SettingsStore, logger interfaces.Logger) {
	current, err := settings.Load(ctx)
	if err != nil {
		logger.Error("Failed to load settings", map[string]interface{}{"error": err.Error()})
		return
	}

	if !current.HasAPIKey() && cfg.Gemini.APIKey != "" {
		if err := settings.SaveAPIKey(ctx, cfg.Gemini.APIKey); err != nil {
			logger.Warn("Failed to seed API key", map[string]interface{}{"error": err.Error()})
		}
	}

	if current.APIEndpoint == "" && cfg.Gemini.Endpoint != "" {
		if err := settings.SaveEndpoint(ctx, cfg.Gemini.Endpoint); err != nil {
			logger.Warn("Failed to seed endpoint", map[string]interface{}{"error": err.Error()})
		}
	}

	if cfg.PromptsFile == "" {
		return
	}
	prompts, err := config.LoadPrompts(cfg.PromptsFile)
	if err != nil {
		logger.Warn("Failed to read prompts file", map[string]interface{}{"path": cfg.PromptsFile, "error": err.Error()})
		return
	}
	added, err := settings.SeedPrompts(ctx, prompts)
	if err != nil {
		logger.Warn("Failed to seed prompts", map[string]interface{}{"error": err.Error()})
		return
	}
	if added > 0 {
		logger.Info("Seeded custom prompts", map[string]interface{}{"count": added})
	}
}
