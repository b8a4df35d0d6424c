// ABOUTME: Settings store for the API key, endpoint override and custom prompts
// ABOUTME: Lives in its own namespace and is never touched by page clearing

package store

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	coreerrors "tabscribe-api/core/errors"
	"tabscribe-api/core/domain"
	"tabscribe-api/core/interfaces"
)

// Settings keys
const (
	KeyAPIKey        = "geminiApiKey"
	KeyAPIEndpoint   = "llmApiEndpoint"
	KeyCustomPrompts = "customPrompts"

	// KeyPromptsSeeded is set once the seed file has been applied
	KeyPromptsSeeded = "customPromptsSeeded"
)

// SettingsStore implements interfaces.SettingsStore
type SettingsStore struct {
	kv     interfaces.KeyValueStore
	logger interfaces.Logger

	// serialises read-modify-write of the prompt list
	promptsMu sync.Mutex
}

// NewSettingsStore creates a settings store over kv
func NewSettingsStore(kv interfaces.KeyValueStore, logger interfaces.Logger) *SettingsStore {
	return &SettingsStore{kv: kv, logger: logger}
}

// Load reads every setting; missing values are left zero
func (s *SettingsStore) Load(ctx context.Context) (domain.Settings, error) {
	var settings domain.Settings

	if err := s.read(ctx, KeyAPIKey, &settings.APIKey); err != nil {
		return settings, err
	}
	if err := s.read(ctx, KeyAPIEndpoint, &settings.APIEndpoint); err != nil {
		return settings, err
	}
	if err := s.read(ctx, KeyCustomPrompts, &settings.CustomPrompts); err != nil {
		return settings, err
	}
	if settings.CustomPrompts == nil {
		settings.CustomPrompts = []domain.CustomPrompt{}
	}

	return settings, nil
}

// SaveAPIKey stores the key after the format check
func (s *SettingsStore) SaveAPIKey(ctx context.Context, apiKey string) error {
	if apiKey == "" {
		return &coreerrors.ValidationError{Field: "apiKey", Message: "API key is required"}
	}
	if !domain.ValidateAPIKeyFormat(apiKey) {
		return &coreerrors.ValidationError{
			Field:   "apiKey",
			Message: "API key must start with " + domain.APIKeyPrefix + " and be at least " + strconv.Itoa(domain.APIKeyMinLength) + " characters",
		}
	}
	return s.write(ctx, KeyAPIKey, apiKey)
}

// RemoveAPIKey deletes the stored key
func (s *SettingsStore) RemoveAPIKey(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyAPIKey); err != nil {
		return &coreerrors.PersistenceError{Op: "delete", Key: KeyAPIKey, Err: err}
	}
	return nil
}

// SaveEndpoint stores the endpoint override; an empty value restores the default
func (s *SettingsStore) SaveEndpoint(ctx context.Context, endpoint string) error {
	if endpoint == "" {
		if err := s.kv.Delete(ctx, KeyAPIEndpoint); err != nil {
			return &coreerrors.PersistenceError{Op: "delete", Key: KeyAPIEndpoint, Err: err}
		}
		return nil
	}
	return s.write(ctx, KeyAPIEndpoint, endpoint)
}

// SaveCustomPrompts replaces the prompt list
func (s *SettingsStore) SaveCustomPrompts(ctx context.Context, prompts []domain.CustomPrompt) error {
	for i, p := range prompts {
		if err := p.Validate(); err != nil {
			return &coreerrors.ValidationError{Field: "customPrompts[" + strconv.Itoa(i) + "]", Message: err.Error()}
		}
	}
	if prompts == nil {
		prompts = []domain.CustomPrompt{}
	}
	return s.write(ctx, KeyCustomPrompts, prompts)
}

// CustomPrompts returns the stored prompts in insertion order
func (s *SettingsStore) CustomPrompts(ctx context.Context) ([]domain.CustomPrompt, error) {
	prompts := []domain.CustomPrompt{}
	if err := s.read(ctx, KeyCustomPrompts, &prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

// AddPrompt appends a prompt and returns the new list
func (s *SettingsStore) AddPrompt(ctx context.Context, prompt domain.CustomPrompt) ([]domain.CustomPrompt, error) {
	return s.modifyPrompts(ctx, func(prompts []domain.CustomPrompt) ([]domain.CustomPrompt, error) {
		if err := prompt.Validate(); err != nil {
			return nil, &coreerrors.ValidationError{Field: "prompt", Message: err.Error()}
		}
		return append(prompts, prompt), nil
	})
}

// UpdatePrompt replaces the prompt at index
func (s *SettingsStore) UpdatePrompt(ctx context.Context, index int, prompt domain.CustomPrompt) ([]domain.CustomPrompt, error) {
	return s.modifyPrompts(ctx, func(prompts []domain.CustomPrompt) ([]domain.CustomPrompt, error) {
		if index < 0 || index >= len(prompts) {
			return nil, &coreerrors.NotFoundError{Resource: "prompt", ID: strconv.Itoa(index)}
		}
		if err := prompt.Validate(); err != nil {
			return nil, &coreerrors.ValidationError{Field: "prompt", Message: err.Error()}
		}
		prompts[index] = prompt
		return prompts, nil
	})
}

// DeletePrompt removes the prompt at index, keeping the order of the rest
func (s *SettingsStore) DeletePrompt(ctx context.Context, index int) ([]domain.CustomPrompt, error) {
	return s.modifyPrompts(ctx, func(prompts []domain.CustomPrompt) ([]domain.CustomPrompt, error) {
		if index < 0 || index >= len(prompts) {
			return nil, &coreerrors.NotFoundError{Resource: "prompt", ID: strconv.Itoa(index)}
		}
		return append(prompts[:index], prompts[index+1:]...), nil
	})
}

// SeedPrompts stores prompts once per settings namespace, and only when none
// exist yet. Invalid entries are skipped. Once applied, later calls are no-ops
// so deleting every prompt sticks across restarts.
func (s *SettingsStore) SeedPrompts(ctx context.Context, seed []domain.CustomPrompt) (int, error) {
	var seeded bool
	if err := s.read(ctx, KeyPromptsSeeded, &seeded); err != nil {
		return 0, err
	}
	if seeded {
		return 0, nil
	}

	var added int
	_, err := s.modifyPrompts(ctx, func(prompts []domain.CustomPrompt) ([]domain.CustomPrompt, error) {
		if len(prompts) > 0 {
			return prompts, nil
		}
		for _, p := range seed {
			if p.Validate() != nil {
				s.logger.Warn("Skipping incomplete seed prompt", map[string]interface{}{"name": p.Name})
				continue
			}
			prompts = append(prompts, p)
			added++
		}
		return prompts, nil
	})
	if err != nil {
		return 0, err
	}

	return added, s.write(ctx, KeyPromptsSeeded, true)
}

func (s *SettingsStore) modifyPrompts(ctx context.Context, fn func([]domain.CustomPrompt) ([]domain.CustomPrompt, error)) ([]domain.CustomPrompt, error) {
	s.promptsMu.Lock()
	defer s.promptsMu.Unlock()

	prompts, err := s.CustomPrompts(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := fn(prompts)
	if err != nil {
		return nil, err
	}

	if err := s.write(ctx, KeyCustomPrompts, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *SettingsStore) read(ctx context.Context, key string, v interface{}) error {
	data, err := s.kv.Get(ctx, key)
	if coreerrors.IsKeyNotFound(err) {
		return nil
	}
	if err != nil {
		return &coreerrors.PersistenceError{Op: "get", Key: key, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &coreerrors.PersistenceError{Op: "decode", Key: key, Err: err}
	}
	return nil
}

func (s *SettingsStore) write(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &coreerrors.PersistenceError{Op: "encode", Key: key, Err: err}
	}
	if err := s.kv.Set(ctx, key, data, 0); err != nil {
		return &coreerrors.PersistenceError{Op: "put", Key: key, Err: err}
	}
	return nil
}
