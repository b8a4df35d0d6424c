package panel

import (
	"context"
	"sync"

	"tabscribe-api/core/domain"
)

type mockLogger struct{}

func (mockLogger) Debug(string, map[string]interface{}) {}
func (mockLogger) Info(string, map[string]interface{})  {}
func (mockLogger) Warn(string, map[string]interface{})  {}
func (mockLogger) Error(string, map[string]interface{}) {}

// mockTabs serves a fixed tab list and per-tab page text
type mockTabs struct {
	tabs        []domain.Tab
	text        map[string]string
	extractErr  error
	extractFunc func(ctx context.Context, tabID string) (string, error)

	mu        sync.Mutex
	activated []string
	extracted []string
}

func (m *mockTabs) ListTabs(ctx context.Context) ([]domain.Tab, error) {
	return m.tabs, nil
}

func (m *mockTabs) Activate(ctx context.Context, tabID string) error {
	m.mu.Lock()
	m.activated = append(m.activated, tabID)
	m.mu.Unlock()
	return nil
}

func (m *mockTabs) ExtractText(ctx context.Context, tabID string) (string, error) {
	m.mu.Lock()
	m.extracted = append(m.extracted, tabID)
	m.mu.Unlock()
	if m.extractFunc != nil {
		return m.extractFunc(ctx, tabID)
	}
	if m.extractErr != nil {
		return "", m.extractErr
	}
	return m.text[tabID], nil
}

// mockSettings is an in-memory SettingsStore
type mockSettings struct {
	settings domain.Settings
	loadErr  error
}

func (m *mockSettings) Load(ctx context.Context) (domain.Settings, error) {
	return m.settings, m.loadErr
}

func (m *mockSettings) SaveAPIKey(ctx context.Context, apiKey string) error {
	m.settings.APIKey = apiKey
	return nil
}

func (m *mockSettings) RemoveAPIKey(ctx context.Context) error {
	m.settings.APIKey = ""
	return nil
}

func (m *mockSettings) SaveEndpoint(ctx context.Context, endpoint string) error {
	m.settings.APIEndpoint = endpoint
	return nil
}

func (m *mockSettings) SaveCustomPrompts(ctx context.Context, prompts []domain.CustomPrompt) error {
	m.settings.CustomPrompts = prompts
	return nil
}

// mockConverter delegates to convertFunc
type mockConverter struct {
	convertFunc func(ctx context.Context, req domain.ConversionRequest) (string, error)
}

func (m *mockConverter) Convert(ctx context.Context, req domain.ConversionRequest) (string, error) {
	return m.convertFunc(ctx, req)
}

func (m *mockConverter) TestKey(ctx context.Context, apiKey, endpoint string) bool {
	return true
}

type mockMail struct {
	sent    []domain.Email
	sendErr error
}

func (m *mockMail) Send(ctx context.Context, email domain.Email, bearerToken string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, email)
	return nil
}

type mockIdentity struct {
	email     string
	err       error
	revoked   []string
	revokeErr error
}

func (m *mockIdentity) UserEmail(ctx context.Context, bearerToken string) (string, error) {
	return m.email, m.err
}

func (m *mockIdentity) Revoke(ctx context.Context, bearerToken string) error {
	m.revoked = append(m.revoked, bearerToken)
	return m.revokeErr
}

type mockClipboard struct {
	text string
	err  error
}

func (m *mockClipboard) WriteText(text string) error {
	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}
