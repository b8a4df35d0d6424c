package handlers

import (
	"context"

	"tabscribe-api/core/domain"
	"tabscribe-api/core/panel"
)

type mockPanel struct {
	snapshot     panel.Snapshot
	refreshFunc  func(ctx context.Context) ([]domain.Tab, error)
	selectFunc   func(ctx context.Context, tabID string) (panel.Snapshot, error)
	convertFunc  func(ctx context.Context, promptIndex int) (panel.ConversionResult, error)
	toggleFunc   func() (panel.Snapshot, error)
	htmlFunc     func() (string, error)
	copyFunc     func() (string, error)
	emailFunc    func(ctx context.Context, token string) (domain.Email, error)
	signOutFunc  func(ctx context.Context, token string) error
	clearFunc    func(ctx context.Context) (panel.Snapshot, error)
	lastToken    string
	lastPrompt   int
}

func (m *mockPanel) Snapshot() panel.Snapshot { return m.snapshot }

func (m *mockPanel) RefreshTabs(ctx context.Context) ([]domain.Tab, error) {
	if m.refreshFunc != nil {
		return m.refreshFunc(ctx)
	}
	return nil, nil
}

func (m *mockPanel) SelectTab(ctx context.Context, tabID string) (panel.Snapshot, error) {
	if m.selectFunc != nil {
		return m.selectFunc(ctx, tabID)
	}
	return m.snapshot, nil
}

func (m *mockPanel) Convert(ctx context.Context, promptIndex int) (panel.ConversionResult, error) {
	m.lastPrompt = promptIndex
	if m.convertFunc != nil {
		return m.convertFunc(ctx, promptIndex)
	}
	return panel.ConversionResult{}, nil
}

func (m *mockPanel) ToggleView() (panel.Snapshot, error) {
	if m.toggleFunc != nil {
		return m.toggleFunc()
	}
	return m.snapshot, nil
}

func (m *mockPanel) HTML() (string, error) {
	if m.htmlFunc != nil {
		return m.htmlFunc()
	}
	return "", nil
}

func (m *mockPanel) Copy() (string, error) {
	if m.copyFunc != nil {
		return m.copyFunc()
	}
	return "", nil
}

func (m *mockPanel) Email(ctx context.Context, token string) (domain.Email, error) {
	m.lastToken = token
	if m.emailFunc != nil {
		return m.emailFunc(ctx, token)
	}
	return domain.Email{}, nil
}

func (m *mockPanel) SignOut(ctx context.Context, token string) error {
	m.lastToken = token
	if m.signOutFunc != nil {
		return m.signOutFunc(ctx, token)
	}
	return nil
}

func (m *mockPanel) ClearStorage(ctx context.Context) (panel.Snapshot, error) {
	if m.clearFunc != nil {
		return m.clearFunc(ctx)
	}
	return m.snapshot, nil
}

// memorySettings is an in-memory SettingsService
type memorySettings struct {
	settings domain.Settings
	saveErr  error
}

func (m *memorySettings) Load(ctx context.Context) (domain.Settings, error) {
	s := m.settings
	s.CustomPrompts = append([]domain.CustomPrompt{}, m.settings.CustomPrompts...)
	return s, nil
}

func (m *memorySettings) SaveAPIKey(ctx context.Context, apiKey string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.settings.APIKey = apiKey
	return nil
}

func (m *memorySettings) RemoveAPIKey(ctx context.Context) error {
	m.settings.APIKey = ""
	return nil
}

func (m *memorySettings) SaveEndpoint(ctx context.Context, endpoint string) error {
	m.settings.APIEndpoint = endpoint
	return nil
}

func (m *memorySettings) CustomPrompts(ctx context.Context) ([]domain.CustomPrompt, error) {
	return append([]domain.CustomPrompt{}, m.settings.CustomPrompts...), nil
}

func (m *memorySettings) AddPrompt(ctx context.Context, p domain.CustomPrompt) ([]domain.CustomPrompt, error) {
	m.settings.CustomPrompts = append(m.settings.CustomPrompts, p)
	return m.CustomPrompts(ctx)
}

func (m *memorySettings) UpdatePrompt(ctx context.Context, index int, p domain.CustomPrompt) ([]domain.CustomPrompt, error) {
	if index >= len(m.settings.CustomPrompts) {
		return nil, errPromptNotFound(index)
	}
	m.settings.CustomPrompts[index] = p
	return m.CustomPrompts(ctx)
}

func (m *memorySettings) DeletePrompt(ctx context.Context, index int) ([]domain.CustomPrompt, error) {
	if index >= len(m.settings.CustomPrompts) {
		return nil, errPromptNotFound(index)
	}
	m.settings.CustomPrompts = append(m.settings.CustomPrompts[:index], m.settings.CustomPrompts[index+1:]...)
	return m.CustomPrompts(ctx)
}

type mockTester struct {
	valid    bool
	lastKey  string
	lastEndp string
}

func (m *mockTester) TestKey(ctx context.Context, apiKey, endpoint string) bool {
	m.lastKey, m.lastEndp = apiKey, endpoint
	return m.valid
}
