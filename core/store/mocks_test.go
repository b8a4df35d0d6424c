package store

import (
	"context"
	"time"
)

// mockLogger records warnings
type mockLogger struct {
	warns []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.warns = append(m.warns, msg) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}

// mockKV is a KeyValueStore whose methods can be overridden per test
type mockKV struct {
	getFunc    func(ctx context.Context, key string) ([]byte, error)
	setFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	deleteFunc func(ctx context.Context, key string) error
	keysFunc   func(ctx context.Context, prefix string) ([]string, error)
	clearFunc  func(ctx context.Context) error
}

func (m *mockKV) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockKV) Delete(ctx context.Context, key string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, key)
	}
	return nil
}

func (m *mockKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	if m.keysFunc != nil {
		return m.keysFunc(ctx, prefix)
	}
	return nil, nil
}

func (m *mockKV) Clear(ctx context.Context) error {
	if m.clearFunc != nil {
		return m.clearFunc(ctx)
	}
	return nil
}
