package sqlite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLogger captures log calls for testing
type MockLogger struct {
	warnings []struct {
		msg    string
		fields map[string]interface{}
	}
}

func (ml *MockLogger) Warn(msg string, fields map[string]interface{}) {
	ml.warnings = append(ml.warnings, struct {
		msg    string
		fields map[string]interface{}
	}{msg: msg, fields: fields})
}

func TestQueryBuilder_Select(t *testing.T) {
	query, _, err := NewQueryBuilder().Select("value", "expiry").From("pages").Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT value, expiry FROM pages", query)

	_, _, err = NewQueryBuilder().Select("value; DROP TABLE pages;").From("pages").Build()
	assert.Error(t, err)
}

func TestQueryBuilder_Where(t *testing.T) {
	tests := []struct {
		name     string
		column   string
		operator string
		expected string
		wantErr  bool
	}{
		{name: "valid where clause", column: "key", operator: "=", expected: "DELETE FROM pages WHERE key = ?"},
		{name: "operator not allowed", column: "key", operator: "LIKE", wantErr: true},
		{name: "injection in column name", column: "key; DROP TABLE pages;", operator: "=", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, params, err := NewQueryBuilder().Delete("pages").Where(tt.column, tt.operator, "x").Build()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, query)
			assert.Len(t, params, 1)
		})
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
		errMsg  string
	}{
		{name: "url key", key: "https://example.com/a?b=c#d"},
		{name: "tab key", key: "tab:42"},
		{name: "empty key", key: "", wantErr: true, errMsg: "empty"},
		{name: "key too long", key: strings.Repeat("a", 2049), wantErr: true, errMsg: "too long"},
		{name: "key with null byte", key: "key\x00null", wantErr: true, errMsg: "null bytes"},
		{name: "injection attempt is allowed", key: "key'; DROP TABLE pages; --"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key, nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateKey_LogsSuspiciousPatterns(t *testing.T) {
	logger := &MockLogger{}

	require.NoError(t, ValidateKey(strings.Repeat("a", 100)+"';--", logger))

	require.NotEmpty(t, logger.warnings)
	preview := logger.warnings[0].fields["key_preview"].(string)
	assert.Len(t, preview, 53)
	assert.True(t, strings.HasSuffix(preview, "..."))
}

func TestValidateValue(t *testing.T) {
	assert.NoError(t, ValidateValue([]byte(`{"rawText":""}`)))
	assert.ErrorContains(t, ValidateValue(nil), "empty")
	assert.ErrorContains(t, ValidateValue(make([]byte, 4*1024*1024+1)), "too large")
}

func TestBuildNamespaceQueries(t *testing.T) {
	q, err := buildNamespaceQueries("pages")
	require.NoError(t, err)

	assert.Equal(t, "SELECT value FROM pages WHERE key = ? AND expiry > ?", q.get)
	assert.Equal(t, "INSERT OR REPLACE INTO pages (key, value, expiry) VALUES (?, ?, ?)", q.set)
	assert.Equal(t, "DELETE FROM pages WHERE key = ?", q.del)
	assert.Equal(t, "SELECT key FROM pages WHERE expiry > ?", q.keys)
	assert.Equal(t, "DELETE FROM pages", q.clear)
	assert.Equal(t, "DELETE FROM pages WHERE expiry <= ?", q.cleanup)
	assert.Contains(t, q.schema, "CREATE TABLE IF NOT EXISTS pages")
}

func TestBuildNamespaceQueries_RejectsBadTable(t *testing.T) {
	for _, name := range []string{"", "table name", "pages; DROP TABLE x;", strings.Repeat("a", 65)} {
		_, err := buildNamespaceQueries(name)
		assert.Error(t, err, name)
	}
}
