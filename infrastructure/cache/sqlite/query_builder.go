// ABOUTME: Safe SQL query builder for the SQLite key-value store
// ABOUTME: Validates namespace table names and enforces parameterized queries

package sqlite

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Logger is the subset of interfaces.Logger the store needs
type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

// QueryBuilder provides a safe way to build SQL queries with automatic parameterization
type QueryBuilder struct {
	query  string
	params []interface{}
	err    error
}

var (
	safeNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

	// Keys are page URLs, so allow long ones
	maxKeyLength   = 2048
	maxValueLength = 4 * 1024 * 1024
)

// NewQueryBuilder creates a new query builder instance
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		params: make([]interface{}, 0),
	}
}

// validateName validates table/column names to prevent SQL injection
func validateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}

	if !safeNamePattern.MatchString(name) {
		return fmt.Errorf("invalid name: %s (only alphanumeric and underscore allowed)", name)
	}

	if len(name) > 64 {
		return fmt.Errorf("name too long: %s (max 64 characters)", name)
	}

	return nil
}

// fail records the first validation error; Build reports it
func (qb *QueryBuilder) fail(err error) *QueryBuilder {
	if qb.err == nil {
		qb.err = err
	}
	return qb
}

// Select builds a SELECT query
func (qb *QueryBuilder) Select(columns ...string) *QueryBuilder {
	for _, col := range columns {
		if err := validateName(col); err != nil {
			return qb.fail(err)
		}
	}

	if len(columns) == 0 {
		qb.query = "SELECT * "
	} else {
		qb.query = "SELECT " + strings.Join(columns, ", ") + " "
	}
	return qb
}

// From adds FROM clause
func (qb *QueryBuilder) From(table string) *QueryBuilder {
	if err := validateName(table); err != nil {
		return qb.fail(err)
	}

	qb.query += "FROM " + table + " "
	return qb
}

// Where adds a parameterized condition; conditions are joined with AND
func (qb *QueryBuilder) Where(column string, operator string, value interface{}) *QueryBuilder {
	if err := validateName(column); err != nil {
		return qb.fail(err)
	}

	allowedOperators := map[string]bool{
		"=":  true,
		"!=": true,
		">":  true,
		"<":  true,
		">=": true,
		"<=": true,
	}
	if !allowedOperators[operator] {
		return qb.fail(fmt.Errorf("operator not allowed: %s", operator))
	}

	if strings.Contains(qb.query, "WHERE") {
		qb.query += "AND "
	} else {
		qb.query += "WHERE "
	}

	qb.query += column + " " + operator + " ? "
	qb.params = append(qb.params, value)
	return qb
}

// InsertOrReplace builds an INSERT OR REPLACE query
func (qb *QueryBuilder) InsertOrReplace(table string) *QueryBuilder {
	if err := validateName(table); err != nil {
		return qb.fail(err)
	}

	qb.query = "INSERT OR REPLACE INTO " + table + " "
	return qb
}

// Values adds VALUES clause
func (qb *QueryBuilder) Values(columns []string, values []interface{}) *QueryBuilder {
	if len(columns) != len(values) {
		return qb.fail(errors.New("column and value counts differ"))
	}

	for _, col := range columns {
		if err := validateName(col); err != nil {
			return qb.fail(err)
		}
	}

	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	qb.query += "(" + strings.Join(columns, ", ") + ") VALUES (" + strings.Join(placeholders, ", ") + ")"
	qb.params = append(qb.params, values...)
	return qb
}

// Delete builds a DELETE query
func (qb *QueryBuilder) Delete(table string) *QueryBuilder {
	if err := validateName(table); err != nil {
		return qb.fail(err)
	}

	qb.query = "DELETE FROM " + table + " "
	return qb
}

// Build returns the built query and parameters, or the first validation error
func (qb *QueryBuilder) Build() (string, []interface{}, error) {
	if qb.err != nil {
		return "", nil, qb.err
	}
	return strings.TrimSpace(qb.query), qb.params, nil
}

// ValidateKey validates a key and warns about patterns that only parameterization makes safe
func ValidateKey(key string, logger Logger) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	if len(key) > maxKeyLength {
		return fmt.Errorf("key too long: max %d characters", maxKeyLength)
	}

	if strings.Contains(key, "\x00") {
		return errors.New("key cannot contain null bytes")
	}

	suspiciousPatterns := []string{"--", "/*", "*/", ";", "'", "\"", "\\"}
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(key, pattern) && logger != nil {
			logger.Warn("Suspicious pattern detected in store key", map[string]interface{}{
				"pattern":     pattern,
				"key_length":  len(key),
				"key_preview": truncateKey(key),
			})
		}
	}

	return nil
}

// truncateKey returns a safe preview of the key for logging
func truncateKey(key string) string {
	const maxPreview = 50
	if len(key) <= maxPreview {
		return key
	}
	return key[:maxPreview] + "..."
}

// ValidateValue validates a stored value
func ValidateValue(value []byte) error {
	if len(value) == 0 {
		return errors.New("value cannot be empty")
	}

	if len(value) > maxValueLength {
		return fmt.Errorf("value too large: max %d bytes", maxValueLength)
	}

	return nil
}

// namespaceQueries holds the prebuilt statements for one namespace table
type namespaceQueries struct {
	schema  string
	get     string
	set     string
	del     string
	keys    string
	clear   string
	cleanup string
}

// buildNamespaceQueries prepares every statement for table
func buildNamespaceQueries(table string) (*namespaceQueries, error) {
	if err := validateName(table); err != nil {
		return nil, err
	}

	q := &namespaceQueries{
		schema: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %[1]s (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			expiry INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%[1]s_expiry ON %[1]s(expiry);`, table),
	}

	builders := []struct {
		target *string
		qb     *QueryBuilder
	}{
		{&q.get, NewQueryBuilder().Select("value").From(table).Where("key", "=", nil).Where("expiry", ">", nil)},
		{&q.set, NewQueryBuilder().InsertOrReplace(table).Values([]string{"key", "value", "expiry"}, []interface{}{nil, nil, nil})},
		{&q.del, NewQueryBuilder().Delete(table).Where("key", "=", nil)},
		{&q.keys, NewQueryBuilder().Select("key").From(table).Where("expiry", ">", nil)},
		{&q.clear, NewQueryBuilder().Delete(table)},
		{&q.cleanup, NewQueryBuilder().Delete(table).Where("expiry", "<=", nil)},
	}
	for _, b := range builders {
		query, _, err := b.qb.Build()
		if err != nil {
			return nil, err
		}
		*b.target = query
	}

	return q, nil
}
