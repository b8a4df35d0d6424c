// ABOUTME: SQLite-backed key-value store for page records and settings
// ABOUTME: Each namespace is its own table so clearing one never touches another

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	coreerrors "tabscribe-api/core/errors"
)

// neverExpires marks entries written without a TTL
const neverExpires = math.MaxInt64

// Client implements interfaces.KeyValueStore using SQLite
type Client struct {
	db        *sql.DB
	filePath  string
	namespace string
	queries   *namespaceQueries
	logger    Logger

	stop     chan struct{}
	stopOnce sync.Once
}

// NewSQLiteStore opens (or creates) filePath and prepares the namespace table.
// logger may be nil.
func NewSQLiteStore(filePath, namespace string, logger Logger) (*Client, error) {
	if filePath == "" {
		filePath = "tabscribe.db"
	}

	queries, err := buildNamespaceQueries(namespace)
	if err != nil {
		return nil, fmt.Errorf("invalid namespace: %w", err)
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	if _, err := db.Exec(queries.schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	client := &Client{
		db:        db,
		filePath:  filePath,
		namespace: namespace,
		queries:   queries,
		logger:    logger,
		stop:      make(chan struct{}),
	}

	go client.cleanupRoutine()

	return client, nil
}

// Get retrieves a value, returning ErrKeyNotFound for missing or expired keys
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key, c.logger); err != nil {
		return nil, err
	}

	var value []byte
	err := c.db.QueryRowContext(ctx, c.queries.get, key, time.Now().Unix()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", coreerrors.ErrKeyNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get value: %w", err)
	}

	return value, nil
}

// Set stores a value; ttl <= 0 keeps it until deleted
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ValidateKey(key, c.logger); err != nil {
		return err
	}
	if err := ValidateValue(value); err != nil {
		return err
	}

	var expiry int64 = neverExpires
	if ttl > 0 {
		expiry = time.Now().Add(ttl).Unix()
	}

	if _, err := c.db.ExecContext(ctx, c.queries.set, key, value, expiry); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}

	return nil
}

// Delete removes a key; deleting a missing key is not an error
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key, c.logger); err != nil {
		return err
	}

	if _, err := c.db.ExecContext(ctx, c.queries.del, key); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}

	return nil
}

// Keys lists live keys with the given prefix, sorted
func (c *Client) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, c.queries.keys, time.Now().Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		// LIKE would treat % and _ in URLs as wildcards
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	sort.Strings(keys)
	return keys, nil
}

// Clear removes every entry in this namespace
func (c *Client) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, c.queries.clear); err != nil {
		return fmt.Errorf("failed to clear %s: %w", c.namespace, err)
	}
	return nil
}

// Close stops the cleanup routine and closes the database
func (c *Client) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	return c.db.Close()
}

// cleanupRoutine removes expired entries periodically
func (c *Client) cleanupRoutine() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			_, _ = c.db.ExecContext(ctx, c.queries.cleanup, time.Now().Unix())
			cancel()
		}
	}
}
