// Package cache stores fetched oEmbed payloads in a local SQLite database
// so repeated lookups of the same video skip the network.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"vembed/internal/media"
)

const schema = `
CREATE TABLE IF NOT EXISTS oembed (
	source_url TEXT PRIMARY KEY,
	platform   TEXT NOT NULL,
	payload    TEXT NOT NULL,
	fetched_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_oembed_fetched_at ON oembed(fetched_at);
`

// Cache is a SQLite-backed oEmbed store.
type Cache struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	// SQLite allows one writer; serialize through a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating cache: %w", err)
	}

	return &Cache{db: db, now: time.Now}, nil
}

// Close releases the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached payload for key if it is younger than ttl.
// A ttl of zero or less never expires.
func (c *Cache) Get(ctx context.Context, key string, ttl time.Duration) (*media.OEmbed, bool, error) {
	var payload string
	var fetchedAt int64

	err := c.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM oembed WHERE source_url = ?`, key,
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache: %w", err)
	}

	if ttl > 0 && c.now().Sub(time.Unix(fetchedAt, 0)) > ttl {
		return nil, false, nil
	}

	var data media.OEmbed
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, false, fmt.Errorf("decoding cached payload: %w", err)
	}
	return &data, true, nil
}

// Set stores data for key, replacing any previous entry.
func (c *Cache) Set(ctx context.Context, key string, platform media.Platform, data *media.OEmbed) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	_, err = c.db.ExecContext(ctx,
		`INSERT INTO oembed (source_url, platform, payload, fetched_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(source_url) DO UPDATE SET platform = excluded.platform, payload = excluded.payload, fetched_at = excluded.fetched_at`,
		key, platform.String(), string(payload), c.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// Prune deletes entries older than ttl and reports how many were removed.
func (c *Cache) Prune(ctx context.Context, ttl time.Duration) (int64, error) {
	cutoff := c.now().Add(-ttl).Unix()
	res, err := c.db.ExecContext(ctx, `DELETE FROM oembed WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	return res.RowsAffected()
}

// Clear deletes every entry and reports how many were removed.
func (c *Cache) Clear(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM oembed`)
	if err != nil {
		return 0, fmt.Errorf("clearing cache: %w", err)
	}
	return res.RowsAffected()
}

// Entry summarizes a cached payload.
type Entry struct {
	SourceURL string    `json:"source_url"`
	Platform  string    `json:"platform"`
	FetchedAt time.Time `json:"fetched_at"`
}

// List returns all entries, newest first.
func (c *Cache) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT source_url, platform, fetched_at FROM oembed ORDER BY fetched_at DESC, source_url`)
	if err != nil {
		return nil, fmt.Errorf("listing cache: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&e.SourceURL, &e.Platform, &ts); err != nil {
			return nil, fmt.Errorf("scanning cache row: %w", err)
		}
		e.FetchedAt = time.Unix(ts, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
