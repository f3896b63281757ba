// Package data persists the feature catalog. Only raw features are stored;
// geohash keys are recomputed when the catalog is re-indexed at startup.
package data

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"geoframe/spatial"
)

// Store is the sqlite-backed feature catalog.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the catalog at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("data: open %s: %w", path, err)
	}

	schema := `CREATE TABLE IF NOT EXISTS features (
		id      TEXT PRIMARY KEY,
		name    TEXT NOT NULL DEFAULT '',
		x       REAL NOT NULL,
		y       REAL NOT NULL,
		width   REAL NOT NULL,
		height  REAL NOT NULL,
		created INTEGER NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("data: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts one feature.
func (s *Store) Save(f *spatial.Feature) error {
	created := f.Created
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO features (id, name, x, y, width, height, created)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name, x = excluded.x, y = excluded.y,
		   width = excluded.width, height = excluded.height`,
		f.ID, f.Name, f.X, f.Y, f.Width, f.Height, created.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("data: save %s: %w", f.ID, err)
	}
	return nil
}

// List returns every feature in insertion order.
func (s *Store) List() ([]*spatial.Feature, error) {
	rows, err := s.db.Query(
		`SELECT id, name, x, y, width, height, created FROM features ORDER BY created, id`)
	if err != nil {
		return nil, fmt.Errorf("data: list: %w", err)
	}
	defer rows.Close()

	var features []*spatial.Feature
	for rows.Next() {
		var f spatial.Feature
		var created int64
		if err := rows.Scan(&f.ID, &f.Name, &f.X, &f.Y, &f.Width, &f.Height, &created); err != nil {
			return nil, fmt.Errorf("data: scan: %w", err)
		}
		f.Created = time.Unix(0, created)
		features = append(features, &f)
	}
	return features, rows.Err()
}

// Count returns the number of stored features.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM features`).Scan(&n)
	return n, err
}
