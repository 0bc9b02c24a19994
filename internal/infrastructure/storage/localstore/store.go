// Package localstore is the offline fallback store. State is kept as one
// JSON document per collection inside a local sqlite file, so the server
// stays usable without a reachable PostgreSQL.
//
// A process-wide mutex serializes all mutations; with a single writer the
// stock invariants hold without conditional updates.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"stylos/internal/seed"
	"stylos/pkg/logger"
)

// Collection names.
const (
	colUsers     = "users"
	colClients   = "clients"
	colProducts  = "products"
	colOrders    = "orders"
	colMovements = "movements"
	colExpenses  = "expenses"
)

// Store is a sqlite-backed document store.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// The document model has exactly one writer at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY,
			doc  TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create collections table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database file is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Seed loads the demo dataset when the store is empty. Safe to call on
// every start; an already-seeded store is left untouched.
func (s *Store) Seed(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM collections WHERE name = ?", colProducts).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check seed state: %w", err)
	}
	if exists > 0 {
		return nil
	}

	ds, err := seed.Demo()
	if err != nil {
		return fmt.Errorf("build demo dataset: %w", err)
	}

	for name, doc := range map[string]any{
		colUsers:     ds.Users,
		colClients:   ds.Clients,
		colProducts:  ds.Products,
		colOrders:    ds.Orders,
		colMovements: []struct{}{},
		colExpenses:  ds.Expenses,
	} {
		if err := s.save(ctx, name, doc); err != nil {
			return err
		}
	}

	logger.Info(ctx, "local store seeded with demo dataset",
		"users", len(ds.Users),
		"products", len(ds.Products),
		"clients", len(ds.Clients),
	)
	return nil
}

// load reads a collection document into v. Returns false when the
// collection does not exist yet.
func (s *Store) load(ctx context.Context, name string, v any) (bool, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		"SELECT doc FROM collections WHERE name = ?", name).Scan(&doc)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load collection %s: %w", name, err)
	}

	if err := json.Unmarshal([]byte(doc), v); err != nil {
		return false, fmt.Errorf("decode collection %s: %w", name, err)
	}
	return true, nil
}

// save writes a collection document.
func (s *Store) save(ctx context.Context, name string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", name, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO collections (name, doc) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET doc = excluded.doc
	`, name, string(doc))
	if err != nil {
		return fmt.Errorf("save collection %s: %w", name, err)
	}
	return nil
}
