// Package store implements persistence for clients, variables, variable
// metadata, combo definitions, and opposing-counsel records using SQLite.
//
// The store is single-operator: one connection, last-write-wins. Derived
// variable values are never persisted; they are computed when a snapshot
// is built (see Snapshot).
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/chrisgosselin92/docgenautomation/internal/logging"
)

var (
	// ErrDuplicate signals a uniqueness violation on create; callers
	// disambiguate or report, they do not crash.
	ErrDuplicate = errors.New("store: duplicate record")
	// ErrNotFound signals a lookup miss for a required record.
	ErrNotFound = errors.New("store: not found")
)

// Store wraps the SQLite database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open initializes the SQLite database at the given path, creating the
// parent directory and schema as needed.
func Open(path string) (*Store, error) {
	log := logging.Get(logging.CategoryStore)

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		log.Debugf("failed to set busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		log.Debugf("failed to set journal_mode=WAL: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		log.Debugf("failed to enable foreign_keys: %v", err)
	}

	s := &Store{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	log.Debugf("store opened at %s", path)
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) initialize() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS clients (
			id INTEGER PRIMARY KEY,
			first_name TEXT,
			last_name TEXT,
			birthday TEXT,
			matterid TEXT UNIQUE,
			opposing_counsel_id INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS variables (
			id INTEGER PRIMARY KEY,
			entity_type TEXT NOT NULL,
			entity_id INTEGER NOT NULL,
			var_name TEXT NOT NULL,
			var_value TEXT,
			UNIQUE(entity_type, entity_id, var_name)
		)`,
		`CREATE TABLE IF NOT EXISTS variables_meta (
			id INTEGER PRIMARY KEY,
			var_name TEXT NOT NULL UNIQUE,
			var_type TEXT DEFAULT 'string',
			description TEXT,
			category TEXT DEFAULT 'General',
			display_order INTEGER DEFAULT 0,
			is_derived INTEGER DEFAULT 0,
			derived_expression TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS combo_variables (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			components TEXT NOT NULL,
			separator TEXT NOT NULL DEFAULT ' ',
			description TEXT,
			category TEXT DEFAULT 'Derived'
		)`,
		`CREATE TABLE IF NOT EXISTS opposing_counsel (
			id INTEGER PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT,
			service_email TEXT,
			address_street TEXT,
			address_city TEXT,
			address_state TEXT,
			address_zip TEXT,
			phone TEXT,
			fax TEXT,
			firm_name TEXT,
			bar_number TEXT,
			notes TEXT,
			UNIQUE(first_name, last_name, firm_name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_variables_entity
			ON variables(entity_type, entity_id)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
