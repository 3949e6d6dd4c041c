package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chrisgosselin92/docgenautomation/internal/logging"
)

// MigrateLegacyValues rewrites variable values left behind by the old
// storage format, which wrapped strings in a serialized map like
// {"value": "actual text"}. Migration runs once, explicitly; reads never
// unwrap defensively. Returns the number of rows rewritten.
func (s *Store) MigrateLegacyValues() (int, error) {
	rows, err := s.db.Query(`SELECT id, COALESCE(var_value, '') FROM variables`)
	if err != nil {
		return 0, fmt.Errorf("migrate scan: %w", err)
	}

	type fix struct {
		id    int64
		value string
	}
	var fixes []fix
	for rows.Next() {
		var id int64
		var value string
		if err := rows.Scan(&id, &value); err != nil {
			rows.Close()
			return 0, fmt.Errorf("migrate scan row: %w", err)
		}
		if unwrapped, ok := unwrapLegacy(value); ok {
			fixes = append(fixes, fix{id: id, value: unwrapped})
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, err
	}
	rows.Close()

	if len(fixes) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("migrate begin: %w", err)
	}
	defer tx.Rollback()

	for _, f := range fixes {
		if _, err := tx.Exec(`UPDATE variables SET var_value = ? WHERE id = ?`, f.value, f.id); err != nil {
			return 0, fmt.Errorf("migrate update row %d: %w", f.id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	logging.Get(logging.CategoryStore).Infow("legacy values migrated", "rows", len(fixes))
	return len(fixes), nil
}

// unwrapLegacy recognizes both JSON ({"value": "x"}) and Python-repr
// ({'value': 'x'}) wrappers.
func unwrapLegacy(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return "", false
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(trimmed), &m); err == nil {
		if v, ok := m["value"].(string); ok {
			return v, true
		}
		return "", false
	}

	// Python dict repr with single quotes.
	jsonish := strings.ReplaceAll(trimmed, "'", `"`)
	if err := json.Unmarshal([]byte(jsonish), &m); err == nil {
		if v, ok := m["value"].(string); ok {
			return v, true
		}
	}
	return "", false
}
