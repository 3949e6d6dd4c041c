package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/chrisgosselin92/docgenautomation/internal/types"
)

// UpsertCombo creates or replaces a combo-variable definition.
func (s *Store) UpsertCombo(c types.ComboVariable) error {
	if c.Separator == "" {
		c.Separator = " "
	}
	if c.Category == "" {
		c.Category = "Derived"
	}
	components, err := json.Marshal(c.Components)
	if err != nil {
		return fmt.Errorf("encode combo components: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO combo_variables (name, components, separator, description, category)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			components = excluded.components,
			separator = excluded.separator,
			description = excluded.description,
			category = excluded.category`,
		c.Name, string(components), c.Separator, c.Description, c.Category)
	if err != nil {
		return fmt.Errorf("upsert combo %q: %w", c.Name, err)
	}
	return nil
}

// GetCombo returns one definition, or ErrNotFound.
func (s *Store) GetCombo(name string) (types.ComboVariable, error) {
	var c types.ComboVariable
	var components string
	err := s.db.QueryRow(`
		SELECT name, components, separator, COALESCE(description, ''), category
		FROM combo_variables WHERE name = ?`, name).
		Scan(&c.Name, &components, &c.Separator, &c.Description, &c.Category)
	if err == sql.ErrNoRows {
		return types.ComboVariable{}, ErrNotFound
	}
	if err != nil {
		return types.ComboVariable{}, fmt.Errorf("get combo %q: %w", name, err)
	}
	if err := json.Unmarshal([]byte(components), &c.Components); err != nil {
		return types.ComboVariable{}, fmt.Errorf("decode combo %q components: %w", name, err)
	}
	return c, nil
}

// ListCombos returns all definitions ordered by name.
func (s *Store) ListCombos() ([]types.ComboVariable, error) {
	rows, err := s.db.Query(`
		SELECT name, components, separator, COALESCE(description, ''), category
		FROM combo_variables ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list combos: %w", err)
	}
	defer rows.Close()

	var combos []types.ComboVariable
	for rows.Next() {
		var c types.ComboVariable
		var components string
		if err := rows.Scan(&c.Name, &components, &c.Separator, &c.Description, &c.Category); err != nil {
			return nil, fmt.Errorf("list combos scan: %w", err)
		}
		if err := json.Unmarshal([]byte(components), &c.Components); err != nil {
			return nil, fmt.Errorf("decode combo %q components: %w", c.Name, err)
		}
		combos = append(combos, c)
	}
	return combos, rows.Err()
}

// DeleteCombo removes one definition.
func (s *Store) DeleteCombo(name string) error {
	if _, err := s.db.Exec(`DELETE FROM combo_variables WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete combo %q: %w", name, err)
	}
	return nil
}
