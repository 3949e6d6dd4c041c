package store

import (
	"database/sql"
	"fmt"

	"github.com/chrisgosselin92/docgenautomation/internal/expr"
	"github.com/chrisgosselin92/docgenautomation/internal/logging"
	"github.com/chrisgosselin92/docgenautomation/internal/types"
)

// SetValue upserts one value for (entityType, entityID, name). Values are
// always stored as plain strings.
func (s *Store) SetValue(entityType string, entityID int64, name, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO variables (entity_type, entity_id, var_name, var_value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(entity_type, entity_id, var_name)
		DO UPDATE SET var_value = excluded.var_value`,
		entityType, entityID, name, value)
	if err != nil {
		return fmt.Errorf("set value %q: %w", name, err)
	}
	return nil
}

// GetValue returns one stored value, or "" when absent.
func (s *Store) GetValue(entityType string, entityID int64, name string) (string, error) {
	var v sql.NullString
	err := s.db.QueryRow(`
		SELECT var_value FROM variables
		WHERE entity_type = ? AND entity_id = ? AND var_name = ?`,
		entityType, entityID, name).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get value %q: %w", name, err)
	}
	return v.String, nil
}

// RawValues returns the stored (non-derived) values for one entity.
func (s *Store) RawValues(entityType string, entityID int64) (map[string]string, error) {
	rows, err := s.db.Query(`
		SELECT var_name, COALESCE(var_value, '')
		FROM variables
		WHERE entity_type = ? AND entity_id = ?`,
		entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("raw values: %w", err)
	}
	defer rows.Close()

	values := map[string]string{}
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("raw values scan: %w", err)
		}
		values[name] = value
	}
	return values, rows.Err()
}

// Snapshot returns the flattened variable map for one entity: stored
// values first, then each derived meta evaluated once against the working
// map and merged in. Evaluation runs in metadata order (category,
// display_order, name); a derived variable referencing another derived
// variable sees it only if it was evaluated earlier in that order.
func (s *Store) Snapshot(entityType string, entityID int64) (map[string]string, error) {
	values, err := s.RawValues(entityType, entityID)
	if err != nil {
		return nil, err
	}

	metas, err := s.ListMeta()
	if err != nil {
		return nil, err
	}
	for _, m := range metas {
		if !m.IsDerived || m.DerivedExpression == "" {
			continue
		}
		values[m.VarName] = expr.Evaluate(m.DerivedExpression, values)
	}

	logging.Get(logging.CategoryStore).Debugw("snapshot built",
		"entity_type", entityType, "entity_id", entityID, "vars", len(values))
	return values, nil
}

// VariableExists reports whether metadata exists for a name.
func (s *Store) VariableExists(name string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM variables_meta WHERE var_name = ?`, name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("variable exists %q: %w", name, err)
	}
	return true, nil
}

// SetMeta upserts variable metadata.
func (s *Store) SetMeta(m types.VariableMeta) error {
	if m.VarType == "" {
		m.VarType = "string"
	}
	if m.Category == "" {
		m.Category = "General"
	}
	isDerived := 0
	if m.IsDerived {
		isDerived = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO variables_meta
			(var_name, var_type, description, category, display_order, is_derived, derived_expression)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(var_name) DO UPDATE SET
			var_type = excluded.var_type,
			description = excluded.description,
			category = excluded.category,
			display_order = excluded.display_order,
			is_derived = excluded.is_derived,
			derived_expression = excluded.derived_expression`,
		m.VarName, m.VarType, m.Description, m.Category, m.DisplayOrder, isDerived, m.DerivedExpression)
	if err != nil {
		return fmt.Errorf("set meta %q: %w", m.VarName, err)
	}
	return nil
}

// GetMeta returns metadata for one name, or ErrNotFound.
func (s *Store) GetMeta(name string) (types.VariableMeta, error) {
	var m types.VariableMeta
	var isDerived int
	var desc, derivedExpr sql.NullString
	err := s.db.QueryRow(`
		SELECT var_name, var_type, COALESCE(description, ''), category,
		       display_order, is_derived, COALESCE(derived_expression, '')
		FROM variables_meta WHERE var_name = ?`, name).
		Scan(&m.VarName, &m.VarType, &desc, &m.Category, &m.DisplayOrder, &isDerived, &derivedExpr)
	if err == sql.ErrNoRows {
		return types.VariableMeta{}, ErrNotFound
	}
	if err != nil {
		return types.VariableMeta{}, fmt.Errorf("get meta %q: %w", name, err)
	}
	m.Description = desc.String
	m.DerivedExpression = derivedExpr.String
	m.IsDerived = isDerived != 0
	return m, nil
}

// ListMeta returns all variable metadata ordered by category, display
// order, then name.
func (s *Store) ListMeta() ([]types.VariableMeta, error) {
	rows, err := s.db.Query(`
		SELECT var_name, var_type, COALESCE(description, ''), category,
		       display_order, is_derived, COALESCE(derived_expression, '')
		FROM variables_meta
		ORDER BY category, display_order, var_name`)
	if err != nil {
		return nil, fmt.Errorf("list meta: %w", err)
	}
	defer rows.Close()

	var metas []types.VariableMeta
	for rows.Next() {
		var m types.VariableMeta
		var isDerived int
		if err := rows.Scan(&m.VarName, &m.VarType, &m.Description, &m.Category,
			&m.DisplayOrder, &isDerived, &m.DerivedExpression); err != nil {
			return nil, fmt.Errorf("list meta scan: %w", err)
		}
		m.IsDerived = isDerived != 0
		metas = append(metas, m)
	}
	return metas, rows.Err()
}

// DeleteMeta removes metadata for a name and cascades to every stored
// value under that name.
func (s *Store) DeleteMeta(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete meta %q: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM variables WHERE var_name = ?`, name); err != nil {
		return fmt.Errorf("delete values for %q: %w", name, err)
	}
	if _, err := tx.Exec(`DELETE FROM variables_meta WHERE var_name = ?`, name); err != nil {
		return fmt.Errorf("delete meta %q: %w", name, err)
	}
	return tx.Commit()
}
