package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/chrisgosselin92/docgenautomation/internal/types"
)

// CreateClient inserts a client row. A duplicate matter ID returns
// ErrDuplicate.
func (s *Store) CreateClient(c types.Client) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO clients (first_name, last_name, birthday, matterid)
		VALUES (?, ?, ?, ?)`,
		c.FirstName, c.LastName, c.Birthday, c.MatterID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("create client: %w", err)
	}
	return res.LastInsertId()
}

// GetClient returns one client, or ErrNotFound.
func (s *Store) GetClient(id int64) (types.Client, error) {
	var c types.Client
	var counselID sql.NullInt64
	err := s.db.QueryRow(`
		SELECT id, COALESCE(first_name, ''), COALESCE(last_name, ''),
		       COALESCE(birthday, ''), COALESCE(matterid, ''), opposing_counsel_id
		FROM clients WHERE id = ?`, id).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.Birthday, &c.MatterID, &counselID)
	if err == sql.ErrNoRows {
		return types.Client{}, ErrNotFound
	}
	if err != nil {
		return types.Client{}, fmt.Errorf("get client %d: %w", id, err)
	}
	c.OpposingCounselID = counselID.Int64
	return c, nil
}

// ListClients returns the roster ordered by id.
func (s *Store) ListClients() ([]types.Client, error) {
	rows, err := s.db.Query(`
		SELECT id, COALESCE(first_name, ''), COALESCE(last_name, ''),
		       COALESCE(birthday, ''), COALESCE(matterid, ''), opposing_counsel_id
		FROM clients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []types.Client
	for rows.Next() {
		var c types.Client
		var counselID sql.NullInt64
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Birthday,
			&c.MatterID, &counselID); err != nil {
			return nil, fmt.Errorf("list clients scan: %w", err)
		}
		c.OpposingCounselID = counselID.Int64
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// DeleteClient removes a client and all of its stored variable values.
func (s *Store) DeleteClient(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM variables WHERE entity_type = ? AND entity_id = ?`,
		types.EntityClient, id); err != nil {
		return fmt.Errorf("delete client %d variables: %w", id, err)
	}
	if _, err := tx.Exec(`DELETE FROM clients WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	return tx.Commit()
}

// AssignCounsel records a client's opposing-counsel assignment.
func (s *Store) AssignCounsel(clientID, counselID int64) error {
	_, err := s.db.Exec(`UPDATE clients SET opposing_counsel_id = ? WHERE id = ?`,
		counselID, clientID)
	if err != nil {
		return fmt.Errorf("assign counsel: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
