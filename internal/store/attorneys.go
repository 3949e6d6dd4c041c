package store

import (
	"database/sql"
	"fmt"

	"github.com/chrisgosselin92/docgenautomation/internal/types"
)

const attorneyColumns = `id, COALESCE(first_name, ''), COALESCE(last_name, ''),
	COALESCE(email, ''), COALESCE(service_email, ''),
	COALESCE(address_street, ''), COALESCE(address_city, ''),
	COALESCE(address_state, ''), COALESCE(address_zip, ''),
	COALESCE(phone, ''), COALESCE(fax, ''),
	COALESCE(firm_name, ''), COALESCE(bar_number, ''), COALESCE(notes, '')`

// CreateAttorney inserts an opposing-counsel record. A record with the
// same (first, last, firm) triple returns ErrDuplicate.
func (s *Store) CreateAttorney(a types.Attorney) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO opposing_counsel
			(first_name, last_name, email, service_email, address_street,
			 address_city, address_state, address_zip, phone, fax,
			 firm_name, bar_number, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.FirstName, a.LastName, a.Email, a.ServiceEmail, a.AddressStreet,
		a.AddressCity, a.AddressState, a.AddressZip, a.Phone, a.Fax,
		a.FirmName, a.BarNumber, a.Notes)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("create attorney: %w", err)
	}
	return res.LastInsertId()
}

// GetAttorney returns one record, or ErrNotFound.
func (s *Store) GetAttorney(id int64) (types.Attorney, error) {
	var a types.Attorney
	err := s.db.QueryRow(`SELECT `+attorneyColumns+` FROM opposing_counsel WHERE id = ?`, id).
		Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.ServiceEmail,
			&a.AddressStreet, &a.AddressCity, &a.AddressState, &a.AddressZip,
			&a.Phone, &a.Fax, &a.FirmName, &a.BarNumber, &a.Notes)
	if err == sql.ErrNoRows {
		return types.Attorney{}, ErrNotFound
	}
	if err != nil {
		return types.Attorney{}, fmt.Errorf("get attorney %d: %w", id, err)
	}
	return a, nil
}

// UpdateAttorney replaces every field of an existing record.
func (s *Store) UpdateAttorney(a types.Attorney) error {
	_, err := s.db.Exec(`
		UPDATE opposing_counsel SET
			first_name = ?, last_name = ?, email = ?, service_email = ?,
			address_street = ?, address_city = ?, address_state = ?,
			address_zip = ?, phone = ?, fax = ?, firm_name = ?,
			bar_number = ?, notes = ?
		WHERE id = ?`,
		a.FirstName, a.LastName, a.Email, a.ServiceEmail, a.AddressStreet,
		a.AddressCity, a.AddressState, a.AddressZip, a.Phone, a.Fax,
		a.FirmName, a.BarNumber, a.Notes, a.ID)
	if err != nil {
		return fmt.Errorf("update attorney %d: %w", a.ID, err)
	}
	return nil
}

// DeleteAttorney removes a record and clears any client assignments that
// referenced it.
func (s *Store) DeleteAttorney(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete attorney %d: %w", id, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE clients SET opposing_counsel_id = NULL
		WHERE opposing_counsel_id = ?`, id); err != nil {
		return fmt.Errorf("clear counsel assignments: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM opposing_counsel WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete attorney %d: %w", id, err)
	}
	return tx.Commit()
}

// ListAttorneys returns all records ordered by last then first name.
func (s *Store) ListAttorneys() ([]types.Attorney, error) {
	rows, err := s.db.Query(`SELECT ` + attorneyColumns + `
		FROM opposing_counsel ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("list attorneys: %w", err)
	}
	defer rows.Close()

	var attorneys []types.Attorney
	for rows.Next() {
		var a types.Attorney
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.ServiceEmail,
			&a.AddressStreet, &a.AddressCity, &a.AddressState, &a.AddressZip,
			&a.Phone, &a.Fax, &a.FirmName, &a.BarNumber, &a.Notes); err != nil {
			return nil, fmt.Errorf("list attorneys scan: %w", err)
		}
		attorneys = append(attorneys, a)
	}
	return attorneys, rows.Err()
}
