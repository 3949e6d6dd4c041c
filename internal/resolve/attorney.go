package resolve

import (
	"errors"
	"fmt"

	"github.com/chrisgosselin92/docgenautomation/internal/token"
	"github.com/chrisgosselin92/docgenautomation/internal/types"
)

// attorneyVars builds the fixed lowercase variable map from an attorney
// record. The names are what templates reference inside (( )).
func attorneyVars(a types.Attorney) map[string]string {
	return map[string]string{
		"plaintiffattorneyfirstname":     a.FirstName,
		"plaintiffattorneylastname":      a.LastName,
		"plaintiffattorneyfullname":      a.FullName(),
		"plaintiffattorneyemail":         a.Email,
		"plaintiffattorneyeserviceemail": a.ServiceEmail,
		"plaintifffirmname":              a.FirmName,
		"plaintifffirmaddress":           a.AddressStreet,
		"plaintifffirmcity":              a.AddressCity,
		"plaintifffirmst":                a.AddressState,
		"plaintifffirmzip":               a.AddressZip,
		"plaintiffbusphone":              a.Phone,
		"plaintifffaxphone":              a.Fax,
		"plaintiffbarnumber":             a.BarNumber,
		"plaintiffnotes":                 a.Notes,
	}
}

// applyAttorneyField writes a value back to the record field behind a
// mapped variable name. Names outside the mapping return false; the
// caller appends those to the notes field.
func applyAttorneyField(a *types.Attorney, name, value string) bool {
	switch name {
	case "plaintiffattorneyfirstname":
		a.FirstName = value
	case "plaintiffattorneylastname":
		a.LastName = value
	case "plaintiffattorneyemail":
		a.Email = value
	case "plaintiffattorneyeserviceemail":
		a.ServiceEmail = value
	case "plaintifffirmname":
		a.FirmName = value
	case "plaintifffirmaddress":
		a.AddressStreet = value
	case "plaintifffirmcity":
		a.AddressCity = value
	case "plaintifffirmst":
		a.AddressState = value
	case "plaintifffirmzip":
		a.AddressZip = value
	case "plaintiffbusphone":
		a.Phone = value
	case "plaintifffaxphone":
		a.Fax = value
	case "plaintiffbarnumber":
		a.BarNumber = value
	case "plaintiffnotes":
		a.Notes = value
	default:
		return false
	}
	return true
}

// attorneyPass resolves (( )) placeholders from the client's assigned
// opposing-counsel record. Missing fields go through a three-way prompt:
// supply and persist, leave the literal placeholder, or cancel the
// document. Unmapped names persist into the notes field as "name: value".
func (r *Resolver) attorneyPass(doc Document) error {
	stream := token.Scan(doc.Text())
	names := stream.NamesOf(token.Attorney)
	if len(names) == 0 {
		return nil
	}

	att, err := r.ensureAttorney()
	if err != nil {
		return err
	}
	vars := attorneyVars(att)

	updated := false
	for _, name := range names {
		if vars[name] != "" {
			continue
		}
		choice, err := r.prompter.Select(
			fmt.Sprintf("Attorney field ((%s)) is empty", name),
			[]string{
				"Enter a value and save it to the attorney record",
				"Leave the placeholder in the document",
				"Cancel this document",
			})
		if errors.Is(err, types.ErrCancelled) || (err == nil && choice == 2) {
			return types.ErrCancelled
		}
		if err != nil {
			return err
		}
		if choice == 1 {
			continue
		}

		value, err := r.prompter.Input("Attorney field", fmt.Sprintf("Value for ((%s))", name))
		if err != nil {
			return err
		}
		if value == "" {
			continue
		}
		if !applyAttorneyField(&att, name, value) {
			if att.Notes != "" {
				att.Notes += "\n"
			}
			att.Notes += name + ": " + value
		}
		vars[name] = value
		updated = true
	}
	if updated {
		if err := r.store.UpdateAttorney(att); err != nil {
			return fmt.Errorf("save attorney fields: %w", err)
		}
		r.log.Infow("attorney record updated", "attorney_id", att.ID)
	}

	repl := map[string]string{}
	for _, tok := range stream.Tokens {
		if tok.Kind != token.Attorney {
			continue
		}
		if v := vars[tok.Name]; v != "" {
			repl[tok.Raw] = v
		}
	}
	doc.Replace(repl)
	return nil
}

// ensureAttorney returns the client's assigned attorney, prompting the
// operator to pick or create one when the assignment is missing. The
// choice is persisted on the client record.
func (r *Resolver) ensureAttorney() (types.Attorney, error) {
	if r.client.OpposingCounselID != 0 {
		return r.store.GetAttorney(r.client.OpposingCounselID)
	}

	list, err := r.store.ListAttorneys()
	if err != nil {
		return types.Attorney{}, err
	}
	options := make([]string, 0, len(list)+1)
	for _, a := range list {
		options = append(options, a.Label())
	}
	options = append(options, "Create a new attorney")

	choice, err := r.prompter.Select("Assign opposing counsel for "+r.client.Label(), options)
	if err != nil {
		return types.Attorney{}, err
	}

	var att types.Attorney
	if choice == len(list) {
		att, err = r.createAttorney()
		if err != nil {
			return types.Attorney{}, err
		}
	} else {
		att = list[choice]
	}

	if err := r.store.AssignCounsel(r.client.ID, att.ID); err != nil {
		return types.Attorney{}, fmt.Errorf("assign counsel: %w", err)
	}
	r.client.OpposingCounselID = att.ID
	return att, nil
}

func (r *Resolver) createAttorney() (types.Attorney, error) {
	var att types.Attorney
	fields := []struct {
		label string
		dst   *string
	}{
		{"First name", &att.FirstName},
		{"Last name", &att.LastName},
		{"Firm name", &att.FirmName},
		{"Email", &att.Email},
	}
	for _, f := range fields {
		v, err := r.prompter.Input("New attorney", f.label)
		if err != nil {
			return types.Attorney{}, err
		}
		*f.dst = v
	}
	id, err := r.store.CreateAttorney(att)
	if err != nil {
		return types.Attorney{}, fmt.Errorf("create attorney: %w", err)
	}
	att.ID = id
	return att, nil
}
