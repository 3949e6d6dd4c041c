package resolve

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chrisgosselin92/docgenautomation/internal/dynamic"
	"github.com/chrisgosselin92/docgenautomation/internal/grammar"
	"github.com/chrisgosselin92/docgenautomation/internal/store"
	"github.com/chrisgosselin92/docgenautomation/internal/token"
	"github.com/chrisgosselin92/docgenautomation/internal/types"
)

// storedTags are the suffixes stripped from {{name}} placeholders before
// lookup. combo and derived change the resolution strategy; upper, lower
// and title transform the resolved value.
var storedTags = []string{"combo", "derived", "upper", "lower", "title"}

// splitStoredTags strips every trailing recognized tag, innermost last.
func splitStoredTags(name string) (base string, tags []string) {
	base = name
	for {
		stripped := false
		for _, tag := range storedTags {
			if strings.HasSuffix(base, "_"+tag) {
				base = strings.TrimSuffix(base, "_"+tag)
				tags = append(tags, tag)
				stripped = true
				break
			}
		}
		if !stripped || base == "" {
			return base, tags
		}
	}
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

// storedPass resolves {{name}} placeholders against the snapshot, which
// at this point already holds system dates and the dynamic pass results.
// Misses walk the sub-priority chain: combo, derived morphology, then a
// prompt that persists the answer.
func (r *Resolver) storedPass(doc Document) error {
	stream := token.Scan(doc.Text())

	repl := map[string]string{}
	for _, tok := range stream.Tokens {
		if tok.Kind != token.Stored {
			continue
		}
		if _, done := repl[tok.Raw]; done {
			continue
		}
		base, tags := splitStoredTags(tok.Name)
		value, err := r.resolveStored(base, tags)
		if err != nil {
			return err
		}
		for _, tag := range tags {
			switch tag {
			case "upper", "lower", "title":
				value = dynamic.ApplyModifier(value, tag)
			}
		}
		repl[tok.Raw] = value
	}
	doc.Replace(repl)
	return nil
}

// resolveStored produces the value for one base name and records it in
// the snapshot so later placeholders and passes reuse it.
func (r *Resolver) resolveStored(base string, tags []string) (string, error) {
	if v := r.snapshot[base]; v != "" {
		return v, nil
	}

	if hasTag(tags, "derived") {
		if v, ok := r.morphology(base); ok {
			r.snapshot[base] = v
			return v, nil
		}
		// No morphology pattern matched; a combo definition may cover it.
		if v, ok, err := r.tryCombo(base, false); err != nil || ok {
			return v, err
		}
	}

	wantCombo := hasTag(tags, "combo")
	if wantCombo || r.comboDefined(base) {
		if v, ok, err := r.tryCombo(base, wantCombo); err != nil || ok {
			return v, err
		}
	}

	value, err := r.prompter.Input("Variable "+base, fmt.Sprintf("Value for {{%s}}", base))
	if err != nil {
		return "", err
	}
	if value == "" {
		// Blank substitution; the stored value is left untouched.
		return "", nil
	}
	if err := r.persistStored(base, value); err != nil {
		return "", err
	}
	r.snapshot[base] = value
	return value, nil
}

func (r *Resolver) persistStored(base, value string) error {
	exists, err := r.store.VariableExists(base)
	if err != nil {
		return err
	}
	if !exists {
		if err := r.store.SetMeta(types.VariableMeta{VarName: base}); err != nil {
			return err
		}
	}
	return r.store.SetValue(types.EntityClient, r.client.ID, base, value)
}

func (r *Resolver) comboDefined(base string) bool {
	_, err := r.store.GetCombo(base)
	return err == nil
}

// tryCombo computes the combo value for base. When the definition is
// missing and offerDefine is set, the operator may define it on the spot
// and the value is computed from the new definition.
func (r *Resolver) tryCombo(base string, offerDefine bool) (string, bool, error) {
	combo, err := r.store.GetCombo(base)
	if errors.Is(err, store.ErrNotFound) {
		if !offerDefine {
			return "", false, nil
		}
		defined, err := r.defineCombo(base)
		if err != nil {
			return "", false, err
		}
		if !defined {
			return "", false, nil
		}
		combo, err = r.store.GetCombo(base)
		if err != nil {
			return "", false, err
		}
	} else if err != nil {
		return "", false, err
	}

	value := combo.Compute(r.snapshot)
	r.snapshot[base] = value
	return value, true, nil
}

// defineCombo walks the operator through a minimal combo definition.
// Declining is not a cancel; resolution falls through to a plain prompt.
func (r *Resolver) defineCombo(base string) (bool, error) {
	want, err := r.prompter.Confirm(fmt.Sprintf("No combo definition for %q. Define it now?", base))
	if err != nil || !want {
		if errors.Is(err, types.ErrCancelled) {
			err = nil
		}
		return false, err
	}
	components, err := r.prompter.Input("Combo "+base, "Component variable names, space separated")
	if err != nil {
		return false, err
	}
	fields := strings.Fields(strings.ToLower(components))
	if len(fields) == 0 {
		return false, nil
	}
	sep, err := r.prompter.Input("Combo "+base, `Separator (blank for a single space)`)
	if err != nil {
		return false, err
	}
	if sep == "" {
		sep = " "
	}
	err = r.store.UpsertCombo(types.ComboVariable{
		Name:       base,
		Components: fields,
		Separator:  sep,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// morphology applies the fixed name-pattern rules for _derived names.
// First match wins; ok is false when no pattern applies.
func (r *Resolver) morphology(base string) (string, bool) {
	if root, found := strings.CutSuffix(base, "_plural"); found {
		if v := r.snapshot[root]; v != "" {
			return grammar.Pluralize(v), true
		}
		return "", false
	}
	if root, found := strings.CutSuffix(base, "_possessive"); found {
		if v := r.snapshot[root]; v != "" {
			return grammar.Possessive(v), true
		}
		return "", false
	}
	if v, ok := grammar.Pronoun(base, r.snapshot["gender"]); ok {
		return v, true
	}
	if strings.Contains(base, "_deny") || strings.Contains(base, "_denies") {
		n, err := strconv.Atoi(r.snapshot["defendant_count"])
		if err != nil {
			n = 1
		}
		return grammar.ConjugateDeny(n), true
	}
	return "", false
}
