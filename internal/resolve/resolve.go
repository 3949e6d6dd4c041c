// Package resolve runs the six-pass placeholder pipeline and the batch
// orchestrator. Passes run in a fixed priority order and each pass fully
// mutates the document before the next pass scans, so later passes see
// earlier substitutions removed rather than layered underneath.
package resolve

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chrisgosselin92/docgenautomation/internal/dynamic"
	"github.com/chrisgosselin92/docgenautomation/internal/grammar"
	"github.com/chrisgosselin92/docgenautomation/internal/logging"
	"github.com/chrisgosselin92/docgenautomation/internal/store"
	"github.com/chrisgosselin92/docgenautomation/internal/token"
	"github.com/chrisgosselin92/docgenautomation/internal/types"
)

// Document is the mutable text surface a resolver works against. The
// .docx boundary satisfies it; tests use an in-memory fake.
type Document interface {
	// Text returns the current plain text for scanning.
	Text() string
	// Replace substitutes every occurrence of each key.
	Replace(values map[string]string) int
	// ReplaceFirst substitutes only the first occurrence of key.
	ReplaceFirst(key, value string) bool
}

// Resolver resolves one document at a time for one client. The dynamic
// resolver it carries holds the per-run cache, so one Resolver serves a
// whole batch.
type Resolver struct {
	store    *store.Store
	dynamic  *dynamic.Resolver
	prompter types.Prompter
	now      func() time.Time
	log      *zap.SugaredLogger

	// per-document state
	client   types.Client
	snapshot map[string]string
}

// NewResolver wires the resolution pipeline.
func NewResolver(st *store.Store, dyn *dynamic.Resolver, p types.Prompter) *Resolver {
	return &Resolver{
		store:    st,
		dynamic:  dyn,
		prompter: p,
		now:      time.Now,
		log:      logging.Get(logging.CategoryResolve),
	}
}

// ResolveDocument runs all six passes against doc for one client.
// types.ErrCancelled means the operator aborted this document; the
// caller discards the output and moves on.
func (r *Resolver) ResolveDocument(doc Document, client types.Client) error {
	snap, err := r.store.Snapshot(types.EntityClient, client.ID)
	if err != nil {
		return fmt.Errorf("load client snapshot: %w", err)
	}
	// System dates shadow same-named stored variables.
	for k, v := range SystemDateContext(r.now()) {
		snap[k] = v
	}
	r.client = client
	r.snapshot = snap

	passes := []struct {
		name string
		run  func(Document) error
	}{
		{"dynamic", r.dynamicPass},
		{"stored", r.storedPass},
		{"attorney", r.attorneyPass},
		{"grammar", r.grammarPass},
		{"doc-specific", r.docSpecificPass},
		{"bracket", r.bracketPass},
	}
	for _, p := range passes {
		if err := p.run(doc); err != nil {
			return fmt.Errorf("%s pass: %w", p.name, err)
		}
	}
	return nil
}

// dynamicPass resolves <<name>> placeholders from the response bank.
// Each base is resolved once; modifier variants transform the base value
// and never prompt again. Unresolved names stay literal.
func (r *Resolver) dynamicPass(doc Document) error {
	stream := token.Scan(doc.Text())

	resolved := map[string]string{}
	missed := map[string]bool{}
	repl := map[string]string{}
	for _, tok := range stream.Tokens {
		if tok.Kind != token.Dynamic {
			continue
		}
		value, have := resolved[tok.Base]
		if !have && !missed[tok.Base] {
			v, ok, err := r.dynamic.Resolve(tok.Base)
			if err != nil {
				return err
			}
			if !ok {
				missed[tok.Base] = true
				continue
			}
			resolved[tok.Base] = v
			// Later passes see the answer through the snapshot, and the
			// store keeps it for later templates and future runs.
			r.snapshot[tok.Base] = v
			if err := r.persistStored(tok.Base, v); err != nil {
				return err
			}
			value, have = v, true
		}
		if have {
			repl[tok.Raw] = dynamic.ApplyModifier(value, tok.Modifier)
		}
	}
	doc.Replace(repl)
	r.log.Debugw("dynamic pass done", "resolved", len(resolved), "missed", len(missed))
	return nil
}

// grammarPass resolves (@name@) placeholders. Count and gender are asked
// once per document; unknown rule names stay literal.
func (r *Resolver) grammarPass(doc Document) error {
	stream := token.Scan(doc.Text())

	var toks []token.Token
	for _, tok := range stream.Tokens {
		if tok.Kind == token.Grammar {
			toks = append(toks, tok)
		}
	}
	if len(toks) == 0 {
		return nil
	}

	count, gender, err := r.askAgreement()
	if err != nil {
		return err
	}

	repl := map[string]string{}
	for _, tok := range toks {
		form, ok := grammar.Resolve(tok.Name, count, gender)
		if !ok {
			continue
		}
		// Capitalization mirrors the placeholder name.
		if tok.Name[0] >= 'A' && tok.Name[0] <= 'Z' && form != "" {
			form = string(form[0]-'a'+'A') + form[1:]
		}
		repl[tok.Raw] = form
	}
	doc.Replace(repl)
	return nil
}

func (r *Resolver) askAgreement() (grammar.Count, grammar.Gender, error) {
	c, err := r.prompter.Select("Grammar agreement: number", []string{"Singular", "Plural"})
	if err != nil {
		return "", "", err
	}
	count := grammar.Singular
	if c == 1 {
		count = grammar.Plural
	}

	g, err := r.prompter.Select("Grammar agreement: gender", []string{"Male", "Female", "Other"})
	if err != nil {
		return "", "", err
	}
	gender := grammar.Gender("")
	switch g {
	case 0:
		gender = grammar.Male
	case 1:
		gender = grammar.Female
	}
	return count, gender, nil
}

// docSpecificPass prompts for every {@name@} occurrence individually.
// Nothing is cached or persisted; the same name twice means two prompts.
func (r *Resolver) docSpecificPass(doc Document) error {
	stream := token.Scan(doc.Text())

	occurrence := map[string]int{}
	for _, tok := range stream.Tokens {
		if tok.Kind != token.DocSpecific {
			continue
		}
		occurrence[tok.Name]++
		value, err := r.prompter.Input(
			fmt.Sprintf("Document value: %s (occurrence %d)", tok.Name, occurrence[tok.Name]),
			fmt.Sprintf("Value for {@%s@}", tok.Name))
		if err != nil {
			return err
		}
		doc.ReplaceFirst(tok.Raw, value)
	}
	return nil
}

// bracketPass resolves [[name]] placeholders from the snapshot merged
// with the grammar table. Grammar names win; count and gender default
// from the defendant_count and gender snapshot values. Unresolved names
// stay literal.
func (r *Resolver) bracketPass(doc Document) error {
	stream := token.Scan(doc.Text())

	count := grammar.Singular
	if n, err := parseCount(r.snapshot["defendant_count"]); err == nil && n > 1 {
		count = grammar.Plural
	}
	gender := grammar.Male
	if g := grammar.Gender(r.snapshot["gender"]); g == grammar.Female {
		gender = grammar.Female
	}

	repl := map[string]string{}
	for _, tok := range stream.Tokens {
		if tok.Kind != token.Bracket {
			continue
		}
		if form, ok := grammar.Resolve(tok.Name, count, gender); ok {
			repl[tok.Raw] = form
			continue
		}
		if v := r.snapshot[tok.Name]; v != "" {
			repl[tok.Raw] = v
			continue
		}
		switch tok.Name {
		case "plaintiff":
			v := r.snapshot["clientname"]
			if v == "" {
				v = r.client.FirstName + " " + r.client.LastName
			}
			repl[tok.Raw] = v
		case "defendant":
			v := r.snapshot["defendantname"]
			if v == "" {
				v = "Defendant"
			}
			repl[tok.Raw] = v
		}
	}
	doc.Replace(repl)
	return nil
}

func parseCount(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}
