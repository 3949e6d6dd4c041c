package dynamic

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/chrisgosselin92/docgenautomation/internal/logging"
	"github.com/chrisgosselin92/docgenautomation/internal/types"
)

// customMarkerRe matches the [[custom]] splice marker in any letter case.
var customMarkerRe = regexp.MustCompile(`(?i)\[\[custom\]\]`)

// Resolver answers dynamic placeholders from the response bank, prompting
// the operator through p and caching answers for the run.
type Resolver struct {
	bank     *Bank
	cache    *Cache
	prompter types.Prompter
	log      *zap.SugaredLogger
}

// NewResolver wires a resolver to one bank, one per-run cache, and the
// operator prompt surface.
func NewResolver(bank *Bank, cache *Cache, p types.Prompter) *Resolver {
	return &Resolver{
		bank:     bank,
		cache:    cache,
		prompter: p,
		log:      logging.Get(logging.CategoryDynamic),
	}
}

// Resolve produces the final text for base. The ok result is false when
// the name stays unresolved: bank miss, empty sheet, or an operator
// cancel. A cancel is not cached, so the next document prompts again.
func (r *Resolver) Resolve(base string) (value string, ok bool, err error) {
	if v, hit := r.cache.Lookup(base); hit {
		r.log.Debugw("cache hit", "name", base)
		return v, true, nil
	}

	sheet, err := r.bank.Sheet(base)
	if err != nil {
		if errors.Is(err, ErrNoSheet) {
			r.log.Warnw("no response sheet", "name", base)
			return "", false, nil
		}
		return "", false, err
	}
	if len(sheet.Options) == 0 {
		r.log.Warnw("response sheet has no usable rows", "name", base)
		return "", false, nil
	}

	if sheet.SingleUse {
		value, ok, err = r.resolveSingle(sheet)
	} else {
		value, ok, err = r.resolveMulti(sheet)
	}
	if err != nil || !ok {
		return "", false, err
	}
	r.cache.store(base, value, sheet.SingleUse)
	return value, true, nil
}

// resolveSingle presents a one-shot choice.
func (r *Resolver) resolveSingle(sheet *Sheet) (string, bool, error) {
	choice, err := r.selectOption(sheet.Name, sheet)
	if errors.Is(err, types.ErrCancelled) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	text, err := r.spliceCustom(sheet.Options[choice].Output)
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

// resolveMulti loops the choice UI, numbering each collected entry, until
// the operator marks one last or cancels. A cancel with entries already
// collected must be confirmed before they are discarded.
func (r *Resolver) resolveMulti(sheet *Sheet) (string, bool, error) {
	var entries []string
	for {
		n := len(entries) + 1
		title := fmt.Sprintf("%s (entry %d)", sheet.Name, n)
		choice, err := r.selectOption(title, sheet)
		if errors.Is(err, types.ErrCancelled) {
			if len(entries) == 0 {
				return "", false, nil
			}
			discard, err := r.prompter.Confirm(
				fmt.Sprintf("Discard the %d collected entries for %s?", len(entries), sheet.Name))
			if err != nil {
				return "", false, err
			}
			if discard {
				return "", false, nil
			}
			continue
		}
		if err != nil {
			return "", false, err
		}

		text, err := r.spliceCustom(sheet.Options[choice].Output)
		if err != nil {
			return "", false, err
		}
		text = strings.ReplaceAll(text, "Paragraph #", fmt.Sprintf("Paragraph %d", n))
		entries = append(entries, fmt.Sprintf("%d. %s", n, text))

		last, err := r.prompter.Confirm("Was that the last entry?")
		if err != nil && !errors.Is(err, types.ErrCancelled) {
			return "", false, err
		}
		if last {
			return strings.Join(entries, "\n"), true, nil
		}
	}
}

func (r *Resolver) selectOption(title string, sheet *Sheet) (int, error) {
	displays := make([]string, len(sheet.Options))
	for i, opt := range sheet.Options {
		displays[i] = opt.Display
	}
	return r.prompter.Select(title, displays)
}

// spliceCustom replaces the [[custom]] marker, in any letter case, with
// operator free text.
func (r *Resolver) spliceCustom(text string) (string, error) {
	if !customMarkerRe.MatchString(text) {
		return text, nil
	}
	custom, err := r.prompter.Input("Custom text", "Text to insert")
	if errors.Is(err, types.ErrCancelled) {
		custom = ""
	} else if err != nil {
		return "", err
	}
	return customMarkerRe.ReplaceAllLiteralString(text, custom), nil
}
