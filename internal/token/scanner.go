package token

import (
	"regexp"
	"strings"
)

// Family patterns. A name must start with a letter or underscore and
// contain only alphanumerics and underscores, which keeps stray braces,
// parentheses and brackets from being misdetected as placeholders.
// Grammar names additionally allow hyphens (standard-s_plural).
var (
	storedRe      = regexp.MustCompile(`\{\{([a-zA-Z_][a-zA-Z0-9_]*)(?:\[([A-Z|]+)\])?\}\}`)
	dynamicRe     = regexp.MustCompile(`<<([a-zA-Z_][a-zA-Z0-9_]*)>>`)
	attorneyRe    = regexp.MustCompile(`\(\(([a-zA-Z_][a-zA-Z0-9_]*)\)\)`)
	docSpecificRe = regexp.MustCompile(`\{@([a-zA-Z_][a-zA-Z0-9_]*)@\}`)
	grammarRe     = regexp.MustCompile(`\(@([a-zA-Z_][a-zA-Z0-9_-]*?)@\)`)
	bracketRe     = regexp.MustCompile(`\[\[([a-zA-Z_][a-zA-Z0-9_]*)\]\]`)
)

// modifiers recognized as a dynamic suffix. Only these split off a base;
// <<venue_name>> stays one name, <<venue_upper>> is venue + upper.
var dynamicModifiers = map[string]bool{
	"upper": true,
	"lower": true,
	"title": true,
}

type familyPattern struct {
	kind Kind
	re   *regexp.Regexp
}

// Scan order is fixed so ties at the same offset resolve deterministically.
var families = []familyPattern{
	{Stored, storedRe},
	{Dynamic, dynamicRe},
	{Attorney, attorneyRe},
	{DocSpecific, docSpecificRe},
	{Grammar, grammarRe},
	{Bracket, bracketRe},
}

// Scan tokenizes text into a Stream. Families are matched independently
// and merged leftmost-first; anything unmatched, including malformed or
// partial delimiters, is preserved verbatim as Text. Scan never fails.
func Scan(text string) *Stream {
	s := &Stream{
		Variables:  map[string]*VarMeta{},
		Blocks:     map[string]*BlockMeta{},
		SystemVars: map[string]int{},
	}

	pos := 0
	for pos < len(text) {
		kind, loc := nextMatch(text, pos)
		if loc == nil {
			s.append(Token{Kind: Text, Raw: text[pos:]})
			break
		}
		if loc[0] > pos {
			s.append(Token{Kind: Text, Raw: text[pos:loc[0]]})
		}
		s.append(makeToken(kind, text, loc))
		pos = loc[1]
	}

	return s
}

// nextMatch finds the leftmost family match at or after pos. When two
// families match at the same offset the earlier family in scan order wins;
// the longer match breaks remaining ties.
func nextMatch(text string, pos int) (Kind, []int) {
	var bestKind Kind
	var best []int
	for _, f := range families {
		loc := f.re.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			continue
		}
		for i := range loc {
			if loc[i] >= 0 {
				loc[i] += pos
			}
		}
		if best == nil || loc[0] < best[0] || (loc[0] == best[0] && loc[1] > best[1]) {
			best = loc
			bestKind = f.kind
		}
	}
	return bestKind, best
}

func makeToken(kind Kind, text string, loc []int) Token {
	t := Token{
		Kind:  kind,
		Raw:   text[loc[0]:loc[1]],
		Name:  text[loc[2]:loc[3]],
		Flags: map[string]bool{},
	}

	switch kind {
	case Stored, Attorney, Bracket:
		t.Name = strings.ToLower(t.Name)
	}

	if kind == Stored && len(loc) >= 6 && loc[4] >= 0 {
		for _, f := range strings.Split(text[loc[4]:loc[5]], "|") {
			f = strings.TrimSpace(f)
			if f != "" {
				t.Flags[strings.ToUpper(f)] = true
			}
		}
	}

	if kind == Dynamic {
		t.Base, t.Modifier = SplitModifier(t.Name)
	}

	return t
}

// SplitModifier splits a dynamic name into base and modifier. The suffix
// after the last underscore is a modifier only when it is one of the
// recognized transforms; otherwise the whole name is the base.
func SplitModifier(name string) (base, modifier string) {
	i := strings.LastIndex(name, "_")
	if i <= 0 {
		return name, ""
	}
	if suffix := name[i+1:]; dynamicModifiers[suffix] {
		return name[:i], suffix
	}
	return name, ""
}

func (s *Stream) append(t Token) {
	t.Index = len(s.Tokens)
	s.Tokens = append(s.Tokens, t)

	switch t.Kind {
	case Stored:
		meta := s.Variables[t.Name]
		if meta == nil {
			meta = &VarMeta{FlagsSeen: map[string]bool{}}
			s.Variables[t.Name] = meta
		}
		meta.Occurrences++
		for f := range t.Flags {
			meta.FlagsSeen[f] = true
		}
		if t.Flags["DERIVED"] {
			meta.IsDerived = true
		}
	case Dynamic:
		meta := s.Blocks[t.Base]
		if meta == nil {
			meta = &BlockMeta{}
			s.Blocks[t.Base] = meta
		}
		meta.Occurrences++
		if t.Modifier != "" && !containsString(meta.Modifiers, t.Modifier) {
			meta.Modifiers = append(meta.Modifiers, t.Modifier)
		}
	case Bracket:
		s.SystemVars[t.Name]++
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
