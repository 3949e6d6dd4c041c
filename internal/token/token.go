// Package token scans raw document text and produces a typed token stream.
// Each placeholder family is recognized purely by its delimiter syntax;
// the same literal name may appear under different families with unrelated
// semantics, so tokens always carry their family tag.
package token

// Kind identifies a token family.
type Kind int

const (
	// Text is a literal span with no placeholder semantics.
	Text Kind = iota
	// Stored is a {{name}} client-variable placeholder.
	Stored
	// Dynamic is a <<name>> or <<name_modifier>> response-bank placeholder.
	Dynamic
	// Attorney is a ((name)) opposing-counsel placeholder.
	Attorney
	// DocSpecific is a {@name@} placeholder prompted fresh every run.
	DocSpecific
	// Grammar is a (@name@) agreement placeholder.
	Grammar
	// Bracket is a [[name]] placeholder resolved from the snapshot merged
	// with the grammar rule table.
	Bracket
)

var kindNames = map[Kind]string{
	Text:        "TEXT",
	Stored:      "VAR_STORED",
	Dynamic:     "VAR_DYNAMIC",
	Attorney:    "VAR_ATTORNEY",
	DocSpecific: "VAR_DOC_SPECIFIC",
	Grammar:     "VAR_GRAMMAR",
	Bracket:     "VAR_BRACKET",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Token is one recognized span. Tokens are immutable once produced.
type Token struct {
	Kind Kind
	// Raw is the full matched text, delimiters included.
	Raw string
	// Name is the normalized placeholder name; empty for Text tokens.
	// Stored, Attorney and Bracket names are lower-cased; Dynamic,
	// DocSpecific and Grammar names keep their source case.
	Name string
	// Base and Modifier are set for Dynamic tokens with a recognized
	// modifier suffix (<<venue_upper>> has Base "venue", Modifier "upper").
	// For unmodified Dynamic tokens Base equals Name and Modifier is empty.
	Base     string
	Modifier string
	// Flags holds [FLAG|FLAG] suffix flags, upper-cased.
	Flags map[string]bool
	// Index is the token's position in the stream.
	Index int
}

// VarMeta aggregates per-name facts about stored-variable occurrences.
type VarMeta struct {
	Occurrences int
	FlagsSeen   map[string]bool
	IsDerived   bool
}

// BlockMeta aggregates per-base-name facts about dynamic occurrences.
type BlockMeta struct {
	Occurrences int
	// Modifiers lists the modifier variants seen for this base, in
	// first-seen order. The base itself is not listed.
	Modifiers []string
}

// Stream is the result of one scan: the ordered token list plus the
// aggregate maps the resolver passes consume.
type Stream struct {
	Tokens []Token
	// Variables indexes Stored occurrences by normalized name.
	Variables map[string]*VarMeta
	// Blocks indexes Dynamic occurrences by base name.
	Blocks map[string]*BlockMeta
	// SystemVars counts Bracket occurrences by normalized name.
	SystemVars map[string]int
}

// Placeholders returns the non-Text tokens in document order.
func (s *Stream) Placeholders() []Token {
	out := make([]Token, 0, len(s.Tokens))
	for _, t := range s.Tokens {
		if t.Kind != Text {
			out = append(out, t)
		}
	}
	return out
}

// NamesOf returns the distinct names of the given kind in first-seen order.
func (s *Stream) NamesOf(kind Kind) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range s.Tokens {
		if t.Kind != kind || seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		out = append(out, t.Name)
	}
	return out
}
