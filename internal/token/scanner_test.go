package token

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScanLiteralPassthrough(t *testing.T) {
	input := "Dear counsel, nothing to substitute here."
	s := Scan(input)

	if len(s.Tokens) != 1 {
		t.Fatalf("expected 1 token, got %d", len(s.Tokens))
	}
	tok := s.Tokens[0]
	if tok.Kind != Text {
		t.Errorf("kind = %v, want TEXT", tok.Kind)
	}
	if tok.Raw != input {
		t.Errorf("raw = %q, want input unchanged", tok.Raw)
	}
	if len(s.Variables) != 0 || len(s.Blocks) != 0 || len(s.SystemVars) != 0 {
		t.Errorf("aggregate maps should be empty for literal text")
	}
}

func TestScanEmptyInput(t *testing.T) {
	s := Scan("")
	if len(s.Tokens) != 0 {
		t.Fatalf("expected no tokens for empty input, got %d", len(s.Tokens))
	}
}

func TestScanFamilyIndependence(t *testing.T) {
	s := Scan("{{a}} ((b)) <<c>> {@d@} (@e@) [[f]]")

	got := s.Placeholders()
	if len(got) != 6 {
		t.Fatalf("expected 6 placeholder tokens, got %d", len(got))
	}

	want := []struct {
		kind Kind
		name string
	}{
		{Stored, "a"},
		{Attorney, "b"},
		{Dynamic, "c"},
		{DocSpecific, "d"},
		{Grammar, "e"},
		{Bracket, "f"},
	}
	for i, w := range want {
		if got[i].Kind != w.kind {
			t.Errorf("token %d: kind = %v, want %v", i, got[i].Kind, w.kind)
		}
		if got[i].Name != w.name {
			t.Errorf("token %d: name = %q, want %q", i, got[i].Name, w.name)
		}
	}
}

func TestScanMalformedDelimitersStayLiteral(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"stray close paren", "filed on )"},
		{"unclosed stored", "{{venue"},
		{"empty name", "{{}}"},
		{"name starts with digit", "{{1venue}}"},
		{"half attorney", "((name)"},
		{"nested stray brackets", "a ] b [ c"},
		{"lone angle", "5 << 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Scan(tt.input)
			for _, tok := range s.Tokens {
				if tok.Kind != Text {
					t.Fatalf("input %q produced placeholder token %+v", tt.input, tok)
				}
			}
			var rebuilt string
			for _, tok := range s.Tokens {
				rebuilt += tok.Raw
			}
			if rebuilt != tt.input {
				t.Errorf("rebuilt = %q, want %q", rebuilt, tt.input)
			}
		})
	}
}

func TestScanCaseNormalization(t *testing.T) {
	s := Scan("{{Venue}} ((PlaintiffAttorneyFullName)) [[He_She_They]] {@CaseNo@} (@He_She_They@)")

	ph := s.Placeholders()
	want := []string{"venue", "plaintiffattorneyfullname", "he_she_they", "CaseNo", "He_She_They"}
	for i, name := range want {
		if ph[i].Name != name {
			t.Errorf("token %d: name = %q, want %q", i, ph[i].Name, name)
		}
	}
}

func TestScanDynamicModifiers(t *testing.T) {
	tests := []struct {
		input    string
		base     string
		modifier string
	}{
		{"<<venue>>", "venue", ""},
		{"<<venue_upper>>", "venue", "upper"},
		{"<<venue_lower>>", "venue", "lower"},
		{"<<venue_title>>", "venue", "title"},
		{"<<court_name>>", "court_name", ""},
		{"<<_upper>>", "_upper", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := Scan(tt.input)
			ph := s.Placeholders()
			if len(ph) != 1 {
				t.Fatalf("expected 1 token, got %d", len(ph))
			}
			if ph[0].Base != tt.base || ph[0].Modifier != tt.modifier {
				t.Errorf("base/modifier = %q/%q, want %q/%q",
					ph[0].Base, ph[0].Modifier, tt.base, tt.modifier)
			}
		})
	}
}

func TestScanSharedDynamicBase(t *testing.T) {
	s := Scan("In the <<venue>> (formally <<venue_upper>>), also <<venue>>.")

	if len(s.Blocks) != 1 {
		t.Fatalf("expected one dynamic base, got %d", len(s.Blocks))
	}
	meta := s.Blocks["venue"]
	if meta == nil {
		t.Fatal("missing block meta for venue")
	}
	if meta.Occurrences != 3 {
		t.Errorf("occurrences = %d, want 3", meta.Occurrences)
	}
	if diff := cmp.Diff([]string{"upper"}, meta.Modifiers); diff != "" {
		t.Errorf("modifiers mismatch (-want +got):\n%s", diff)
	}
}

func TestScanStoredFlags(t *testing.T) {
	s := Scan("{{venue[CAPS|CUSTOM]}} and {{venue}}")

	meta := s.Variables["venue"]
	if meta == nil {
		t.Fatal("missing variable meta for venue")
	}
	if meta.Occurrences != 2 {
		t.Errorf("occurrences = %d, want 2", meta.Occurrences)
	}
	if !meta.FlagsSeen["CAPS"] || !meta.FlagsSeen["CUSTOM"] {
		t.Errorf("flags seen = %v, want CAPS and CUSTOM", meta.FlagsSeen)
	}

	ph := s.Placeholders()
	if !ph[0].Flags["CAPS"] {
		t.Errorf("first token missing CAPS flag: %v", ph[0].Flags)
	}
	if len(ph[1].Flags) != 0 {
		t.Errorf("second token should have no flags, got %v", ph[1].Flags)
	}
}

func TestScanDerivedFlagMarksMeta(t *testing.T) {
	s := Scan("{{fullname[DERIVED]}}")
	if meta := s.Variables["fullname"]; meta == nil || !meta.IsDerived {
		t.Errorf("DERIVED flag should mark variable meta, got %+v", meta)
	}
}

func TestScanInterleavedTextOrder(t *testing.T) {
	s := Scan("Before {{a}} middle [[b]] after")

	var kinds []Kind
	var raws []string
	for _, tok := range s.Tokens {
		kinds = append(kinds, tok.Kind)
		raws = append(raws, tok.Raw)
	}
	wantKinds := []Kind{Text, Stored, Text, Bracket, Text}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("kind order mismatch (-want +got):\n%s", diff)
	}
	wantRaws := []string{"Before ", "{{a}}", " middle ", "[[b]]", " after"}
	if diff := cmp.Diff(wantRaws, raws); diff != "" {
		t.Errorf("raw spans mismatch (-want +got):\n%s", diff)
	}
}

func TestScanSystemVarCounts(t *testing.T) {
	s := Scan("[[he_she_they]] said [[plaintiff]] and [[he_she_they]]")
	if s.SystemVars["he_she_they"] != 2 {
		t.Errorf("he_she_they count = %d, want 2", s.SystemVars["he_she_they"])
	}
	if s.SystemVars["plaintiff"] != 1 {
		t.Errorf("plaintiff count = %d, want 1", s.SystemVars["plaintiff"])
	}
}

func TestNamesOfPreservesOrder(t *testing.T) {
	s := Scan("{{b}} {{a}} {{b}} {{c}}")
	got := s.NamesOf(Stored)
	if diff := cmp.Diff([]string{"b", "a", "c"}, got); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}
