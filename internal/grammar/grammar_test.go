package grammar

import "testing"

func TestResolvePlurality(t *testing.T) {
	tests := []struct {
		name  string
		count Count
		want  string
	}{
		{"defendant_defendants", Singular, "defendant"},
		{"defendant_defendants", Plural, "defendants"},
		{"party_parties", Plural, "parties"},
		{"is_are", Singular, "is"},
		{"is_are", Plural, "are"},
		{"denies_deny", Singular, "denies"},
		{"denies_deny", Plural, "deny"},
		{"plural_s", Singular, ""},
		{"plural_s", Plural, "s"},
		{"standard-s_plural", Singular, "s"},
		{"standard-s_plural", Plural, ""},
	}
	for _, tt := range tests {
		got, ok := Resolve(tt.name, tt.count, Male)
		if !ok {
			t.Errorf("Resolve(%q) not found", tt.name)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q, %s) = %q, want %q", tt.name, tt.count, got, tt.want)
		}
	}
}

func TestResolvePronouns(t *testing.T) {
	tests := []struct {
		name   string
		count  Count
		gender Gender
		want   string
	}{
		{"he_she_they", Singular, Female, "she"},
		{"he_she_they", Singular, Male, "he"},
		{"he_she_they", Plural, Male, "they"},
		{"him_her_them", Plural, Male, "them"},
		{"his_her_their", Singular, Female, "her"},
		{"his_hers_theirs", Singular, Male, "his"},
		{"himself_herself_themselves", Plural, Female, "themselves"},
		// Short aliases used by {{}}-pass derived names.
		{"he_she", Singular, Female, "she"},
		{"him_her", Plural, Male, "them"},
	}
	for _, tt := range tests {
		got, ok := Resolve(tt.name, tt.count, tt.gender)
		if !ok {
			t.Errorf("Resolve(%q) not found", tt.name)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q, %s, %s) = %q, want %q", tt.name, tt.count, tt.gender, got, tt.want)
		}
	}
}

func TestResolveUnknownName(t *testing.T) {
	if _, ok := Resolve("not_a_rule", Singular, Male); ok {
		t.Error("unknown rule should report ok=false")
	}
}

func TestPronounCapitalization(t *testing.T) {
	tests := []struct {
		name   string
		gender string
		want   string
	}{
		{"he_she", "female", "she"},
		{"He_She", "female", "She"},
		{"Him_Her", "male", "Him"},
		{"his_hers", "female", "hers"},
		{"he_she", "nonbinary", "they"},
		{"His_Her", "", "Their"},
	}
	for _, tt := range tests {
		got, ok := Pronoun(tt.name, tt.gender)
		if !ok {
			t.Errorf("Pronoun(%q) not found", tt.name)
			continue
		}
		if got != tt.want {
			t.Errorf("Pronoun(%q, %q) = %q, want %q", tt.name, tt.gender, got, tt.want)
		}
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Company", "Companies"},
		{"box", "boxes"},
		{"leaf", "leaves"},
		{"knife", "knives"},
		{"cat", "cats"},
		{"church", "churches"},
		{"wish", "wishes"},
		{"buzz", "buzzes"},
		{"hero", "heroes"},
		{"radio", "radios"},
		{"day", "days"},
		{"attorney", "attorneys"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Pluralize(tt.in); got != tt.want {
			t.Errorf("Pluralize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPossessive(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Jones", "Jones'"},
		{"Smith", "Smith's"},
		{"company", "company's"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Possessive(tt.in); got != tt.want {
			t.Errorf("Possessive(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConjugateDeny(t *testing.T) {
	if got := ConjugateDeny(1); got != "denies" {
		t.Errorf("ConjugateDeny(1) = %q, want denies", got)
	}
	if got := ConjugateDeny(3); got != "deny" {
		t.Errorf("ConjugateDeny(3) = %q, want deny", got)
	}
}

func TestIsRule(t *testing.T) {
	for _, name := range []string{"he_she_they", "him_her", "denies_deny", "Party_Parties"} {
		if !IsRule(name) {
			t.Errorf("IsRule(%q) = false, want true", name)
		}
	}
	if IsRule("venue") {
		t.Error("IsRule(venue) = true, want false")
	}
}
