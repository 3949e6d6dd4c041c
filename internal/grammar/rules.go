// Package grammar maps count and gender settings to agreed word forms.
// It backs the (@name@) pass and the [[name]] pass, and provides the
// morphology transforms the stored-variable pass applies to _derived names.
package grammar

import "strings"

// Count is the number setting for a document.
type Count string

const (
	Singular Count = "singular"
	Plural   Count = "plural"
)

// Gender selects between gendered singular forms. Anything other than
// Male or Female resolves to the they-family forms.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Rule holds the agreed forms for one rule name. Gender-independent rules
// set Singular/PluralForm; pronoun-style rules set the gendered fields.
type Rule struct {
	Singular       string
	SingularMale   string
	SingularFemale string
	PluralForm     string
	// Gendered marks pronoun-style rules where the singular form depends
	// on gender.
	Gendered bool
}

// Rules is the fixed agreement table. Unknown names are explicitly not
// substituted; callers keep the literal placeholder text.
var Rules = map[string]Rule{
	// Basic plurality
	"clients":           {Singular: "client", PluralForm: "clients"},
	"plural_s":          {Singular: "", PluralForm: "s"},
	"standard-s_plural": {Singular: "s", PluralForm: ""},
	"plural_ies":        {Singular: "ies", PluralForm: "y"},

	// Legal party terms
	"defendant_defendants":   {Singular: "defendant", PluralForm: "defendants"},
	"plaintiff_plaintiffs":   {Singular: "plaintiff", PluralForm: "plaintiffs"},
	"party_parties":          {Singular: "party", PluralForm: "parties"},
	"petitioner_petitioners": {Singular: "petitioner", PluralForm: "petitioners"},
	"respondent_respondents": {Singular: "respondent", PluralForm: "respondents"},
	"movant_movants":         {Singular: "movant", PluralForm: "movants"},
	"appellee_appellees":     {Singular: "appellee", PluralForm: "appellees"},
	"appellant_appellants":   {Singular: "appellant", PluralForm: "appellants"},

	// Verb conjugation
	"is_are":            {Singular: "is", PluralForm: "are"},
	"was_were":          {Singular: "was", PluralForm: "were"},
	"have_has":          {Singular: "has", PluralForm: "have"},
	"does_do":           {Singular: "does", PluralForm: "do"},
	"believes_believe":  {Singular: "believes", PluralForm: "believe"},
	"denies_deny":       {Singular: "denies", PluralForm: "deny"},
	"alleges_allege":    {Singular: "alleges", PluralForm: "allege"},
	"requests_request":  {Singular: "requests", PluralForm: "request"},
	"moves_move":        {Singular: "moves", PluralForm: "move"},
	"opposes_oppose":    {Singular: "opposes", PluralForm: "oppose"},

	// Pronouns
	"he_she_they":                 {Gendered: true, SingularMale: "he", SingularFemale: "she", PluralForm: "they"},
	"him_her_them":                {Gendered: true, SingularMale: "him", SingularFemale: "her", PluralForm: "them"},
	"his_her_their":               {Gendered: true, SingularMale: "his", SingularFemale: "her", PluralForm: "their"},
	"his_hers_theirs":             {Gendered: true, SingularMale: "his", SingularFemale: "hers", PluralForm: "theirs"},
	"himself_herself_themselves":  {Gendered: true, SingularMale: "himself", SingularFemale: "herself", PluralForm: "themselves"},
}

// shortRules map the two-part pronoun names used by _derived stored
// variables ({{he_she}}, {{him_her}}, ...) onto the table entries.
var shortRules = map[string]string{
	"he_she":   "he_she_they",
	"him_her":  "him_her_them",
	"his_her":  "his_her_their",
	"his_hers": "his_hers_theirs",
}

// Resolve returns the agreed form for a rule name, or (original, false)
// when the name is not in the table. The caller supplies the literal
// placeholder text to preserve on a miss.
func Resolve(name string, count Count, gender Gender) (string, bool) {
	lower := strings.ToLower(name)
	if full, ok := shortRules[lower]; ok {
		lower = full
	}
	rule, ok := Rules[lower]
	if !ok {
		return "", false
	}
	if !rule.Gendered {
		if count == Plural {
			return rule.PluralForm, true
		}
		return rule.Singular, true
	}
	if count == Plural {
		return rule.PluralForm, true
	}
	switch gender {
	case Male:
		return rule.SingularMale, true
	case Female:
		return rule.SingularFemale, true
	default:
		return rule.PluralForm, true
	}
}

// IsRule reports whether name is in the agreement table, including the
// short pronoun aliases.
func IsRule(name string) bool {
	lower := strings.ToLower(name)
	if _, ok := Rules[lower]; ok {
		return true
	}
	_, ok := shortRules[lower]
	return ok
}

// Pronoun resolves a short pronoun name ({{he_she}} et al.) from a gender
// value. The result's capitalization mirrors the placeholder name's first
// letter. Unknown names return ok=false.
func Pronoun(name string, gender string) (string, bool) {
	full, ok := shortRules[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	g := Gender(strings.ToLower(gender))
	if g != Male && g != Female {
		// Any other gender value takes the they-family form.
		g = ""
	}
	out, _ := Resolve(full, Singular, g)
	if name != "" && name[0] >= 'A' && name[0] <= 'Z' {
		out = strings.ToUpper(out[:1]) + out[1:]
	}
	return out, true
}
