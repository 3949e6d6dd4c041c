package expr

import "testing"

func TestEvaluateSingleName(t *testing.T) {
	ctx := map[string]string{"firstname": "Jane"}
	if got := Evaluate("firstname", ctx); got != "Jane" {
		t.Errorf("got %q, want Jane", got)
	}
}

func TestEvaluateConcatenation(t *testing.T) {
	ctx := map[string]string{"firstname": "Jane", "lastname": "Doe"}
	// Two bare names are not a valid single expression; the fallback
	// concatenation handles them.
	if got := Evaluate("firstname lastname", ctx); got != "Jane Doe" {
		t.Errorf("got %q, want %q", got, "Jane Doe")
	}
}

func TestEvaluateConcatenationSkipsEmpty(t *testing.T) {
	ctx := map[string]string{"firstname": "Jane", "middlename": "", "lastname": "Doe"}
	if got := Evaluate("firstname middlename lastname", ctx); got != "Jane Doe" {
		t.Errorf("got %q, want %q", got, "Jane Doe")
	}
}

func TestEvaluateSepJoinsWithSeparator(t *testing.T) {
	ctx := map[string]string{"street": "1 Main St", "city": "Springfield"}
	if got := EvaluateSep("street city", ctx, ", "); got != "1 Main St, Springfield" {
		t.Errorf("got %q", got)
	}
}

func TestEvaluateTernary(t *testing.T) {
	tests := []struct {
		name string
		expr string
		ctx  map[string]string
		want string
	}{
		{
			"condition truthy",
			"JUSTICE_EMAIL if JUSTICE_EMAIL else direct_email",
			map[string]string{"JUSTICE_EMAIL": "clerk@court.gov", "direct_email": "a@b.c"},
			"clerk@court.gov",
		},
		{
			"condition empty",
			"JUSTICE_EMAIL if JUSTICE_EMAIL else direct_email",
			map[string]string{"JUSTICE_EMAIL": "", "direct_email": "a@b.c"},
			"a@b.c",
		},
		{
			"parenthesized wizard form",
			`(middlename if middlename else "")`,
			map[string]string{"middlename": ""},
			"",
		},
		{
			"string literal arm",
			`(suffix if suffix else "Jr.")`,
			map[string]string{"suffix": ""},
			"Jr.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.expr, tt.ctx); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvaluateUnknownNameFallsBack(t *testing.T) {
	// JUSTICE_EMAIL is absent entirely: strict evaluation errors and the
	// fallback concatenates resolvable tokens, skipping "if"/"else" and
	// the missing name. Nothing propagates as an error.
	ctx := map[string]string{"direct_email": "a@b.c"}
	got := Evaluate("JUSTICE_EMAIL if JUSTICE_EMAIL else direct_email", ctx)
	if got != "a@b.c" {
		t.Errorf("got %q, want %q", got, "a@b.c")
	}
}

func TestEvaluateMalformedNeverFails(t *testing.T) {
	ctx := map[string]string{"a": "x", "b": "y"}
	tests := []struct {
		expr string
		want string
	}{
		{"", ""},
		{"a + b", "x y"},
		{"((a)", ""},
		{"a if b", "x y"},
		{"import os", ""},
		{"__builtins__", ""},
		{"a.b", ""},
	}
	for _, tt := range tests {
		if got := Evaluate(tt.expr, ctx); got != tt.want {
			t.Errorf("Evaluate(%q) = %q, want %q", tt.expr, got, tt.want)
		}
	}
}

func TestFallbackQuotedLiteral(t *testing.T) {
	got := Fallback(`firstname "and" lastname`, map[string]string{"firstname": "Jane", "lastname": "Doe"}, " ")
	if got != "Jane and Doe" {
		t.Errorf("got %q", got)
	}
}
