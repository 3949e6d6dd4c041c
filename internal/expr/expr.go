// Package expr evaluates the restricted derived-variable expression
// language: bare variable names, quoted string literals, and one
// ternary-like conditional ("A if A else B"). Evaluation sees only the
// supplied context map; there are no functions, no I/O, and no way for a
// stored expression to execute anything.
//
// Any expression the language cannot parse, and any reference to a name
// absent from the context, degrades to the concatenation fallback:
// whitespace-split tokens are looked up and the non-empty values joined
// with the separator. The fallback never fails.
package expr

import (
	"errors"
	"strings"
)

// DefaultSeparator joins fallback-concatenated values.
const DefaultSeparator = " "

var errBadExpression = errors.New("expr: unsupported expression")

// Evaluate resolves an expression against ctx with the default separator.
func Evaluate(expression string, ctx map[string]string) string {
	return EvaluateSep(expression, ctx, DefaultSeparator)
}

// EvaluateSep resolves an expression against ctx. Strict evaluation is
// attempted first (single term or ternary); on any failure the result is
// the concatenation fallback.
func EvaluateSep(expression string, ctx map[string]string, sep string) string {
	if v, err := evalStrict(expression, ctx); err == nil {
		return v
	}
	return Fallback(expression, ctx, sep)
}

// Fallback joins the values of the expression's whitespace-separated
// tokens, skipping tokens with no non-empty value in ctx. Quoted literals
// contribute their unquoted text.
func Fallback(expression string, ctx map[string]string, sep string) string {
	if sep == "" {
		sep = DefaultSeparator
	}
	var values []string
	for _, tok := range strings.Fields(expression) {
		if lit, ok := unquote(tok); ok {
			if lit != "" {
				values = append(values, lit)
			}
			continue
		}
		if v := ctx[tok]; v != "" {
			values = append(values, v)
		}
	}
	return strings.Join(values, sep)
}

// evalStrict handles the two supported shapes: a single term, or
// "THEN if COND else ELSE" with optional surrounding parentheses.
func evalStrict(expression string, ctx map[string]string) (string, error) {
	expression = strings.TrimSpace(expression)
	expression = stripParens(expression)
	if expression == "" {
		return "", errBadExpression
	}

	fields := strings.Fields(expression)
	switch len(fields) {
	case 1:
		return evalTerm(fields[0], ctx)
	case 5:
		if fields[1] != "if" || fields[3] != "else" {
			return "", errBadExpression
		}
		cond, err := evalTerm(fields[2], ctx)
		if err != nil {
			return "", err
		}
		if cond != "" {
			return evalTerm(fields[0], ctx)
		}
		return evalTerm(fields[4], ctx)
	default:
		return "", errBadExpression
	}
}

// evalTerm resolves one term: a quoted literal or a context name. An
// unknown name is an error, mirroring a NameError in a sandboxed eval.
func evalTerm(term string, ctx map[string]string) (string, error) {
	if lit, ok := unquote(term); ok {
		return lit, nil
	}
	if !isIdentifier(term) {
		return "", errBadExpression
	}
	v, ok := ctx[term]
	if !ok {
		return "", errBadExpression
	}
	return v, nil
}

// stripParens removes one matched pair of surrounding parentheses, the
// shape the conditional wizard emits: (A if A else "").
func stripParens(s string) string {
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		inner := s[1 : len(s)-1]
		if !strings.ContainsAny(inner, "()") {
			return strings.TrimSpace(inner)
		}
	}
	return s
}

func unquote(s string) (string, bool) {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1], true
		}
	}
	return "", false
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
