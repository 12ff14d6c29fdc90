package formula

import (
	"regexp"
	"strings"
)

type Kind int

const (
	// KindStats is `stats.<name>` or `[stats.<name>]`.
	KindStats Kind = iota
	// KindParam is `[PARAM:<key>]`.
	KindParam
	// KindManual is `[MANUAL:<key>]`.
	KindManual
	// KindLegacy is `[<NAME>]`, the prefix-less bracket form.
	KindLegacy
)

func (k Kind) String() string {
	switch k {
	case KindStats:
		return "stats"
	case KindParam:
		return "param"
	case KindManual:
		return "manual"
	case KindLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// tokenPattern is a single leftmost-first alternation. The bracketed forms
// come first and always start at the `[`, so the bare `stats.` form can never
// match text that sits inside brackets.
var tokenPattern = regexp.MustCompile(
	`\[(?:(PARAM|MANUAL):([^\[\]\s]+)|stats\.([A-Za-z_][A-Za-z0-9_]*)|([A-Za-z_][A-Za-z0-9_]*))\]` +
		`|\bstats\.([A-Za-z_][A-Za-z0-9_]*)`,
)

type Token struct {
	Kind Kind
	Name string

	// Raw is the matched text, Start and End its byte offsets in the formula.
	Raw   string
	Start int
	End   int
}

// Tokenize returns every recognized token of formula in order of appearance.
func Tokenize(formula string) []Token {
	matches := tokenPattern.FindAllStringSubmatchIndex(formula, -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, tokenFromMatch(formula, m))
	}
	return tokens
}

func tokenFromMatch(formula string, m []int) Token {
	group := func(i int) string {
		if m[2*i] < 0 {
			return ""
		}
		return formula[m[2*i]:m[2*i+1]]
	}

	t := Token{
		Raw:   formula[m[0]:m[1]],
		Start: m[0],
		End:   m[1],
	}

	switch {
	case group(1) == "PARAM":
		t.Kind, t.Name = KindParam, group(2)
	case group(1) == "MANUAL":
		t.Kind, t.Name = KindManual, group(2)
	case group(3) != "":
		t.Kind, t.Name = KindStats, group(3)
	case group(4) != "":
		t.Kind, t.Name = KindLegacy, group(4)
	default:
		t.Kind, t.Name = KindStats, group(5)
	}

	return t
}

// IsSingleFieldRef reports whether formula is exactly one stats or legacy
// reference, surrounding whitespace aside.
func IsSingleFieldRef(formula string) bool {
	trimmed := strings.TrimSpace(formula)
	tokens := Tokenize(trimmed)
	if len(tokens) != 1 {
		return false
	}
	t := tokens[0]
	return (t.Kind == KindStats || t.Kind == KindLegacy) && t.Start == 0 && t.End == len(trimmed)
}

// legacyCandidates returns the field names a legacy `[NAME]` may stand for,
// most specific first.
func legacyCandidates(name string) []string {
	candidates := []string{name}
	if camel := upperSnakeToCamel(name); camel != name {
		candidates = append(candidates, camel)
	}
	return candidates
}

// upperSnakeToCamel turns REMOTE_FANS into remoteFans.
func upperSnakeToCamel(name string) string {
	if strings.ToUpper(name) != name {
		return name
	}
	parts := strings.Split(strings.ToLower(name), "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
