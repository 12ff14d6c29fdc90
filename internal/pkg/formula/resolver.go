package formula

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"exusiai.dev/chartengine/internal/model"
)

// Sources are the read-only inputs tokens are resolved against.
type Sources struct {
	Stats  model.StatsRecord
	Params model.ParameterSet
	Manual model.ManualDataSet
}

// MergeParams layers the caller's parameters over a configuration's own
// defaults without touching either map.
func MergeParams(defaults, overrides model.ParameterSet) model.ParameterSet {
	merged := make(model.ParameterSet, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// Resolver substitutes tokens in formulas. It holds only the alias table,
// which is fixed at construction, and is safe for concurrent use.
type Resolver struct {
	aliases aliasTable
}

func NewResolver(aliases []Alias) *Resolver {
	return &Resolver{
		aliases: newAliasTable(aliases),
	}
}

// Aliases lists the derived field names known to r.
func (r *Resolver) Aliases() []string {
	return r.aliases.names()
}

// Resolve returns formula with every recognized token replaced by a numeric
// literal. Missing fields and keys resolve to 0. Text outside tokens is kept
// as is, so unrecognized syntax reaches the evaluator untouched.
func (r *Resolver) Resolve(formula string, src Sources) string {
	return r.substitute(formula, func(t Token) string {
		return literal(r.number(t, src))
	})
}

// Placeholder replaces every token with a neutral literal, leaving only the
// arithmetic skeleton of formula. Used for write-time syntax checks.
func (r *Resolver) Placeholder(formula string) string {
	return r.substitute(formula, func(Token) string {
		return literal(1)
	})
}

// ResolveText resolves a single-reference formula to the raw string it
// points at. Anything other than a single field reference yields "".
func (r *Resolver) ResolveText(formula string, src Sources) string {
	if !IsSingleFieldRef(formula) {
		if l := log.Trace(); l.Enabled() {
			l.Str("formula", formula).Msg("text formula is not a single field reference")
		}
		return ""
	}

	t := Tokenize(strings.TrimSpace(formula))[0]
	candidates := []string{t.Name}
	if t.Kind == KindLegacy {
		candidates = legacyCandidates(t.Name)
	}
	for _, name := range candidates {
		if s, ok := src.Stats.Text(name); ok {
			return s
		}
	}
	if t.Kind == KindLegacy {
		if key, ok := foldedKey(src.Stats, t.Name); ok {
			s, _ := src.Stats.Text(key)
			return s
		}
	}
	return ""
}

func (r *Resolver) substitute(formula string, replace func(Token) string) string {
	matches := tokenPattern.FindAllStringSubmatchIndex(formula, -1)
	if len(matches) == 0 {
		return formula
	}

	var b strings.Builder
	b.Grow(len(formula))
	last := 0
	for _, m := range matches {
		t := tokenFromMatch(formula, m)
		b.WriteString(formula[last:t.Start])
		b.WriteString(replace(t))
		last = t.End
	}
	b.WriteString(formula[last:])
	return b.String()
}

func (r *Resolver) number(t Token, src Sources) float64 {
	switch t.Kind {
	case KindParam:
		if v, ok := src.Params[t.Name]; ok {
			return v
		}
	case KindManual:
		if v, ok := src.Manual[t.Name]; ok {
			return v
		}
	case KindStats:
		if v, ok := r.field(t.Name, src.Stats); ok {
			return v
		}
	case KindLegacy:
		for _, name := range legacyCandidates(t.Name) {
			if v, ok := r.field(name, src.Stats); ok {
				return v
			}
		}
		if key, ok := foldedKey(src.Stats, t.Name); ok {
			v, _ := src.Stats.Number(key)
			return v
		}
		if name, ok := foldedAlias(r.aliases, t.Name); ok {
			v, _ := r.aliases.sum(name, src.Stats)
			return v
		}
	}

	if l := log.Trace(); l.Enabled() {
		l.Str("token", t.Raw).
			Str("kind", t.Kind.String()).
			Msg("token unresolved, defaulting to 0")
	}
	return 0
}

// field resolves a stats name. A value present in the record wins over a
// derived alias of the same name.
func (r *Resolver) field(name string, stats model.StatsRecord) (float64, bool) {
	if stats.Has(name) {
		v, _ := stats.Number(name)
		return v, true
	}
	return r.aliases.sum(name, stats)
}

func foldedKey(stats model.StatsRecord, name string) (string, bool) {
	keys := lo.Filter(lo.Keys(stats), func(k string, _ int) bool {
		return strings.EqualFold(k, name) || strings.EqualFold(k, strings.ReplaceAll(name, "_", ""))
	})
	if len(keys) == 0 {
		return "", false
	}
	sort.Strings(keys)
	return keys[0], true
}

func foldedAlias(aliases aliasTable, name string) (string, bool) {
	flat := strings.ReplaceAll(name, "_", "")
	for _, alias := range aliases.names() {
		if strings.EqualFold(alias, name) || strings.EqualFold(alias, flat) {
			return alias, true
		}
	}
	return "", false
}

// literal renders f as a float literal. Negative numbers are parenthesized so
// that they compose with any surrounding operator.
func literal(f float64) string {
	if f == 0 {
		return "0.0"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	if f < 0 {
		return "(" + s + ")"
	}
	return s
}
