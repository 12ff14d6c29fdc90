package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"exusiai.dev/chartengine/internal/model"
)

func newTestSources() Sources {
	return Sources{
		Stats: model.StatsRecord{
			"female":     700,
			"male":       612,
			"x":          3,
			"remoteFans": 40,
			"stadium":    "60",
			"negative":   -5,
			"headline":   "Sold out!",
			"totalFans":  1000,
			"VIPGuests":  9,
		},
		Params: model.ParameterSet{"price": 12.5},
		Manual: model.ManualDataSet{"extra": 7},
	}
}

func TestResolve(t *testing.T) {
	r := NewResolver(DefaultAliases)
	src := newTestSources()

	type testCase struct {
		formula string
		expect  string
	}

	testCases := []testCase{
		{"[stats.female] + [stats.male]", "700.0 + 612.0"},
		{"stats.female + stats.male", "700.0 + 612.0"},
		{"[stats.x] + stats.x", "3.0 + 3.0"},
		{"[PARAM:price] * 2", "12.5 * 2"},
		{"[MANUAL:extra]", "7.0"},
		{"[stats.missing] + [PARAM:missing] + [MANUAL:missing]", "0.0 + 0.0 + 0.0"},
		{"stats.negative * 2", "(-5.0) * 2"},
		{"[stats. female]", "[stats. female]"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expect, r.Resolve(tc.formula, src), "formula: %s", tc.formula)
	}
}

func TestResolveSubstitutesEachTokenOnce(t *testing.T) {
	r := NewResolver(nil)
	src := Sources{Stats: model.StatsRecord{"x": 3}}

	resolved := r.Resolve("[stats.x] + stats.x", src)

	assert.Equal(t, "3.0 + 3.0", resolved)
	assert.NotContains(t, resolved, "stats")
}

func TestResolveLegacy(t *testing.T) {
	r := NewResolver(DefaultAliases)
	src := newTestSources()

	assert.Equal(t, "40.0", r.Resolve("[remoteFans]", src), "exact key")
	assert.Equal(t, "40.0", r.Resolve("[REMOTE_FANS]", src), "upper snake")
	assert.Equal(t, "700.0", r.Resolve("[FEMALE]", src), "lower case")
	assert.Equal(t, "9.0", r.Resolve("[vipguests]", src), "case-insensitive")
	assert.Equal(t, "0.0", r.Resolve("[NOPE]", src), "missing")
}

func TestResolveAliases(t *testing.T) {
	r := NewResolver(DefaultAliases)

	src := Sources{Stats: model.StatsRecord{"remoteFans": 40, "stadium": "60"}}
	assert.Equal(t, "100.0", r.Resolve("stats.totalFans", src))
	assert.Equal(t, "100.0", r.Resolve("[TOTAL_FANS]", src))
	assert.Equal(t, "0.0", r.Resolve("[stats.totalVisitors]", src))

	// a field present in the record wins over the alias of the same name
	assert.Equal(t, "1000.0", r.Resolve("stats.totalFans", newTestSources()))
}

func TestResolveDoesNotMutateSources(t *testing.T) {
	r := NewResolver(DefaultAliases)
	src := newTestSources()
	before := len(src.Stats)

	_ = r.Resolve("stats.totalImages + [PARAM:nope]", src)

	assert.Len(t, src.Stats, before)
	assert.Len(t, src.Params, 1)
}

func TestResolveText(t *testing.T) {
	r := NewResolver(DefaultAliases)
	src := newTestSources()

	assert.Equal(t, "Sold out!", r.ResolveText("stats.headline", src))
	assert.Equal(t, "Sold out!", r.ResolveText("[HEADLINE]", src))
	assert.Equal(t, "612", r.ResolveText("[stats.male]", src))
	assert.Equal(t, "", r.ResolveText("stats.missing", src))
	assert.Equal(t, "", r.ResolveText("stats.headline + stats.male", src))
	assert.Equal(t, "", r.ResolveText("[PARAM:price]", src))
}

func TestPlaceholder(t *testing.T) {
	r := NewResolver(nil)

	assert.Equal(t, "1.0 / (1.0 + 1.0)", r.Placeholder("stats.a / ([PARAM:b] + [MANUAL:c])"))
	assert.Equal(t, "1.0 +* 2", r.Placeholder("stats.a +* 2"))
}

func TestMergeParams(t *testing.T) {
	defaults := model.ParameterSet{"price": 10, "seats": 100}
	overrides := model.ParameterSet{"price": 12}

	merged := MergeParams(defaults, overrides)

	assert.Equal(t, model.ParameterSet{"price": 12, "seats": 100}, merged)
	assert.Equal(t, 10.0, defaults["price"])
}

func TestAliases(t *testing.T) {
	r := NewResolver(append(DefaultAliases, Alias{Name: "totalMerch", Fields: []string{"jersey", "scarf"}}))

	assert.Equal(t, []string{"totalFans", "totalImages", "totalMerch", "totalOver40", "totalUnder40", "totalVisitors"}, r.Aliases())
}
