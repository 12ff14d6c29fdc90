package formula

import (
	"sort"

	"github.com/samber/lo"

	"exusiai.dev/chartengine/internal/model"
)

// Alias is a derived field computed on the fly as the sum of other fields.
type Alias struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// DefaultAliases are the derived totals every deployment gets.
var DefaultAliases = []Alias{
	{Name: "totalFans", Fields: []string{"remoteFans", "stadium"}},
	{Name: "totalImages", Fields: []string{"remoteImages", "hostessImages", "selfies"}},
	{Name: "totalUnder40", Fields: []string{"genAlpha", "genYZ"}},
	{Name: "totalOver40", Fields: []string{"genX", "boomer"}},
	{Name: "totalVisitors", Fields: []string{"visitQrCode", "visitShortUrl", "visitWeb"}},
}

type aliasTable map[string][]string

func newAliasTable(aliases []Alias) aliasTable {
	t := make(aliasTable, len(aliases))
	for _, a := range aliases {
		t[a.Name] = append([]string(nil), a.Fields...)
	}
	return t
}

func (t aliasTable) sum(name string, stats model.StatsRecord) (float64, bool) {
	fields, ok := t[name]
	if !ok {
		return 0, false
	}
	return lo.SumBy(fields, func(field string) float64 {
		v, _ := stats.Number(field)
		return v
	}), true
}

func (t aliasTable) names() []string {
	names := lo.Keys(t)
	sort.Strings(names)
	return names
}
