package chartio

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"exusiai.dev/chartengine/internal/pkg/formula"
)

// AliasesFile declares derived fields, e.g.
//
//	aliases:
//	  - name: totalMerch
//	    fields: [merched, jersey, scarf]
type AliasesFile struct {
	Aliases []AliasEntry `yaml:"aliases"`
}

type AliasEntry struct {
	Name   string   `yaml:"name"`
	Fields []string `yaml:"fields"`
}

func LoadAliases(path string) ([]formula.Alias, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read aliases file")
	}

	var file AliasesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse aliases file")
	}

	aliases := make([]formula.Alias, 0, len(file.Aliases))
	for i, entry := range file.Aliases {
		if entry.Name == "" || len(entry.Fields) == 0 {
			return nil, errors.Errorf("alias %d: name and fields are required", i)
		}
		aliases = append(aliases, formula.Alias{Name: entry.Name, Fields: entry.Fields})
	}

	return aliases, nil
}
