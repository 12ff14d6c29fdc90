package chartio

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"exusiai.dev/chartengine/internal/model"
)

var ErrNotAnObject = errors.New("record must be a flat JSON object")

// LoadStats reads a flat stats record from a JSON file.
func LoadStats(path string) (model.StatsRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read stats file")
	}
	return ParseStats(data)
}

// ParseStats keeps numbers and strings. Booleans become 1 or 0; nested values
// are skipped since the record is flat by contract.
func ParseStats(data []byte) (model.StatsRecord, error) {
	root, err := parseObject(data)
	if err != nil {
		return nil, err
	}

	stats := model.StatsRecord{}
	root.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.Number:
			stats[key.String()] = value.Float()
		case gjson.String:
			stats[key.String()] = value.String()
		case gjson.True:
			stats[key.String()] = 1.0
		case gjson.False:
			stats[key.String()] = 0.0
		case gjson.Null:
		default:
			log.Warn().
				Str("evt.name", "chartio.stats.nested_skipped").
				Str("field", key.String()).
				Msg("nested value in stats record skipped")
		}
		return true
	})

	return stats, nil
}

// LoadManual reads a manual data set from a JSON file.
func LoadManual(path string) (model.ManualDataSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read manual data file")
	}
	return ParseManual(data)
}

// ParseManual keeps numeric entries only.
func ParseManual(data []byte) (model.ManualDataSet, error) {
	root, err := parseObject(data)
	if err != nil {
		return nil, err
	}

	manual := model.ManualDataSet{}
	root.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number {
			log.Warn().
				Str("evt.name", "chartio.manual.non_numeric_skipped").
				Str("key", key.String()).
				Msg("non-numeric manual data entry skipped")
			return true
		}
		manual[key.String()] = value.Float()
		return true
	})

	return manual, nil
}

func parseObject(data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, errors.Wrap(ErrNotAnObject, "invalid json")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return gjson.Result{}, ErrNotAnObject
	}
	return root, nil
}
