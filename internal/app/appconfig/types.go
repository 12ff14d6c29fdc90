package appconfig

import (
	"fmt"
	"strconv"
	"strings"

	"exusiai.dev/chartengine/internal/model"
)

type ParameterMap model.ParameterSet

func (m *ParameterMap) Decode(value string) error {
	*m = ParameterMap{}
	for _, pair := range strings.Split(value, ",") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return fmt.Errorf("invalid parameter map: expect a `=` separated key pair for each element, but got: %s", value)
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
		if err != nil {
			return fmt.Errorf("invalid value in parameter map for key %s: %w", kv[0], err)
		}
		(*m)[strings.TrimSpace(kv[0])] = val
	}
	return nil
}
