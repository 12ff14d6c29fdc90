package chartio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"exusiai.dev/chartengine/internal/model"
)

const (
	// SupportedMajor is the configuration file major version this build reads.
	SupportedMajor = "v1"

	legacyVersion = "v1.0.0"
)

var (
	ErrUnsupportedVersion = errors.New("unsupported configuration file version")
	ErrUnknownExtension   = errors.New("unknown file extension, expected .json, .yaml or .yml")
)

// ConfigFile is a versioned set of chart configurations.
type ConfigFile struct {
	Version string                      `json:"version"`
	Charts  []*model.ChartConfiguration `json:"charts"`
}

// LoadConfigurations reads a configuration file in JSON or YAML.
func LoadConfigurations(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read configuration file")
	}

	return ParseConfigurations(data, filepath.Ext(path))
}

// ParseConfigurations decodes data according to ext. YAML documents are
// normalized through JSON so that both formats share one set of field tags.
func ParseConfigurations(data []byte, ext string) (*ConfigFile, error) {
	switch strings.ToLower(ext) {
	case ".json":
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "failed to parse yaml configuration")
		}
		normalized, err := json.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(err, "failed to normalize yaml configuration")
		}
		data = normalized
	default:
		return nil, errors.Wrap(ErrUnknownExtension, ext)
	}

	var file ConfigFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse configuration")
	}

	if file.Version == "" {
		log.Warn().
			Str("evt.name", "chartio.config.legacy_version").
			Msgf("configuration file has no version, assuming %s", legacyVersion)
		file.Version = legacyVersion
	}
	if !semver.IsValid(file.Version) || semver.Major(file.Version) != SupportedMajor {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "got %q, want %s.x", file.Version, SupportedMajor)
	}

	return &file, nil
}
