package clinput

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"exusiai.dev/chartengine/internal/app/appconfig"
	"exusiai.dev/chartengine/internal/model"
	"exusiai.dev/chartengine/internal/pkg/pgerr"
	"exusiai.dev/chartengine/internal/service"
	"exusiai.dev/chartengine/internal/util/chartio"
)

const (
	FlagConfig = "config"
	FlagStats  = "stats"
	FlagManual = "manual"
	FlagParam  = "param"
	FlagFormat = "format"
	FlagOut    = "out"
)

func ConfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     FlagConfig,
		Aliases:  []string{"c"},
		Usage:    "chart configuration file (.json, .yaml or .yml)",
		Required: true,
	}
}

// CalculationFlags are shared by every command that produces chart results.
func CalculationFlags() []cli.Flag {
	return []cli.Flag{
		ConfigFlag(),
		&cli.StringSliceFlag{
			Name:     FlagStats,
			Aliases:  []string{"s"},
			Usage:    "stats record file (flat JSON object); repeat to calculate several records",
			Required: true,
		},
		&cli.StringFlag{
			Name:    FlagManual,
			Aliases: []string{"m"},
			Usage:   "manual data set file (flat JSON object of numbers)",
		},
		&cli.StringSliceFlag{
			Name:    FlagParam,
			Aliases: []string{"p"},
			Usage:   "parameter as key=value; overrides configuration and environment defaults",
		},
		&cli.StringFlag{
			Name:    FlagFormat,
			Aliases: []string{"f"},
			Usage:   "output format: json or msgpack",
			Value:   string(chartio.FormatJSON),
		},
		&cli.StringFlag{
			Name:    FlagOut,
			Aliases: []string{"o"},
			Usage:   "output file; defaults to stdout",
		},
	}
}

// Inputs are the file locations and overrides a command was invoked with.
// Files are only read by Load so that long running commands see edits.
type Inputs struct {
	ConfigPath string
	StatsPaths []string
	ManualPath string
	Params     model.ParameterSet
	Format     chartio.Format
	Out        string
}

func FromContext(c *cli.Context) (*Inputs, error) {
	format, err := chartio.ParseFormat(c.String(FlagFormat))
	if err != nil {
		return nil, pgerr.ErrInvalidInput.Msg("%s", err.Error())
	}

	params := model.ParameterSet{}
	for _, raw := range c.StringSlice(FlagParam) {
		var pm appconfig.ParameterMap
		if err := pm.Decode(raw); err != nil {
			return nil, pgerr.ErrInvalidInput.Msg("%s", err.Error())
		}
		for k, v := range pm {
			params[k] = v
		}
	}

	return &Inputs{
		ConfigPath: c.String(FlagConfig),
		StatsPaths: c.StringSlice(FlagStats),
		ManualPath: c.String(FlagManual),
		Params:     params,
		Format:     format,
		Out:        c.String(FlagOut),
	}, nil
}

func (in *Inputs) LoadConfigurations() ([]*model.ChartConfiguration, error) {
	file, err := chartio.LoadConfigurations(in.ConfigPath)
	if err != nil {
		return nil, inputError(in.ConfigPath, err)
	}
	return file.Charts, nil
}

// Load reads every input file and assembles a batch request.
func (in *Inputs) Load(ctx context.Context) (service.BatchRequest, error) {
	configs, err := in.LoadConfigurations()
	if err != nil {
		return service.BatchRequest{}, err
	}

	records := make([]service.NamedRecord, 0, len(in.StatsPaths))
	for _, path := range in.StatsPaths {
		stats, err := chartio.LoadStats(path)
		if err != nil {
			return service.BatchRequest{}, inputError(path, err)
		}
		records = append(records, service.NamedRecord{
			Name:  strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Stats: stats,
		})
	}

	var manual model.ManualDataSet
	if in.ManualPath != "" {
		manual, err = chartio.LoadManual(in.ManualPath)
		if err != nil {
			return service.BatchRequest{}, inputError(in.ManualPath, err)
		}
	}

	return service.BatchRequest{
		Configs: configs,
		Records: records,
		Params:  lo.Assign(in.Params),
		Manual:  manual,
	}, nil
}

// Write encodes v to the output file, replacing it atomically, or to stdout.
func (in *Inputs) Write(v any) error {
	if in.Out == "" {
		return chartio.Write(os.Stdout, v, in.Format)
	}

	var buf bytes.Buffer
	if err := chartio.Write(&buf, v, in.Format); err != nil {
		return err
	}

	tmp := in.Out + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, "failed to write output")
	}
	return errors.Wrap(os.Rename(tmp, in.Out), "failed to replace output")
}
