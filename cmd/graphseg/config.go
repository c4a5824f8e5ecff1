package main

import (
	"math"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/TrevorS/graphseg"
)

const (
	graphGrid4 = "grid4"
	graphGrid8 = "grid8"
	graphKNN   = "knn"

	renderRandom = "random"
	renderMean   = "mean"
)

// config holds every tunable of a segmentation run. It can be loaded from
// a TOML file; flags given on the command line take precedence.
type config struct {
	C            float64 `toml:"c"`
	MinSize      int     `toml:"min_size"`
	Graph        string  `toml:"graph"`
	K            int     `toml:"k"`
	SpatialScale float64 `toml:"spatial_scale"`
	Metric       string  `toml:"metric"`
	Render       string  `toml:"render"`
	Seed         int64   `toml:"seed"`
	Workers      int     `toml:"workers"`
}

func defaultConfig() config {
	seg := graphseg.DefaultConfig()
	return config{
		C:            seg.C,
		MinSize:      seg.MinSize,
		Graph:        graphGrid8,
		K:            10,
		SpatialScale: 1,
		Metric:       "euclidean",
		Render:       renderRandom,
		Seed:         1,
		Workers:      runtime.NumCPU(),
	}
}

// loadConfig decodes path over the defaults. Unknown keys are an error.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// applyFlags overrides cfg with every flag explicitly set on c.
func applyFlags(c *cli.Context, cfg *config) {
	if c.IsSet(flagC) {
		cfg.C = c.Float64(flagC)
	}
	if c.IsSet(flagMinSize) {
		cfg.MinSize = c.Int(flagMinSize)
	}
	if c.IsSet(flagGraph) {
		cfg.Graph = c.String(flagGraph)
	}
	if c.IsSet(flagK) {
		cfg.K = c.Int(flagK)
	}
	if c.IsSet(flagSpatialScale) {
		cfg.SpatialScale = c.Float64(flagSpatialScale)
	}
	if c.IsSet(flagMetric) {
		cfg.Metric = c.String(flagMetric)
	}
	if c.IsSet(flagRender) {
		cfg.Render = c.String(flagRender)
	}
	if c.IsSet(flagSeed) {
		cfg.Seed = c.Int64(flagSeed)
	}
	if c.IsSet(flagWorkers) {
		cfg.Workers = c.Int(flagWorkers)
	}
}

// validate reports every invalid field at once.
func (cfg config) validate() error {
	var err error
	if cfg.C < 0 || math.IsNaN(cfg.C) || math.IsInf(cfg.C, 0) {
		err = multierr.Append(err, errors.Errorf("c must be finite and >= 0, got %v", cfg.C))
	}
	switch cfg.Graph {
	case graphGrid4, graphGrid8:
	case graphKNN:
		if cfg.K < 1 {
			err = multierr.Append(err, errors.Errorf("k must be >= 1, got %d", cfg.K))
		}
		if cfg.SpatialScale < 0 || math.IsNaN(cfg.SpatialScale) || math.IsInf(cfg.SpatialScale, 0) {
			err = multierr.Append(err, errors.Errorf("spatial scale must be finite and >= 0, got %v", cfg.SpatialScale))
		}
	default:
		err = multierr.Append(err, errors.Errorf("graph must be %q, %q or %q, got %q", graphGrid4, graphGrid8, graphKNN, cfg.Graph))
	}
	if _, merr := graphseg.MetricByName(cfg.Metric); merr != nil {
		err = multierr.Append(err, merr)
	}
	if cfg.Render != renderRandom && cfg.Render != renderMean {
		err = multierr.Append(err, errors.Errorf("render must be %q or %q, got %q", renderRandom, renderMean, cfg.Render))
	}
	if cfg.Workers < 0 {
		err = multierr.Append(err, errors.Errorf("workers must be >= 0, got %d", cfg.Workers))
	}
	return err
}
