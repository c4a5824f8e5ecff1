// Package main is the graphseg command: segment images into regions of
// similar colour and write a rendering of the result.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	// Register the webp decoder for imaging.Open.
	_ "golang.org/x/image/webp"
)

const (
	// Flags.
	flagConfig       = "config"
	flagC            = "c"
	flagMinSize      = "min-size"
	flagGraph        = "graph"
	flagK            = "k"
	flagSpatialScale = "spatial-scale"
	flagMetric       = "metric"
	flagRender       = "render"
	flagSeed         = "seed"
	flagWorkers      = "workers"
	flagDebug        = "debug"
	flagOutDir       = "out-dir"
	flagJobs         = "jobs"
)

func main() {
	if err := realMain(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "graphseg:", err)
		os.Exit(1)
	}
}

// segmentFlags returns fresh copies of the flags shared by every command.
func segmentFlags() []cli.Flag {
	def := defaultConfig()
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Usage:   "TOML file with default settings; flags override it",
			EnvVars: []string{"GRAPHSEG_CONFIG"},
		},
		&cli.Float64Flag{
			Name:    flagC,
			Value:   def.C,
			Usage:   "granularity constant; larger values give fewer, larger regions",
			EnvVars: []string{"GRAPHSEG_C"},
		},
		&cli.IntFlag{
			Name:    flagMinSize,
			Value:   def.MinSize,
			Usage:   "merge away regions smaller than this many pixels (<= 0 disables)",
			EnvVars: []string{"GRAPHSEG_MIN_SIZE"},
		},
		&cli.StringFlag{
			Name:  flagGraph,
			Value: def.Graph,
			Usage: "pixel graph: grid4, grid8 or knn",
		},
		&cli.IntFlag{
			Name:  flagK,
			Value: def.K,
			Usage: "neighbours per pixel for the knn graph",
		},
		&cli.Float64Flag{
			Name:  flagSpatialScale,
			Value: def.SpatialScale,
			Usage: "weight of pixel position relative to colour for the knn graph",
		},
		&cli.StringFlag{
			Name:  flagMetric,
			Value: def.Metric,
			Usage: "colour dissimilarity for grid graphs: euclidean, manhattan or chebyshev",
		},
		&cli.StringFlag{
			Name:  flagRender,
			Value: def.Render,
			Usage: "output rendering: random colours or region mean colours",
		},
		&cli.Int64Flag{
			Name:  flagSeed,
			Value: def.Seed,
			Usage: "seed of the random palette",
		},
		&cli.IntFlag{
			Name:    flagWorkers,
			Value:   def.Workers,
			Usage:   "goroutines for edge weighting and sorting",
			EnvVars: []string{"GRAPHSEG_WORKERS"},
		},
		&cli.BoolFlag{
			Name:  flagDebug,
			Usage: "log per-pass statistics",
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "graphseg",
		Usage:     "graph-based image segmentation",
		ArgsUsage: "INPUT OUTPUT",
		Flags:     segmentFlags(),
		Action:    segmentAction,
		Commands: []*cli.Command{
			{
				Name:      "batch",
				Usage:     "segment many images concurrently",
				ArgsUsage: "INPUT...",
				Flags: append(segmentFlags(),
					&cli.StringFlag{
						Name:     flagOutDir,
						Usage:    "directory for the renderings, named after each input",
						Required: true,
					},
					&cli.IntFlag{
						Name:  flagJobs,
						Value: 2,
						Usage: "images segmented at once",
					},
				),
				Action: batchAction,
			},
		},
	}
}

func realMain(args []string) error {
	return newApp().Run(append([]string{"graphseg"}, args...))
}

// setup resolves the effective config and logger for c.
func setup(c *cli.Context) (config, *zap.Logger, error) {
	cfg, err := loadConfig(c.String(flagConfig))
	if err != nil {
		return cfg, nil, err
	}
	applyFlags(c, &cfg)
	if err := cfg.validate(); err != nil {
		return cfg, nil, err
	}
	logger, err := newLogger(c.Bool(flagDebug))
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}

func segmentAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.Errorf("need INPUT and OUTPUT, got %d arguments", c.NArg())
	}
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	return segmentFile(c.Context, cfg, logger, c.Args().Get(0), c.Args().Get(1))
}

func batchAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("need at least one INPUT")
	}
	jobs := c.Int(flagJobs)
	if jobs < 1 {
		return errors.Errorf("jobs must be >= 1, got %d", jobs)
	}
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	outDir := c.String(flagOutDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", outDir)
	}

	// Each image gets its own forest, so runs share nothing.
	g, ctx := errgroup.WithContext(c.Context)
	g.SetLimit(jobs)
	for _, in := range c.Args().Slice() {
		in := in
		out := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))+".png")
		g.Go(func() error {
			return segmentFile(ctx, cfg, logger, in, out)
		})
	}
	return g.Wait()
}

// newLogger returns a console logger on stderr, at debug level when debug
// is set.
func newLogger(debug bool) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if debug {
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg := zap.Config{
		Level:    level,
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	return cfg.Build()
}
