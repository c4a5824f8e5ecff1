package graphseg

import (
	"math"
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Config controls segmentation behavior.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// C is the granularity constant. Larger values favour fewer, larger
	// regions. Must be finite and >= 0. Default: 500.
	C float64

	// MinSize is the smallest component kept after post-processing. Edges
	// are revisited in sorted order and any edge whose endpoints lie in
	// different components, at least one of them smaller than MinSize,
	// joins them regardless of weight. 0 or negative disables
	// post-processing. Default: 50.
	MinSize int

	// Threshold maps component size and C to the tolerance added to the
	// merging edge weight. Default: SizeThreshold (C / size).
	Threshold ThresholdFunc

	// Workers controls the number of goroutines used to sort edges.
	// 0 means use runtime.NumCPU(). The output does not depend on it.
	Workers int

	// Logger receives per-pass debug statistics. Default: no-op.
	Logger *zap.Logger
}

// Result contains the output of segmentation.
type Result struct {
	// Labels assigns each vertex a cluster id in [0, NumClusters). Ids are
	// given in order of first appearance when sweeping vertex ids.
	Labels []int

	// NumClusters is the number of distinct clusters.
	NumClusters int

	// Sizes[k] is the number of vertices labeled k.
	Sizes []int

	// AdaptiveMerges is the number of threshold-gated merges.
	AdaptiveMerges int

	// ForcedMerges is the number of merges made by small-region elimination.
	ForcedMerges int

	// Undersized is the number of clusters still smaller than MinSize,
	// which happens only when they have no edge left to merge along.
	Undersized int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		C:       500,
		MinSize: 50,
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if cfg.C < 0 || math.IsNaN(cfg.C) || math.IsInf(cfg.C, 0) {
		return invalidArgument("C must be finite and >= 0, got %v", cfg.C)
	}
	if cfg.Workers < 0 {
		return invalidArgument("Workers must be >= 0 (0 means runtime.NumCPU()), got %d", cfg.Workers)
	}
	return nil
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Threshold == nil {
		cfg.Threshold = SizeThreshold
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// Segment partitions the vertices of a weighted graph. edges and weights
// are parallel arrays; c is the granularity constant and minSize the
// post-processing size floor (<= 0 disables it). Returns one cluster id per
// vertex, in [0, K).
func Segment(numVertices int, edges []Edge, weights []float64, c float64, minSize int) ([]int, error) {
	cfg := DefaultConfig()
	cfg.C = c
	cfg.MinSize = minSize
	cfg.Workers = 1
	res, err := SegmentGraph(Graph{NumVertices: numVertices, Edges: edges, Weights: weights}, cfg)
	if err != nil {
		return nil, err
	}
	return res.Labels, nil
}

// SegmentGraph runs the full pipeline on g: adaptive merge, optional
// small-region elimination, and relabeling. On any validation error no
// merge is performed and no result is returned.
func SegmentGraph(g Graph, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	log := cfg.Logger.With(
		zap.Int("vertices", g.NumVertices),
		zap.Int("edges", g.NumEdges()),
		zap.Float64("c", cfg.C),
		zap.Int("min_size", cfg.MinSize),
	)

	start := time.Now()
	order := EdgeOrderParallel(g.Weights, cfg.Workers)
	log.Debug("edges sorted", zap.Duration("elapsed", time.Since(start)))

	f, err := NewForest(g.NumVertices, cfg.C)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	adaptive := mergeAdaptive(f, g, order, cfg.C, cfg.Threshold)
	log.Debug("adaptive merge pass complete",
		zap.Int("merges", adaptive),
		zap.Int("components", f.NumSets()),
		zap.Duration("elapsed", time.Since(start)),
	)

	forced := 0
	if cfg.MinSize > 0 {
		start = time.Now()
		forced = mergeSmall(f, g, order, cfg.MinSize)
		log.Debug("small region pass complete",
			zap.Int("merges", forced),
			zap.Int("components", f.NumSets()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}

	labels, sizes := relabel(f)

	undersized := 0
	if cfg.MinSize > 0 {
		for _, s := range sizes {
			if s < cfg.MinSize {
				undersized++
			}
		}
		if undersized > 0 {
			log.Warn("components below min size have no remaining edges",
				zap.Int("undersized", undersized))
		}
	}

	return &Result{
		Labels:         labels,
		NumClusters:    len(sizes),
		Sizes:          sizes,
		AdaptiveMerges: adaptive,
		ForcedMerges:   forced,
		Undersized:     undersized,
	}, nil
}
