package main

import (
	"context"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/TrevorS/graphseg"
)

// buildGraph turns img into a segmentation input according to cfg.
func buildGraph(img image.Image, cfg config) (graphseg.Graph, int, int, error) {
	metric, err := graphseg.MetricByName(cfg.Metric)
	if err != nil {
		return graphseg.Graph{}, 0, 0, err
	}

	switch cfg.Graph {
	case graphKNN:
		features, w, h := graphseg.SpatialFeatures(img, cfg.SpatialScale)
		g, err := graphseg.NearestNeighborGraph(features, w*h, 5, cfg.K)
		return g, w, h, err
	case graphGrid4, graphGrid8:
		conn := graphseg.Eight
		if cfg.Graph == graphGrid4 {
			conn = graphseg.Four
		}
		features, w, h := graphseg.PixelFeatures(img)
		g, err := graphseg.GridGraph(features, w, h, 3, conn, metric, cfg.Workers)
		return g, w, h, err
	default:
		return graphseg.Graph{}, 0, 0, errors.Errorf("unknown graph %q", cfg.Graph)
	}
}

// segmentFile reads the image at in, segments it and writes the rendering
// to out. The output format follows out's extension.
func segmentFile(ctx context.Context, cfg config, logger *zap.Logger, in, out string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log := logger.With(zap.String("input", in))
	start := time.Now()

	img, err := imaging.Open(in)
	if err != nil {
		return errors.Wrapf(err, "opening %s", in)
	}

	g, w, h, err := buildGraph(img, cfg)
	if err != nil {
		return errors.Wrapf(err, "building graph for %s", in)
	}
	log.Debug("graph built",
		zap.String("graph", cfg.Graph),
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("edges", g.NumEdges()),
	)

	segCfg := graphseg.DefaultConfig()
	segCfg.C = cfg.C
	segCfg.MinSize = cfg.MinSize
	segCfg.Workers = cfg.Workers
	segCfg.Logger = log
	res, err := graphseg.SegmentGraph(g, segCfg)
	if err != nil {
		return errors.Wrapf(err, "segmenting %s", in)
	}

	var rendered *image.NRGBA
	switch cfg.Render {
	case renderMean:
		rendered, err = graphseg.MeanColor(res.Labels, img)
	default:
		rendered, err = graphseg.Colorize(res.Labels, w, h, graphseg.RandomPalette(res.NumClusters, cfg.Seed))
	}
	if err != nil {
		return errors.Wrapf(err, "rendering %s", in)
	}

	if err := imaging.Save(rendered, out); err != nil {
		return errors.Wrapf(err, "writing %s", out)
	}
	log.Info("segmented",
		zap.String("output", out),
		zap.Int("clusters", res.NumClusters),
		zap.Int("undersized", res.Undersized),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
