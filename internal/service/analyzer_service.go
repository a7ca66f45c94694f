package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"seoinspector/internal/bridge"
	"seoinspector/internal/cache"
	"seoinspector/internal/log"
	"seoinspector/internal/metrics"
	"seoinspector/internal/model"
	"seoinspector/internal/util"
)

var (
	ErrPrimaryExtraction   = errors.New("failed to fetch main SEO data")
	ErrSecondaryExtraction = errors.New("failed to fetch additional SEO data")
)

// Inspector drives one inspection through both extraction stages.
type Inspector struct {
	bridge bridge.Bridge
	prober *Prober
	cache  *cache.ReportCache
}

func NewInspector(b bridge.Bridge, prober *Prober, reports *cache.ReportCache) *Inspector {
	return &Inspector{
		bridge: b,
		prober: prober,
		cache:  reports,
	}
}

// Run opens the target, extracts the primary snapshot and hands it to
// onPrimary before the secondary stage starts. The returned error wraps
// ErrPrimaryExtraction or ErrSecondaryExtraction to say which stage failed;
// onPrimary has been called iff the error is not a primary failure.
func (i *Inspector) Run(ctx context.Context, target string, onPrimary func(*model.PageSnapshot)) (*model.SEOReport, error) {
	if report, ok := i.cache.Get(target); ok {
		log.Logger.Debug("report served from cache", zap.String("url", target))
		if onPrimary != nil {
			snapshot := report.PageSnapshot
			onPrimary(&snapshot)
		}
		return report, nil
	}

	start := time.Now()

	page, err := i.bridge.Open(ctx, target)
	if err != nil {
		return nil, i.fail("primary", ErrPrimaryExtraction, target, err)
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			log.Logger.Warn("failed to close page", zap.String("url", target), zap.Error(cerr))
		}
	}()

	primary, err := i.primary(ctx, page)
	if err != nil {
		return nil, i.fail("primary", ErrPrimaryExtraction, target, err)
	}

	if onPrimary != nil {
		onPrimary(primary)
	}

	secondary, origin, err := i.secondary(ctx, page)
	if err != nil {
		return nil, i.fail("secondary", ErrSecondaryExtraction, target, err)
	}

	report := &model.SEOReport{
		PageSnapshot:    *primary,
		SecondaryResult: *secondary,
		Origin:          origin,
	}

	i.cache.Set(target, report)

	metrics.StageDuration.WithLabelValues("total").Observe(time.Since(start).Seconds())
	log.Logger.Info("inspection finished",
		zap.String("url", target),
		zap.String("bridge", i.bridge.Name()),
		zap.Duration("duration", time.Since(start)),
	)

	return report, nil
}

// Inspect runs both stages and returns the merged report.
func (i *Inspector) Inspect(ctx context.Context, target string) (*model.SEOReport, error) {
	return i.Run(ctx, target, nil)
}

func (i *Inspector) primary(ctx context.Context, page bridge.Page) (*model.PageSnapshot, error) {
	snap, err := page.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return ExtractPrimary(snap)
}

func (i *Inspector) secondary(ctx context.Context, page bridge.Page) (*model.SecondaryResult, string, error) {
	snap, err := page.Snapshot(ctx)
	if err != nil {
		return nil, "", err
	}

	// The probes run against this snapshot's origin, so the sitemap link
	// must be built from it too; the page may have navigated since stage one.
	origin, err := util.Origin(snap.URL)
	if err != nil {
		return nil, "", err
	}

	result, err := ExtractSecondary(ctx, snap, i.prober)
	if err != nil {
		return nil, "", err
	}
	return result, origin, nil
}

func (i *Inspector) fail(stage string, sentinel error, target string, err error) error {
	metrics.InspectionFailures.WithLabelValues(stage).Inc()
	log.Logger.Warn("inspection stage failed",
		zap.String("stage", stage),
		zap.String("url", target),
		zap.Error(err),
	)
	return fmt.Errorf("%w: %w", sentinel, err)
}
