package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"seoinspector/internal/bridge"
	"seoinspector/internal/log"
	"seoinspector/internal/metrics"
	"seoinspector/internal/model"
	"seoinspector/internal/util"
)

// ExtractSecondary collects headings and image findings from the snapshot
// while the crawlability probes run against the page origin.
func ExtractSecondary(ctx context.Context, snap *bridge.Snapshot, prober *Prober) (*model.SecondaryResult, error) {
	start := time.Now()

	d, err := parseDocument(snap)
	if err != nil {
		return nil, err
	}

	origin, err := util.Origin(snap.URL)
	if err != nil {
		return nil, err
	}

	crawl := make(chan model.CrawlabilityInfo, 1)
	go func() {
		crawl <- prober.Probe(ctx, origin)
	}()

	headings, flagged := flagHeadings(collectHeadings(d))
	images := auditImages(d)

	result := &model.SecondaryResult{
		Headings:        headings,
		FlaggedHeadings: flagged,
		Images:          images,
		Crawlability:    <-crawl,
	}

	// Probes swallow their own errors; a cancelled request must not pass
	// their empty values off as real findings.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metrics.StageDuration.WithLabelValues("secondary").Observe(time.Since(start).Seconds())
	log.Logger.Debug("secondary extraction done",
		zap.String("url", snap.URL),
		zap.Int("headings", len(headings)),
		zap.Int("flagged_headings", len(flagged)),
		zap.Int("images", images.Total),
		zap.String("sitemap", result.Crawlability.Sitemap),
	)

	return result, nil
}
