package service

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"seoinspector/internal/log"
	"seoinspector/internal/metrics"
	"seoinspector/internal/model"
	"seoinspector/internal/util/analyzer"
)

const (
	maxRobotsBytes = 1 << 20
	// sitemap bodies are only drained so the connection can be reused
	maxDrainBytes = 64 << 10
)

// Prober runs the best-effort robots.txt and sitemap checks against a site
// origin. A failed probe, for whatever reason, reads as absent.
type Prober struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
}

func NewProber(userAgent string, timeout time.Duration) *Prober {
	return &Prober{
		client:    &http.Client{},
		userAgent: userAgent,
		timeout:   timeout,
	}
}

type probeResult struct {
	ok   bool
	body string
}

// Probe requests robots.txt and every sitemap candidate concurrently and
// waits for all of them to settle.
func (p *Prober) Probe(ctx context.Context, origin string) model.CrawlabilityInfo {
	start := time.Now()

	paths := append([]string{analyzer.RobotsPath}, analyzer.SitemapCandidates...)
	results := make([]probeResult, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			results[i] = p.fetch(ctx, origin, path, i == 0)
		}(i, path)
	}
	wg.Wait()

	info := model.CrawlabilityInfo{RobotsText: results[0].body}

	for i, candidate := range analyzer.SitemapCandidates {
		if results[i+1].ok {
			info.Sitemap = candidate
			break
		}
	}

	for _, candidate := range analyzer.SitemapCandidates {
		if strings.Contains(info.RobotsText, candidate) {
			info.SitemapMentionedInRobots = true
			break
		}
	}

	metrics.StageDuration.WithLabelValues("probes").Observe(time.Since(start).Seconds())
	return info
}

// fetch GETs origin+path and reports success only for a 2xx answer.
func (p *Prober) fetch(ctx context.Context, origin, path string, readBody bool) probeResult {
	result := p.do(ctx, origin+path, readBody)

	outcome := metrics.OutcomeAbsent
	if result.ok {
		outcome = metrics.OutcomeFound
	}
	metrics.ProbesTotal.WithLabelValues(path, outcome).Inc()

	return result
}

func (p *Prober) do(ctx context.Context, target string, readBody bool) probeResult {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		log.Logger.Debug("probe request not built", zap.String("url", target), zap.Error(err))
		return probeResult{}
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		log.Logger.Debug("probe failed", zap.String("url", target), zap.Error(err))
		return probeResult{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Logger.Debug("probe not found",
			zap.String("url", target),
			zap.Int("status_code", resp.StatusCode),
		)
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))
		return probeResult{}
	}

	if !readBody {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))
		return probeResult{ok: true}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBytes))
	if err != nil {
		log.Logger.Debug("probe body unreadable", zap.String("url", target), zap.Error(err))
		return probeResult{}
	}

	return probeResult{ok: true, body: string(body)}
}
