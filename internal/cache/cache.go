package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"seoinspector/internal/model"
)

// ReportCache keeps finished reports for a short TTL so repeated panel and
// API hits for the same URL skip the fetch and probes.
type ReportCache struct {
	store *gocache.Cache
}

// New returns nil when ttl is not positive; a nil *ReportCache is a valid,
// always-missing cache.
func New(ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		return nil
	}
	return &ReportCache{store: gocache.New(ttl, 2*ttl)}
}

func (c *ReportCache) Get(url string) (*model.SEOReport, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.store.Get(url)
	if !ok {
		return nil, false
	}
	report, ok := v.(*model.SEOReport)
	return report, ok
}

func (c *ReportCache) Set(url string, report *model.SEOReport) {
	if c == nil || report == nil {
		return
	}
	c.store.SetDefault(url, report)
}
