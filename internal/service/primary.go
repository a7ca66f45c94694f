package service

import (
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"seoinspector/internal/bridge"
	"seoinspector/internal/log"
	"seoinspector/internal/metrics"
	"seoinspector/internal/model"
	"seoinspector/internal/util/analyzer"
)

// ExtractPrimary reads title, meta description, URL and canonical link from
// the snapshot. Missing elements yield empty strings.
func ExtractPrimary(snap *bridge.Snapshot) (*model.PageSnapshot, error) {
	start := time.Now()

	d, err := parseDocument(snap)
	if err != nil {
		return nil, err
	}

	title := extractTitle(d)
	description := extractDescription(d)

	page := &model.PageSnapshot{
		Title:             title,
		TitleLength:       utf8.RuneCountInString(title),
		Description:       description,
		DescriptionLength: utf8.RuneCountInString(description),
		URL:               snap.URL,
		Canonical:         extractCanonical(d),
	}

	metrics.StageDuration.WithLabelValues("primary").Observe(time.Since(start).Seconds())
	log.Logger.Debug("primary extraction done",
		zap.String("url", page.URL),
		zap.Int("title_length", page.TitleLength),
		zap.Int("description_length", page.DescriptionLength),
	)

	return page, nil
}

// fetch the title the way document.title reports it; <title> inside inline
// SVG or MathML does not count
func extractTitle(d *document) string {
	title := d.doc.FindMatcher(analyzer.TitleSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Get(0).Namespace == ""
	}).First()
	return analyzer.CollapseWhitespace(title.Text())
}

func extractDescription(d *document) string {
	return d.doc.FindMatcher(analyzer.DescriptionSelector).First().AttrOr("content", "")
}

func extractCanonical(d *document) string {
	href, ok := d.doc.FindMatcher(analyzer.CanonicalSelector).First().Attr("href")
	if !ok {
		return ""
	}
	return d.resolve(href)
}
