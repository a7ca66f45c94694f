package model

import "seoinspector/internal/util/analyzer"

// PageSnapshot is the first-stage result: everything readable from the
// document head plus the page URL.
type PageSnapshot struct {
	Title             string `json:"title"`
	TitleLength       int    `json:"title_length"`
	Description       string `json:"description"`
	DescriptionLength int    `json:"description_length"`
	URL               string `json:"url"`
	Canonical         string `json:"canonical"`
}

func (p PageSnapshot) TitleFavorable() bool {
	return analyzer.TitleInRange(p.TitleLength)
}

func (p PageSnapshot) DescriptionFavorable() bool {
	return analyzer.DescriptionInRange(p.DescriptionLength)
}

type HeadingRecord struct {
	Tag     string `json:"tag"`
	Text    string `json:"text"`
	Level   int    `json:"level"`
	Flagged bool   `json:"flagged"`
}

type ImageAudit struct {
	Total           int      `json:"total"`
	WithAlt         int      `json:"images_with_alt"`
	WithoutAlt      []string `json:"images_without_alt"`
	NotModernFormat []string `json:"images_not_webp"`
	WithoutSize     []string `json:"images_without_size"`
}

type CrawlabilityInfo struct {
	RobotsText string `json:"robots"`
	// Sitemap is the path of the first sitemap candidate that answered, or "".
	Sitemap                  string `json:"sitemap"`
	SitemapMentionedInRobots bool   `json:"sitemap_mentioned"`
}

// SitemapURL joins the page origin with the discovered sitemap path.
func (c CrawlabilityInfo) SitemapURL(origin string) string {
	if c.Sitemap == "" {
		return ""
	}
	return origin + c.Sitemap
}

// SecondaryResult is the second-stage result, merged with PageSnapshot
// into an SEOReport.
type SecondaryResult struct {
	Headings        []HeadingRecord  `json:"headers"`
	FlaggedHeadings []HeadingRecord  `json:"flagged_headers"`
	Images          ImageAudit       `json:"images"`
	Crawlability    CrawlabilityInfo `json:"crawlability"`
}

type SEOReport struct {
	PageSnapshot
	SecondaryResult
	Origin string `json:"origin"`
}
