package service

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"seoinspector/internal/model"
	"seoinspector/internal/util/analyzer"
)

// collectHeadings returns h1..h6 elements in document order.
func collectHeadings(d *document) []model.HeadingRecord {
	sel := d.doc.FindMatcher(analyzer.HeadingSelector)
	records := make([]model.HeadingRecord, 0, sel.Length())

	sel.Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		records = append(records, model.HeadingRecord{
			Tag:   strings.ToUpper(tag),
			Text:  strings.TrimSpace(s.Text()),
			Level: analyzer.HeadingLevel(tag),
		})
	})

	return records
}

// flagHeadings marks every heading that skips more than one level below the
// heading immediately before it. The comparison always uses the raw previous
// heading, flagged or not, so H1 H3 H2 flags only the H3.
func flagHeadings(headings []model.HeadingRecord) (all, flagged []model.HeadingRecord) {
	all = make([]model.HeadingRecord, len(headings))
	flagged = make([]model.HeadingRecord, 0)

	lastLevel := 0
	for i, h := range headings {
		h.Flagged = h.Level > lastLevel+1
		if h.Flagged {
			flagged = append(flagged, h)
		}
		lastLevel = h.Level
		all[i] = h
	}

	return all, flagged
}
