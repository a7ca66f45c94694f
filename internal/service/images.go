package service

import (
	"github.com/PuerkitoBio/goquery"
	"seoinspector/internal/model"
	"seoinspector/internal/util/analyzer"
)

// auditImages sorts every <img> into the three offender lists. One image can
// appear in several lists.
func auditImages(d *document) model.ImageAudit {
	audit := model.ImageAudit{
		WithoutAlt:      []string{},
		NotModernFormat: []string{},
		WithoutSize:     []string{},
	}

	d.doc.FindMatcher(analyzer.ImageSelector).Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)

		src := ""
		if raw, ok := s.Attr("src"); ok {
			src = d.resolve(raw)
		}

		audit.Total++
		if !analyzer.HasAttr(node, "alt") {
			audit.WithoutAlt = append(audit.WithoutAlt, src)
		}
		if !analyzer.IsModernImage(src) {
			audit.NotModernFormat = append(audit.NotModernFormat, src)
		}
		if !analyzer.HasAttr(node, "width") || !analyzer.HasAttr(node, "height") {
			audit.WithoutSize = append(audit.WithoutSize, src)
		}
	})

	audit.WithAlt = audit.Total - len(audit.WithoutAlt)
	return audit
}
