package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"seoinspector/internal/bridge"
	"seoinspector/internal/util/analyzer"
)

// document is a parsed snapshot together with the base URL that relative
// references resolve against.
type document struct {
	doc  *goquery.Document
	base *url.URL
}

func parseDocument(snap *bridge.Snapshot) (*document, error) {
	if snap == nil {
		return nil, fmt.Errorf("no document snapshot")
	}

	pageURL, err := url.Parse(snap.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid document URL %q: %w", snap.URL, err)
	}

	root, err := html.Parse(strings.NewReader(snap.HTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	d := &document{
		doc:  goquery.NewDocumentFromNode(root),
		base: pageURL,
	}

	if href, ok := d.doc.FindMatcher(analyzer.BaseSelector).First().Attr("href"); ok {
		if base, err := pageURL.Parse(strings.TrimSpace(href)); err == nil {
			d.base = base
		}
	}

	return d, nil
}

// resolve turns an attribute value into an absolute URL. Values that do not
// parse are returned as-is.
func (d *document) resolve(ref string) string {
	u, err := d.base.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ref
	}
	return u.String()
}
