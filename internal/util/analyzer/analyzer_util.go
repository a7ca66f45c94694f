package analyzer

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

var (
	HeadingSelector     = cascadia.MustCompile("h1, h2, h3, h4, h5, h6")
	ImageSelector       = cascadia.MustCompile("img")
	TitleSelector       = cascadia.MustCompile("title")
	DescriptionSelector = cascadia.MustCompile(`meta[name="description"]`)
	CanonicalSelector   = cascadia.MustCompile(`link[rel="canonical" i]`)
	BaseSelector        = cascadia.MustCompile("base[href]")
)

const (
	TitleMinLength       = 50
	TitleMaxLength       = 60
	DescriptionMinLength = 150
	DescriptionMaxLength = 160

	// ModernImageExtension is matched case-sensitively against the resolved src.
	ModernImageExtension = ".webp"

	RobotsPath = "/robots.txt"
)

// SitemapCandidates are probed in this order; the first hit wins.
var SitemapCandidates = []string{"/sitemap.xml", "/sitemap_index.xml"}

func TitleInRange(length int) bool {
	return length >= TitleMinLength && length <= TitleMaxLength
}

func DescriptionInRange(length int) bool {
	return length >= DescriptionMinLength && length <= DescriptionMaxLength
}

// HeadingLevel returns 1..6 for an h1..h6 element (either case) and 0 otherwise.
func HeadingLevel(tag string) int {
	if len(tag) != 2 || (tag[0] != 'h' && tag[0] != 'H') {
		return 0
	}
	if tag[1] < '1' || tag[1] > '6' {
		return 0
	}
	return int(tag[1] - '0')
}

func IsModernImage(src string) bool {
	return strings.HasSuffix(src, ModernImageExtension)
}

// HasAttr reports whether the attribute is present at all, even if empty.
func HasAttr(node *html.Node, key string) bool {
	for _, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return true
		}
	}
	return false
}

// CollapseWhitespace trims and folds ASCII whitespace runs into single
// spaces, the way browsers normalise document.title. NBSP and other Unicode
// spaces are kept.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.FieldsFunc(s, isASCIISpace), " ")
}

func isASCIISpace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}
