package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"seoinspector/internal/bridge"
	"seoinspector/internal/cache"
	"seoinspector/internal/model"
)

// fakeBridge serves a fixed document and counts how often it is opened.
type fakeBridge struct {
	url       string
	// laterURL, when set, is reported by every snapshot after the first.
	laterURL  string
	html      string
	openErr   error
	failAfter int
	opens     int
}

func (b *fakeBridge) Name() string { return "fake" }

func (b *fakeBridge) Open(ctx context.Context, target string) (bridge.Page, error) {
	b.opens++
	if b.openErr != nil {
		return nil, b.openErr
	}
	return &fakePage{url: b.url, laterURL: b.laterURL, html: b.html, failAfter: b.failAfter}, nil
}

func (b *fakeBridge) Close() error { return nil }

type fakePage struct {
	url       string
	laterURL  string
	html      string
	failAfter int
	snapshots int
	closed    bool
}

func (p *fakePage) Snapshot(ctx context.Context) (*bridge.Snapshot, error) {
	p.snapshots++
	if p.failAfter > 0 && p.snapshots > p.failAfter {
		return nil, errors.New("page went away")
	}
	url := p.url
	if p.snapshots > 1 && p.laterURL != "" {
		url = p.laterURL
	}
	return &bridge.Snapshot{URL: url, HTML: p.html}, nil
}

func (p *fakePage) Close() error {
	p.closed = true
	return nil
}

const testPage = `<html><head><title>Buy Shoes</title><link rel="canonical" href="/shoes"></head>
<body><h1>Shoes</h1><h3>Sneakers</h3><h2>Boots</h2><img src="/cat.png"></body></html>`

func TestInspectorRun(t *testing.T) {
	site := newSiteServer("", http.StatusNotFound, http.StatusNotFound, http.StatusNotFound)
	defer site.Close()

	b := &fakeBridge{url: site.URL + "/shoes?ref=1", html: testPage}
	insp := NewInspector(b, NewProber("test-agent", 5*time.Second), nil)

	var stages []string
	report, err := insp.Run(context.Background(), site.URL+"/shoes?ref=1", func(p *model.PageSnapshot) {
		stages = append(stages, "primary:"+p.Title)
	})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	stages = append(stages, "done")

	if fmt.Sprint(stages) != "[primary:Buy Shoes done]" {
		t.Errorf("stages = %v, want primary before completion", stages)
	}
	if report.Origin != site.URL {
		t.Errorf("Origin = %q, want %q", report.Origin, site.URL)
	}
	if report.Canonical != site.URL+"/shoes" {
		t.Errorf("Canonical = %q, want %q", report.Canonical, site.URL+"/shoes")
	}
	if report.TitleLength != 9 || report.TitleFavorable() {
		t.Errorf("TitleLength = %d favorable = %v, want 9 and unfavorable", report.TitleLength, report.TitleFavorable())
	}
	if len(report.FlaggedHeadings) != 1 || report.FlaggedHeadings[0].Text != "Sneakers" {
		t.Errorf("FlaggedHeadings = %+v, want only Sneakers", report.FlaggedHeadings)
	}
	if len(report.Images.WithoutAlt) != 1 || len(report.Images.NotModernFormat) != 1 {
		t.Errorf("Images = %+v, want the png in both lists", report.Images)
	}
	if report.Crawlability.Sitemap != "" || report.Crawlability.SitemapMentionedInRobots {
		t.Errorf("Crawlability = %+v, want nothing found", report.Crawlability)
	}
}

func TestInspectorRunPrimaryFailure(t *testing.T) {
	b := &fakeBridge{openErr: errors.New("unexpected status code: 404")}
	insp := NewInspector(b, NewProber("test-agent", time.Second), nil)

	called := false
	_, err := insp.Run(context.Background(), "https://example.com/", func(*model.PageSnapshot) {
		called = true
	})

	if !errors.Is(err, ErrPrimaryExtraction) {
		t.Errorf("Run() error = %v, want ErrPrimaryExtraction", err)
	}
	if errors.Is(err, ErrSecondaryExtraction) {
		t.Error("Run() error should not be a secondary failure")
	}
	if called {
		t.Error("onPrimary called after primary failure")
	}
}

func TestInspectorRunSecondaryFailure(t *testing.T) {
	b := &fakeBridge{url: "https://example.com/", html: testPage, failAfter: 1}
	insp := NewInspector(b, NewProber("test-agent", time.Second), nil)

	called := false
	_, err := insp.Run(context.Background(), "https://example.com/", func(*model.PageSnapshot) {
		called = true
	})

	if !errors.Is(err, ErrSecondaryExtraction) {
		t.Errorf("Run() error = %v, want ErrSecondaryExtraction", err)
	}
	if !called {
		t.Error("onPrimary not called before secondary failure")
	}
}

func TestInspectorUsesCache(t *testing.T) {
	site := newSiteServer("", http.StatusNotFound, http.StatusNotFound, http.StatusNotFound)
	defer site.Close()

	b := &fakeBridge{url: site.URL + "/", html: testPage}
	insp := NewInspector(b, NewProber("test-agent", 5*time.Second), cache.New(time.Minute))

	first, err := insp.Inspect(context.Background(), site.URL+"/")
	if err != nil {
		t.Fatalf("Inspect() unexpected error: %v", err)
	}

	var primaryTitle string
	second, err := insp.Run(context.Background(), site.URL+"/", func(p *model.PageSnapshot) {
		primaryTitle = p.Title
	})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if b.opens != 1 {
		t.Errorf("bridge opened %d times, want 1", b.opens)
	}
	if second != first {
		t.Error("second inspection did not return the cached report")
	}
	if primaryTitle != "Buy Shoes" {
		t.Errorf("onPrimary title = %q, want Buy Shoes", primaryTitle)
	}
}

func TestInspectorWithHTTPBridge(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testPage)
	})
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nSitemap: /sitemap.xml\n")
	})
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<urlset></urlset>")
	})
	mux.HandleFunc("/sitemap_index.xml", http.NotFound)
	server := httptest.NewServer(mux)
	defer server.Close()

	insp := NewInspector(bridge.NewHTTPBridge("test-agent", 5*time.Second), NewProber("test-agent", 5*time.Second), nil)

	report, err := insp.Inspect(context.Background(), server.URL+"/")
	if err != nil {
		t.Fatalf("Inspect() unexpected error: %v", err)
	}

	if report.Crawlability.Sitemap != "/sitemap.xml" {
		t.Errorf("Sitemap = %q, want /sitemap.xml", report.Crawlability.Sitemap)
	}
	if !report.Crawlability.SitemapMentionedInRobots {
		t.Error("SitemapMentionedInRobots = false, want true")
	}
	if got := report.Crawlability.SitemapURL(report.Origin); got != server.URL+"/sitemap.xml" {
		t.Errorf("SitemapURL() = %q, want %q", got, server.URL+"/sitemap.xml")
	}
}

func TestInspectorOriginFollowsSecondarySnapshot(t *testing.T) {
	first := newSiteServer("", http.StatusNotFound, http.StatusNotFound, http.StatusNotFound)
	defer first.Close()
	moved := newSiteServer("", http.StatusNotFound, http.StatusOK, http.StatusNotFound)
	defer moved.Close()

	b := &fakeBridge{url: first.URL + "/shoes", laterURL: moved.URL + "/shoes", html: testPage}
	insp := NewInspector(b, NewProber("test-agent", 5*time.Second), nil)

	report, err := insp.Inspect(context.Background(), first.URL+"/shoes")
	if err != nil {
		t.Fatalf("Inspect() unexpected error: %v", err)
	}

	if report.URL != first.URL+"/shoes" {
		t.Errorf("URL = %q, want the first snapshot URL", report.URL)
	}
	if report.Origin != moved.URL {
		t.Errorf("Origin = %q, want %q", report.Origin, moved.URL)
	}
	if got := report.Crawlability.SitemapURL(report.Origin); got != moved.URL+"/sitemap.xml" {
		t.Errorf("SitemapURL() = %q, want %q", got, moved.URL+"/sitemap.xml")
	}
}
