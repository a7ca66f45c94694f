package cache

import (
	"testing"
	"time"

	"seoinspector/internal/model"
)

func TestReportCache(t *testing.T) {
	c := New(time.Minute)

	if _, ok := c.Get("https://example.com/"); ok {
		t.Fatal("Get() hit on empty cache")
	}

	report := &model.SEOReport{PageSnapshot: model.PageSnapshot{Title: "Buy Shoes"}}
	c.Set("https://example.com/", report)

	got, ok := c.Get("https://example.com/")
	if !ok {
		t.Fatal("Get() missed after Set()")
	}
	if got.Title != "Buy Shoes" {
		t.Errorf("Get().Title = %q, want Buy Shoes", got.Title)
	}
}

func TestReportCacheDisabled(t *testing.T) {
	c := New(0)
	if c != nil {
		t.Fatal("New(0) should return nil")
	}

	c.Set("https://example.com/", &model.SEOReport{})
	if _, ok := c.Get("https://example.com/"); ok {
		t.Error("disabled cache returned a hit")
	}
}

func TestReportCacheExpiry(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.Set("https://example.com/", &model.SEOReport{})

	time.Sleep(50 * time.Millisecond)

	if _, ok := c.Get("https://example.com/"); ok {
		t.Error("Get() returned an expired entry")
	}
}
