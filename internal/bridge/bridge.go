// Package bridge opens pages for inspection and hands back snapshots of
// their current document.
package bridge

import (
	"context"
	"fmt"

	"seoinspector/internal/config"
)

// Bridge opens a target URL and keeps it available for repeated snapshots.
type Bridge interface {
	// Name returns the bridge identifier ("http" or "rod").
	Name() string

	Open(ctx context.Context, target string) (Page, error)

	Close() error
}

// Page is an opened document. Each Snapshot reflects the document as it is
// at call time, so two stages may observe different DOM states on a live page.
type Page interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
	Close() error
}

// Snapshot is the serialized document plus the URL it was loaded from after
// redirects.
type Snapshot struct {
	URL  string
	HTML string
}

// New builds the bridge selected by cfg.Bridge.
func New(cfg *config.Config) (Bridge, error) {
	switch cfg.Bridge {
	case config.BridgeHTTP:
		return NewHTTPBridge(cfg.UserAgent, cfg.FetchTimeout), nil
	case config.BridgeRod:
		return NewRodBridge(RodOptions{
			Bin:       cfg.BrowserBin,
			Headless:  cfg.BrowserHeadless,
			NoSandbox: cfg.BrowserNoSandbox,
			Stealth:   cfg.BrowserStealth,
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.FetchTimeout,
		})
	default:
		return nil, fmt.Errorf("unknown bridge %q", cfg.Bridge)
	}
}
