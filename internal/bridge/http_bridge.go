package bridge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"seoinspector/internal/log"
)

// maxBodyBytes caps how much of a page is read into memory.
const maxBodyBytes = 10 << 20

// HTTPBridge fetches the raw HTML once per Open. No scripts run, so the
// snapshot is the document as served.
type HTTPBridge struct {
	client    *http.Client
	userAgent string
}

func NewHTTPBridge(userAgent string, timeout time.Duration) *HTTPBridge {
	return &HTTPBridge{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
	}
}

func (b *HTTPBridge) Name() string { return "http" }

func (b *HTTPBridge) Open(ctx context.Context, target string) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("http bridge: build request: %w", err)
	}
	req.Header.Set("User-Agent", b.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := b.client.Do(req)
	if err != nil {
		log.Logger.Error("failed to fetch URL",
			zap.String("url", target),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Logger.Warn("unexpected status code",
			zap.String("url", target),
			zap.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Logger.Warn("failed to read response body",
			zap.String("url", target),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log.Logger.Info("successfully fetched page",
		zap.String("url", target),
		zap.String("final_url", resp.Request.URL.String()),
		zap.Int("content_length", len(body)),
		zap.Int("status_code", resp.StatusCode),
	)

	return &staticPage{
		snapshot: Snapshot{
			URL:  resp.Request.URL.String(),
			HTML: string(body),
		},
	}, nil
}

func (b *HTTPBridge) Close() error {
	b.client.CloseIdleConnections()
	return nil
}

// staticPage serves the same fetched document to every stage.
type staticPage struct {
	snapshot Snapshot
}

func (p *staticPage) Snapshot(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := p.snapshot
	return &s, nil
}

func (p *staticPage) Close() error { return nil }

// StaticPage wraps an already-available document as a Page.
func StaticPage(url, html string) Page {
	return &staticPage{snapshot: Snapshot{URL: url, HTML: html}}
}
