package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"
	"go.uber.org/zap"
	"seoinspector/internal/log"
)

type RodOptions struct {
	Bin       string
	Headless  bool
	NoSandbox bool
	Stealth   bool
	UserAgent string
	// Timeout bounds navigation and the initial load wait.
	Timeout time.Duration
}

// RodBridge renders pages in a headless Chromium so scripts run before the
// document is read. Every Open gets its own tab.
type RodBridge struct {
	browser *rod.Browser
	opts    RodOptions
}

func NewRodBridge(opts RodOptions) (*RodBridge, error) {
	l := launcher.New().
		Headless(opts.Headless).
		NoSandbox(opts.NoSandbox)
	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("rod bridge: launch browser: %w", err)
	}
	log.Logger.Info("browser launched", zap.String("control_url", controlURL))

	browser := rod.New().ControlURL(controlURL)
	if err := connectOrKill(browser.Connect, l.Kill); err != nil {
		return nil, fmt.Errorf("rod bridge: connect to browser: %w", err)
	}

	return &RodBridge{browser: browser, opts: opts}, nil
}

// connectOrKill stops the launched browser process when the CDP connection
// cannot be established, otherwise it would outlive the failed bridge.
func connectOrKill(connect func() error, kill func()) error {
	if err := connect(); err != nil {
		kill()
		return err
	}
	return nil
}

func (b *RodBridge) Name() string { return "rod" }

func (b *RodBridge) Open(ctx context.Context, target string) (Page, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("rod bridge: create page: %w", err)
	}

	opened := false
	defer func() {
		if !opened {
			_ = page.Close()
		}
	}()

	// Must be installed before navigation to affect the loaded document.
	if b.opts.Stealth {
		if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
			log.Logger.Warn("stealth injection failed, proceeding without stealth", zap.Error(err))
		}
	}

	if b.opts.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: b.opts.UserAgent}); err != nil {
			log.Logger.Warn("failed to set user agent", zap.Error(err))
		}
	}
	if err := (proto.NetworkSetExtraHTTPHeaders{
		Headers: proto.NetworkHeaders{"Accept-Language": gson.New("en-US,en;q=0.9")},
	}).Call(page); err != nil {
		log.Logger.Warn("failed to set extra headers", zap.Error(err))
	}

	navCtx, cancel := context.WithTimeout(ctx, b.opts.Timeout)
	defer cancel()
	p := page.Context(navCtx)

	if err := p.Navigate(target); err != nil {
		return nil, fmt.Errorf("rod bridge: navigate to %s: %w", target, err)
	}
	if err := p.WaitLoad(); err != nil {
		return nil, fmt.Errorf("rod bridge: wait for load: %w", err)
	}
	if err := p.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		log.Logger.Debug("DOM did not settle, proceeding with current DOM", zap.Error(err))
	}

	log.Logger.Info("page rendered", zap.String("url", target))

	opened = true
	return &rodPage{page: page}, nil
}

func (b *RodBridge) Close() error {
	return b.browser.Close()
}

type rodPage struct {
	page *rod.Page
}

func (r *rodPage) Snapshot(ctx context.Context) (*Snapshot, error) {
	p := r.page.Context(ctx)

	content, err := p.HTML()
	if err != nil {
		return nil, fmt.Errorf("rod bridge: read document: %w", err)
	}

	res, err := p.Eval(`() => window.location.href`)
	if err != nil {
		return nil, fmt.Errorf("rod bridge: read location: %w", err)
	}

	return &Snapshot{URL: res.Value.Str(), HTML: content}, nil
}

func (r *rodPage) Close() error {
	return r.page.Close()
}
