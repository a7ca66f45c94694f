// Package panel holds the tab and toggle state of the report panel.
package panel

import (
	"errors"
	"fmt"
)

const (
	TabMain    = "main"
	TabHeaders = "headers"
	TabImages  = "images"
)

const (
	ToggleWithoutAlt  = "imagesWithoutAltList"
	ToggleNotWebP     = "imagesNotWebPList"
	ToggleWithoutSize = "imagesWithoutSizeList"
)

var (
	ErrUnknownTab    = errors.New("unknown tab")
	ErrUnknownToggle = errors.New("unknown toggle target")
)

type Tab struct {
	ID    string
	Label string
}

var tabs = []Tab{
	{ID: TabMain, Label: "Main"},
	{ID: TabHeaders, Label: "Headers"},
	{ID: TabImages, Label: "Images"},
}

var toggles = []string{ToggleWithoutAlt, ToggleNotWebP, ToggleWithoutSize}

// Panel is the state of one rendered panel: exactly one active tab and a set
// of expanded URL lists. It lives for a single request.
type Panel struct {
	active string
	open   map[string]bool
}

// New returns a panel showing the main tab with every list collapsed.
func New() *Panel {
	return &Panel{
		active: TabMain,
		open:   make(map[string]bool, len(toggles)),
	}
}

// FromQuery applies ?tab= and each ?open= value in order. Repeating an open
// target toggles it back closed.
func FromQuery(tab string, open []string) (*Panel, error) {
	p := New()
	if tab != "" {
		if err := p.ActivateTab(tab); err != nil {
			return nil, err
		}
	}
	for _, target := range open {
		if err := p.Toggle(target); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Panel) Tabs() []Tab {
	return tabs
}

// ActivateTab makes id the only active tab.
func (p *Panel) ActivateTab(id string) error {
	for _, t := range tabs {
		if t.ID == id {
			p.active = id
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownTab, id)
}

// Toggle flips one list between shown and hidden.
func (p *Panel) Toggle(target string) error {
	for _, t := range toggles {
		if t == target {
			p.open[target] = !p.open[target]
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownToggle, target)
}

func (p *Panel) Active() string {
	return p.active
}

func (p *Panel) IsActive(id string) bool {
	return p.active == id
}

func (p *Panel) IsOpen(target string) bool {
	return p.open[target]
}

// ExpandAll opens every list; used for non-interactive output.
func (p *Panel) ExpandAll() {
	for _, t := range toggles {
		p.open[t] = true
	}
}
