// Package render turns inspection results into the HTML panel and its
// Markdown export.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"seoinspector/internal/model"
	"seoinspector/internal/panel"
	"seoinspector/internal/util/analyzer"
)

const (
	MsgPrimaryFailed   = "Failed to fetch main SEO data."
	MsgSecondaryFailed = "Failed to fetch additional SEO data."
)

// headingIndentPx is the left margin per heading level below H1.
const headingIndentPx = 20

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcs = template.FuncMap{
	"cue": func(favorable bool) string {
		if favorable {
			return "green"
		}
		return "red"
	},
	"blank": func(s string) bool {
		return strings.TrimSpace(s) == ""
	},
	"indent": func(level int) int {
		return (level - 1) * headingIndentPx
	},
	"inc": func(i int) int {
		return i + 1
	},
	"titleRange": func() string {
		return fmt.Sprintf("%d–%d", analyzer.TitleMinLength, analyzer.TitleMaxLength)
	},
	"descriptionRange": func() string {
		return fmt.Sprintf("%d–%d", analyzer.DescriptionMinLength, analyzer.DescriptionMaxLength)
	},
}

var templates = template.Must(template.New("panel").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))

var markdown = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	),
)

type imageSection struct {
	Title     string
	Target    string
	URLs      []string
	Favorable bool
	Open      bool
}

type regionsData struct {
	Report      *model.SEOReport
	Panel       *panel.Panel
	Sections    []imageSection
	Interactive bool
}

func newRegionsData(report *model.SEOReport, p *panel.Panel, interactive bool) regionsData {
	data := regionsData{Report: report, Panel: p, Interactive: interactive}
	if report == nil {
		return data
	}

	images := report.Images
	data.Sections = []imageSection{
		{Title: "Images without ALT", Target: panel.ToggleWithoutAlt, URLs: images.WithoutAlt},
		{Title: "Images Not in WebP Format", Target: panel.ToggleNotWebP, URLs: images.NotModernFormat},
		{Title: "Images Without Explicit Width and Height", Target: panel.ToggleWithoutSize, URLs: images.WithoutSize},
	}
	for i := range data.Sections {
		s := &data.Sections[i]
		s.Favorable = len(s.URLs) == 0
		s.Open = p.IsOpen(s.Target)
	}
	return data
}

// Open writes the document head, the tab bar and opens the main region.
func Open(w io.Writer, p *panel.Panel) error {
	return templates.ExecuteTemplate(w, "panel_open", p)
}

// Primary writes title, description, URL and canonical into the main region.
func Primary(w io.Writer, snapshot *model.PageSnapshot) error {
	return templates.ExecuteTemplate(w, "primary", snapshot)
}

// Crawlability appends the robots.txt and sitemap findings to the main region.
func Crawlability(w io.Writer, report *model.SEOReport) error {
	return templates.ExecuteTemplate(w, "crawlability", report)
}

// Failure writes an inline failure message.
func Failure(w io.Writer, message string) error {
	return templates.ExecuteTemplate(w, "failure", message)
}

// Regions closes the main region and writes the headers and images regions.
// A nil report leaves both regions empty.
func Regions(w io.Writer, report *model.SEOReport, p *panel.Panel) error {
	return templates.ExecuteTemplate(w, "regions", newRegionsData(report, p, true))
}

// Close writes the tab and toggle wiring and ends the document.
func Close(w io.Writer) error {
	return templates.ExecuteTemplate(w, "panel_close", nil)
}

// Panel writes a complete panel for a finished report.
func Panel(w io.Writer, report *model.SEOReport, p *panel.Panel) error {
	steps := []func() error{
		func() error { return Open(w, p) },
		func() error { return Primary(w, &report.PageSnapshot) },
		func() error { return Crawlability(w, report) },
		func() error { return Regions(w, report, p) },
		func() error { return Close(w) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// Markdown renders the whole report, every URL list expanded, as Markdown.
func Markdown(report *model.SEOReport) (string, error) {
	p := panel.New()
	p.ExpandAll()

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "report", newRegionsData(report, p, false)); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}

	md, err := markdown.ConvertString(buf.String(), converter.WithDomain(report.Origin))
	if err != nil {
		return "", fmt.Errorf("convert report to markdown: %w", err)
	}
	return md, nil
}

// JSON renders the report as indented JSON for text-only consumers.
func JSON(report *model.SEOReport) (string, error) {
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	return string(b), nil
}
