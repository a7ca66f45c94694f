package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"seoinspector/internal/model"
	"seoinspector/internal/render"
	"seoinspector/internal/service"
	"seoinspector/internal/util"
)

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

var inspectPageTool = mcp.NewTool("inspect_page",
	mcp.WithDescription("Inspect a web page for on-page SEO: title and description length, canonical URL, heading hierarchy, image ALT/format/size audit, robots.txt and sitemap discovery."),
	mcp.WithString("url",
		mcp.Required(),
		mcp.Description("The URL of the page to inspect"),
	),
	mcp.WithString("format",
		mcp.Description("Output format: 'markdown' (default) or 'json'"),
		mcp.Enum(formatMarkdown, formatJSON),
	),
)

func handleInspectPage(inspector *service.Inspector) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}
		if !util.IsValidURL(url) {
			return mcp.NewToolResultError(fmt.Sprintf("invalid url %q", url)), nil
		}

		format := request.GetString("format", formatMarkdown)
		var encode func(*model.SEOReport) (string, error)
		switch format {
		case formatMarkdown:
			encode = render.Markdown
		case formatJSON:
			encode = render.JSON
		default:
			return mcp.NewToolResultError("format must be markdown or json"), nil
		}

		report, err := inspector.Inspect(ctx, util.NormalizeURL(url))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("inspection failed: %v", err)), nil
		}

		out, err := encode(report)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to render report: %v", err)), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}
