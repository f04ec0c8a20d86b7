package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/use-agent/pagelens/models"
)

func main() {
	apiURL := os.Getenv("PAGELENS_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:3000"
	}
	// Optional: the server only checks keys when auth is enabled.
	apiKey := os.Getenv("PAGELENS_API_KEY")

	// Transcript scrapes allow 90s of navigation plus interaction delays.
	client := newAPIClient(apiURL, apiKey, 300*time.Second)

	s := server.NewMCPServer(
		"pagelens",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	scrapeTool := mcp.NewTool("scrape_website",
		mcp.WithDescription("Extract title, meta tags, JSON-LD schema data and favicon from a web page. Optionally scores the page for an SEO keyword and returns its readable content as Markdown."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the web page to scrape"),
		),
		mcp.WithString("keyword",
			mcp.Description("Keyword to run the SEO checks against"),
		),
		mcp.WithBoolean("include_content",
			mcp.Description("Also return the readable body of the page as Markdown"),
		),
		mcp.WithString("fetch_mode",
			mcp.Description("'browser' (default) renders the page in the remote browser; 'http' fetches the raw HTML"),
			mcp.Enum(models.FetchModeBrowser, models.FetchModeHTTP),
		),
	)
	s.AddTool(scrapeTool, handleScrapeWebsite(client))

	productTool := mcp.NewTool("check_product",
		mcp.WithDescription("Read an Amazon product listing: title, price, rating, availability, brand, ASIN and feature bullets."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The Amazon product page URL"),
		),
	)
	s.AddTool(productTool, handleURLTool(client, "/amazon/check"))

	reviewsTool := mcp.NewTool("get_product_reviews",
		mcp.WithDescription("Collect the top customer reviews of an Amazon product."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The Amazon product page URL"),
		),
	)
	s.AddTool(reviewsTool, handleURLTool(client, "/amazon/reviews"))

	transcriptTool := mcp.NewTool("get_transcript",
		mcp.WithDescription("Fetch the transcript of a YouTube video together with its title, channel and duration."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The YouTube video URL"),
		),
	)
	s.AddTool(transcriptTool, handleURLTool(client, "/youtube/transcript"))

	summarizeTool := mcp.NewTool("summarize_transcript",
		mcp.WithDescription("Summarize a YouTube video with an LLM. Pass either a video URL or a transcript you already have."),
		mcp.WithString("url",
			mcp.Description("The YouTube video URL"),
		),
		mcp.WithString("transcript",
			mcp.Description("Transcript text to summarize instead of fetching one (at least 50 characters)"),
		),
	)
	s.AddTool(summarizeTool, handleSummarize(client))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleScrapeWebsite(client *apiClient) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		payload := models.ScrapeRequest{
			URL:            url,
			Keyword:        request.GetString("keyword", ""),
			IncludeContent: request.GetBool("include_content", false),
			FetchMode:      request.GetString("fetch_mode", ""),
		}

		result, err := client.post(ctx, "/scrape", payload)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(result), nil
	}
}

// handleURLTool serves the tools whose only argument is a URL.
func handleURLTool(client *apiClient, path string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		result, err := client.post(ctx, path, models.URLRequest{URL: url})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(result), nil
	}
}

func handleSummarize(client *apiClient) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url := request.GetString("url", "")
		transcript := request.GetString("transcript", "")

		var (
			summary string
			err     error
		)
		switch {
		case transcript != "":
			summary, err = client.summarize(ctx, "/youtube/summarize-text", models.SummarizeTextRequest{Transcript: transcript})
		case url != "":
			summary, err = client.summarize(ctx, "/youtube/summarize", models.URLRequest{URL: url})
		default:
			return mcp.NewToolResultError("either url or transcript is required"), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("summarize failed: %v", err)), nil
		}
		return mcp.NewToolResultText(summary), nil
	}
}
