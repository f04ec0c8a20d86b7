package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/pagelens/models"
	"github.com/use-agent/pagelens/scraper"
)

// Scrape returns a handler for POST /scrape.
//
// Orchestration flow:
//  1. Parse & validate request, apply defaults.
//  2. Scraper.ScrapeWebsite → metadata (+ body, + SEO analysis)
//  3. Return 200 with the envelope, success or not.
func Scrape(sc *scraper.Scraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		// ── 1. Parse request ────────────────────────────────────────
		var req models.ScrapeRequest
		if !bindJSON(c, &req) {
			return
		}
		req.Defaults()
		if err := req.Validate(); err != nil {
			respondError(c, err)
			return
		}

		// ── 2. Scrape ───────────────────────────────────────────────
		meta, err := sc.ScrapeWebsite(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}

		// ── 3. Respond ──────────────────────────────────────────────
		c.JSON(http.StatusOK, models.WebsiteResponse{Success: true, Data: meta})
	}
}
