package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/pagelens/models"
	"github.com/use-agent/pagelens/scraper"
)

// Product returns a handler for POST /amazon/check.
func Product(sc *scraper.Scraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.URLRequest
		if !bindJSON(c, &req) {
			return
		}
		if err := req.Validate(); err != nil {
			respondError(c, err)
			return
		}

		listing, err := sc.CheckProduct(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.ProductResponse{Success: true, Data: listing})
	}
}

// Reviews returns a handler for POST /amazon/reviews.
func Reviews(sc *scraper.Scraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.URLRequest
		if !bindJSON(c, &req) {
			return
		}
		if err := req.Validate(); err != nil {
			respondError(c, err)
			return
		}

		set, err := sc.ScrapeReviews(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.ReviewsResponse{
			Success: true,
			Reviews: set.Reviews,
			Total:   set.Total,
		})
	}
}
