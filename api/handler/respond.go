package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/pagelens/models"
	"github.com/use-agent/pagelens/reqlog"
)

// bindJSON decodes the request body into req. An empty body is not an
// error; the request's own validation reports the missing fields.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, models.NewScrapeError(models.ErrCodeInvalidInput, "invalid JSON body: "+err.Error(), err))
		return false
	}
	return true
}

// respondError writes the {success:false} body for err. Scrape-class
// failures are reported with HTTP 200; only boundary failures use an
// error status.
func respondError(c *gin.Context, err error) {
	se := models.AsScrapeError(err)
	status := mapErrorToStatus(se)

	log := reqlog.From(c.Request.Context())
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "code", se.Code, "error", err)
	} else {
		log.Info("request failed", "code", se.Code, "error", se.Message)
	}

	c.JSON(status, models.ErrorResponse{
		Success: false,
		Error:   se.Message,
		Code:    se.Code,
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.ScrapeError) int {
	switch e.Code {
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	case models.ErrCodeLLMNotConfigured:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusOK
	}
}
