package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/services"
)

// ReportHandler handles spend report requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetMonthlySpending returns the per-category spend report for one month.
// Defaults to the current calendar month.
// @Summary     Monthly spending report
// @Description Get per-category spending totals for a month, annotated with budget levels
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year  query int false "Year (default current)"
// @Param       month query int false "Month 1-12 (default current)"
// @Success     200 {array} services.CategorySpending "Per-category spending"
// @Failure     400 {object} ErrorResponse "Invalid year or month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/spending [get]
func (h *ReportHandler) GetMonthlySpending(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	now := time.Now().UTC()
	year := now.Year()
	month := now.Month()

	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1970 || y > 9999 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "year must be a four-digit year"))
			return
		}
		year = y
	}
	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12"))
			return
		}
		month = time.Month(m)
	}

	report, err := h.reportService.MonthlySpending(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":       year,
		"month":      int(month),
		"categories": report,
	})
}
