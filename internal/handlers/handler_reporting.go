package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finbooks/gl_service/internal/apperrors"
	portssvc "github.com/finbooks/gl_service/internal/core/ports/services"
	"github.com/finbooks/gl_service/internal/dto"
	"github.com/finbooks/gl_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for derived ledger views.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/accounts/:id/balance", h.getAccountBalance)
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/aging", h.getAgingReport)
	}
}

// getAccountBalance godoc
// @Summary Get an account balance
// @Description Sums posted activity for one account and signs the net by its normal balance
// @Tags reports
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   asOfDate query string false "Balance cutoff date (YYYY-MM-DD)"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Security BearerAuth
// @Router /reports/accounts/{id}/balance [get]
func (h *reportingHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var params dto.AccountBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for getAccountBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	balance, err := h.reportingService.GetAccountBalance(c.Request.Context(), accountID, params.AsOfDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for balance", slog.String("account_id", accountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to compute account balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountBalanceResponse(balance))
}

// getTrialBalance godoc
// @Summary Get the trial balance
// @Description Lists every account with posted activity as of a date, with debit and credit totals
// @Tags reports
// @Produce  json
// @Param   asOfDate query string true "Report cutoff date (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build trial balance"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for getTrialBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	tb, err := h.reportingService.GetTrialBalance(c.Request.Context(), params.AsOfDate)
	if err != nil {
		logger.Error("Failed to build trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build trial balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// getAgingReport godoc
// @Summary Get the aging report
// @Description Buckets outstanding open items by days overdue as of a date
// @Tags reports
// @Produce  json
// @Param   asOfDate query string true "Report cutoff date (YYYY-MM-DD)"
// @Param   bucket query []string false "Restrict to specific buckets" collectionFormat(multi) Enums(current, 1_30, 31_60, 61_90, over_90)
// @Success 200 {object} dto.AgingReportResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build aging report"
// @Security BearerAuth
// @Router /reports/aging [get]
func (h *reportingHandler) getAgingReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.AgingReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for getAgingReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.GetAgingReport(c.Request.Context(), params.AsOfDate, params.Buckets)
	if err != nil {
		logger.Error("Failed to build aging report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build aging report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAgingReportResponse(report))
}
