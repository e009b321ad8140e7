package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acmeerp/ledger_core/internal/apperrors"
	portssvc "github.com/acmeerp/ledger_core/internal/core/ports/services"
	"github.com/acmeerp/ledger_core/internal/dto"
	"github.com/acmeerp/ledger_core/internal/middleware"
)

const reportDateLayout = "2006-01-02"

// reportingHandler handles HTTP requests for financial statements.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to financial reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/profit-and-loss", h.profitAndLoss)
		reports.GET("/balance-sheet", h.balanceSheet)
	}
}

// trialBalance godoc
// @Summary Trial balance report
// @Description Sums posted debits and credits per account up to the as-of date
// @Tags reports
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   asOf query string true "As-of date (YYYY-MM-DD)"
// @Success 200 {object} domain.TrialBalanceReport
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build trial balance"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var params dto.ReportDateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	asOf, err := time.Parse(reportDateLayout, params.AsOf)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asOf must be a date in YYYY-MM-DD format"})
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), tenantID, asOf)
	if err != nil {
		logger.Error("Failed to build trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build trial balance"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// profitAndLoss godoc
// @Summary Profit and loss report
// @Description Nets revenue and expense activity over the requested date range
// @Tags reports
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   from query string true "Range start date (YYYY-MM-DD)"
// @Param   to query string true "Range end date (YYYY-MM-DD)"
// @Success 200 {object} domain.PAndLReport
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build profit and loss"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reports/profit-and-loss [get]
func (h *reportingHandler) profitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var params dto.ReportRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	from, err := time.Parse(reportDateLayout, params.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be a date in YYYY-MM-DD format"})
		return
	}
	to, err := time.Parse(reportDateLayout, params.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be a date in YYYY-MM-DD format"})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), tenantID, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to build profit and loss", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build profit and loss"})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

// balanceSheet godoc
// @Summary Balance sheet report
// @Description Reports assets, liabilities and equity as of a date, with open-to-date net income folded into equity as retained earnings
// @Tags reports
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   asOf query string true "As-of date (YYYY-MM-DD)"
// @Success 200 {object} domain.BalanceSheetReport
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build balance sheet"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reports/balance-sheet [get]
func (h *reportingHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var params dto.ReportDateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	asOf, err := time.Parse(reportDateLayout, params.AsOf)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asOf must be a date in YYYY-MM-DD format"})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), tenantID, asOf)
	if err != nil {
		logger.Error("Failed to build balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build balance sheet"})
		return
	}

	c.JSON(http.StatusOK, report)
}
