package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acmeerp/ledger_core/internal/apperrors"
	"github.com/acmeerp/ledger_core/internal/core/domain"
	portssvc "github.com/acmeerp/ledger_core/internal/core/ports/services"
	"github.com/acmeerp/ledger_core/internal/core/services"
	"github.com/acmeerp/ledger_core/internal/dto"
	"github.com/acmeerp/ledger_core/internal/middleware"
)

// fiscalPeriodHandler handles HTTP requests for the fiscal period lifecycle.
type fiscalPeriodHandler struct {
	periodService portssvc.FiscalPeriodSvcFacade
}

func newFiscalPeriodHandler(ps portssvc.FiscalPeriodSvcFacade) *fiscalPeriodHandler {
	return &fiscalPeriodHandler{periodService: ps}
}

// registerFiscalPeriodRoutes registers routes related to fiscal periods.
func registerFiscalPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.FiscalPeriodSvcFacade) {
	h := newFiscalPeriodHandler(periodService)

	periods := rg.Group("/fiscal-periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/:period_id", h.getPeriod)
		periods.POST("/:period_id/open", h.openPeriod)
		periods.POST("/:period_id/close", h.closePeriod)
		periods.POST("/:period_id/reopen", h.reopenPeriod)
		periods.POST("/:period_id/lock", h.lockPeriod)
	}
}

// createPeriod godoc
// @Summary Create a fiscal period
// @Description Creates a fiscal period in DRAFT status
// @Tags fiscal-periods
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   period body dto.CreateFiscalPeriodRequest true "Period details"
// @Success 201 {object} dto.FiscalPeriodResponse
// @Failure 400 {object} map[string]string "Invalid input or date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create fiscal period"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/fiscal-periods [post]
func (h *fiscalPeriodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var req dto.CreateFiscalPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPeriodRange), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create fiscal period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fiscal period"})
		}
		return
	}

	logger.Info("Fiscal period created successfully", slog.String("period_id", period.PeriodID))
	c.JSON(http.StatusCreated, dto.ToFiscalPeriodResponse(period))
}

// getPeriod godoc
// @Summary Get a fiscal period by ID
// @Description Retrieves details for a specific fiscal period
// @Tags fiscal-periods
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   period_id path string true "Period ID"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to retrieve fiscal period"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/fiscal-periods/{period_id} [get]
func (h *fiscalPeriodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	periodID := c.Param("period_id")

	period, err := h.periodService.GetPeriodByID(c.Request.Context(), tenantID, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fiscal period not found"})
		} else {
			logger.Error("Failed to get fiscal period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve fiscal period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}

// listPeriods godoc
// @Summary List fiscal periods
// @Description Retrieves the tenant's fiscal periods ordered by start date
// @Tags fiscal-periods
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Success 200 {array} dto.FiscalPeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list fiscal periods"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/fiscal-periods [get]
func (h *fiscalPeriodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	periods, err := h.periodService.ListPeriods(c.Request.Context(), tenantID)
	if err != nil {
		logger.Error("Failed to list fiscal periods", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fiscal periods"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListFiscalPeriodResponse(periods))
}

// openPeriod godoc
// @Summary Open a fiscal period
// @Description Transitions a DRAFT period to OPEN after checking for overlaps
// @Tags fiscal-periods
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   period_id path string true "Period ID"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period overlaps, is locked, or cannot transition"
// @Failure 500 {object} map[string]string "Failed to open fiscal period"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/fiscal-periods/{period_id}/open [post]
func (h *fiscalPeriodHandler) openPeriod(c *gin.Context) {
	h.transition(c, "open", h.periodService.OpenPeriod)
}

// closePeriod godoc
// @Summary Close a fiscal period
// @Description Transitions an OPEN period to CLOSED; posting into it is refused afterwards
// @Tags fiscal-periods
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   period_id path string true "Period ID"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period is not open"
// @Failure 500 {object} map[string]string "Failed to close fiscal period"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/fiscal-periods/{period_id}/close [post]
func (h *fiscalPeriodHandler) closePeriod(c *gin.Context) {
	h.transition(c, "close", h.periodService.ClosePeriod)
}

// reopenPeriod godoc
// @Summary Reopen a fiscal period
// @Description Transitions a CLOSED period back to OPEN; locked periods never reopen
// @Tags fiscal-periods
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   period_id path string true "Period ID"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period is not closed or is locked"
// @Failure 500 {object} map[string]string "Failed to reopen fiscal period"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/fiscal-periods/{period_id}/reopen [post]
func (h *fiscalPeriodHandler) reopenPeriod(c *gin.Context) {
	h.transition(c, "reopen", h.periodService.ReopenPeriod)
}

// lockPeriod godoc
// @Summary Lock a fiscal period
// @Description Transitions a CLOSED period to LOCKED; the transition is terminal
// @Tags fiscal-periods
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   period_id path string true "Period ID"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period is not closed"
// @Failure 500 {object} map[string]string "Failed to lock fiscal period"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/fiscal-periods/{period_id}/lock [post]
func (h *fiscalPeriodHandler) lockPeriod(c *gin.Context) {
	h.transition(c, "lock", h.periodService.LockPeriod)
}

// transition runs one lifecycle transition and maps its errors. All four
// transitions share the same response shape.
func (h *fiscalPeriodHandler) transition(
	c *gin.Context,
	name string,
	fn func(ctx context.Context, tenantID, periodID, userID string) (*domain.FiscalPeriod, error),
) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	periodID := c.Param("period_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := fn(c.Request.Context(), tenantID, periodID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Fiscal period not found"})
		case errors.Is(err, services.ErrOverlappingPeriod),
			errors.Is(err, services.ErrPeriodNotOpen),
			errors.Is(err, services.ErrPeriodNotClosed),
			errors.Is(err, services.ErrPeriodLocked),
			errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to "+name+" fiscal period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + name + " fiscal period"})
		}
		return
	}

	logger.Info("Fiscal period transition applied",
		slog.String("period_id", periodID),
		slog.String("transition", name),
		slog.String("status", string(period.Status)))
	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}
