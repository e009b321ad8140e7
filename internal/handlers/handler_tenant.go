package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acmeerp/ledger_core/internal/apperrors"
	portssvc "github.com/acmeerp/ledger_core/internal/core/ports/services"
	"github.com/acmeerp/ledger_core/internal/dto"
	"github.com/acmeerp/ledger_core/internal/middleware"
)

// tenantHandler handles HTTP requests related to the tenant registry.
type tenantHandler struct {
	tenantService portssvc.TenantSvcFacade
}

func newTenantHandler(ts portssvc.TenantSvcFacade) *tenantHandler {
	return &tenantHandler{tenantService: ts}
}

// registerTenantRoutes registers routes related to tenants.
func registerTenantRoutes(rg *gin.RouterGroup, tenantService portssvc.TenantSvcFacade) {
	h := newTenantHandler(tenantService)

	tenants := rg.Group("/tenants")
	{
		tenants.POST("", h.createTenant)
		tenants.GET("", h.listTenants)
		tenants.GET("/:tenant_id", h.getTenant)
	}
}

// createTenant godoc
// @Summary Register a new tenant
// @Description Registers a new tenant with its default currency
// @Tags tenants
// @Accept  json
// @Produce  json
// @Param   tenant body dto.CreateTenantRequest true "Tenant details"
// @Success 201 {object} dto.TenantResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create tenant"
// @Security BearerAuth
// @Router /tenants [post]
func (h *tenantHandler) createTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTenant", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), req, userID)
	if err != nil {
		logger.Error("Failed to create tenant", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tenant"})
		return
	}

	logger.Info("Tenant created successfully", slog.String("tenant_id", tenant.TenantID))
	c.JSON(http.StatusCreated, dto.ToTenantResponse(tenant))
}

// getTenant godoc
// @Summary Get a tenant by ID
// @Description Retrieves details for a specific tenant
// @Tags tenants
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Success 200 {object} dto.TenantResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Tenant not found"
// @Failure 500 {object} map[string]string "Failed to retrieve tenant"
// @Security BearerAuth
// @Router /tenants/{tenant_id} [get]
func (h *tenantHandler) getTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	tenant, err := h.tenantService.GetTenantByID(c.Request.Context(), tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		} else {
			logger.Error("Failed to get tenant", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tenant"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// listTenants godoc
// @Summary List tenants
// @Description Retrieves all registered tenants
// @Tags tenants
// @Produce  json
// @Success 200 {array} dto.TenantResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list tenants"
// @Security BearerAuth
// @Router /tenants [get]
func (h *tenantHandler) listTenants(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenants, err := h.tenantService.ListTenants(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list tenants", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tenants"})
		return
	}

	responses := make([]dto.TenantResponse, len(tenants))
	for i := range tenants {
		responses[i] = dto.ToTenantResponse(&tenants[i])
	}
	c.JSON(http.StatusOK, responses)
}
