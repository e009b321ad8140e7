package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acmeerp/ledger_core/internal/apperrors"
	portssvc "github.com/acmeerp/ledger_core/internal/core/ports/services"
	"github.com/acmeerp/ledger_core/internal/core/services"
	"github.com/acmeerp/ledger_core/internal/dto"
	"github.com/acmeerp/ledger_core/internal/middleware"
)

// journalHandler handles HTTP requests for the journal entry lifecycle.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.POST("/post", h.createAndPostEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.PUT("/:entry_id", h.updateEntry)
		entries.DELETE("/:entry_id", h.deleteEntry)
		entries.POST("/:entry_id/post", h.postEntry)
		entries.POST("/:entry_id/cancel", h.cancelEntry)
		entries.POST("/:entry_id/reverse", h.reverseEntry)
	}
}

// mapJournalWriteError translates service errors shared by the draft write
// paths into HTTP responses. Returns false when the error was not recognised.
func mapJournalWriteError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, services.ErrUnbalancedEntry),
		errors.Is(err, services.ErrInvalidLine),
		errors.Is(err, services.ErrAccountNotActive),
		errors.Is(err, services.ErrCurrencyMismatch),
		errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEntryNotDraft), errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		return false
	}
	return true
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Validates and persists a new journal entry in DRAFT status; no balances move
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry body dto.CreateJournalEntryRequest true "Entry details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to create journal entry"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		if !mapJournalWriteError(c, err) {
			logger.Error("Failed to create journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create journal entry"})
		}
		return
	}

	logger.Info("Journal entry created successfully", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// createAndPostEntry godoc
// @Summary Create and post a journal entry in one call
// @Description Command form used by producing modules; the entry is created and immediately posted
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry body dto.PostJournalEntryCommand true "Entry details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "No open fiscal period for entry date"
// @Failure 500 {object} map[string]string "Failed to post journal entry"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/post [post]
func (h *journalHandler) createAndPostEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var cmd dto.PostJournalEntryCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		logger.Warn("Failed to bind JSON for CreateAndPostEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.CreateAndPostEntry(c.Request.Context(), tenantID, cmd, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoOpenPeriod):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case mapJournalWriteError(c, err):
		default:
			logger.Error("Failed to create and post journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post journal entry"})
		}
		return
	}

	logger.Info("Journal entry posted successfully",
		slog.String("entry_id", entry.EntryID),
		slog.Int64("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves a page of journal entries ordered by entry date, newest first
// @Tags journal-entries
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Pagination token from a previous page"
// @Param   status query string false "Filter by status" Enums(DRAFT, POSTED, CANCELLED)
// @Param   includeLines query bool false "Include entry lines in the response" default(false)
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), tenantID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journal entries"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry by ID
// @Description Retrieves a journal entry with its lines
// @Tags journal-entries
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/{entry_id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	entryID := c.Param("entry_id")

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), tenantID, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
		} else {
			logger.Error("Failed to get journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update a draft journal entry
// @Description Edits a DRAFT entry's header fields and optionally replaces its lines
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Param   entry body dto.UpdateJournalEntryRequest true "Fields to update"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not in draft status"
// @Failure 500 {object} map[string]string "Failed to update journal entry"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/{entry_id} [put]
func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	entryID := c.Param("entry_id")

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.UpdateDraftEntry(c.Request.Context(), tenantID, entryID, req, userID)
	if err != nil {
		if !mapJournalWriteError(c, err) {
			logger.Error("Failed to update journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update journal entry"})
		}
		return
	}

	logger.Info("Journal entry updated successfully", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a draft journal entry
// @Description Removes a DRAFT entry; posted entries must be reversed instead
// @Tags journal-entries
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not in draft status"
// @Failure 500 {object} map[string]string "Failed to delete journal entry"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/{entry_id} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.journalService.DeleteDraftEntry(c.Request.Context(), tenantID, entryID, userID); err != nil {
		if !mapJournalWriteError(c, err) {
			logger.Error("Failed to delete journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete journal entry"})
		}
		return
	}

	logger.Info("Journal entry deleted successfully", slog.String("entry_id", entryID))
	c.Status(http.StatusNoContent)
}

// postEntry godoc
// @Summary Post a draft journal entry
// @Description Atomically applies a DRAFT entry to account balances and assigns its entry number
// @Tags journal-entries
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not in draft status"
// @Failure 422 {object} map[string]string "No open fiscal period for entry date"
// @Failure 500 {object} map[string]string "Failed to post journal entry"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/{entry_id}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.PostEntry(c.Request.Context(), tenantID, entryID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoOpenPeriod):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case mapJournalWriteError(c, err):
		default:
			logger.Error("Failed to post journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post journal entry"})
		}
		return
	}

	logger.Info("Journal entry posted successfully",
		slog.String("entry_id", entryID),
		slog.Int64("entry_number", entry.EntryNumber))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// cancelEntry godoc
// @Summary Cancel a draft journal entry
// @Description Flips a DRAFT entry to CANCELLED, keeping it for audit
// @Tags journal-entries
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not in draft status"
// @Failure 500 {object} map[string]string "Failed to cancel journal entry"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/{entry_id}/cancel [post]
func (h *journalHandler) cancelEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.journalService.CancelEntry(c.Request.Context(), tenantID, entryID, userID); err != nil {
		if !mapJournalWriteError(c, err) {
			logger.Error("Failed to cancel journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel journal entry"})
		}
		return
	}

	logger.Info("Journal entry cancelled successfully", slog.String("entry_id", entryID))
	c.Status(http.StatusNoContent)
}

// reverseEntry godoc
// @Summary Reverse a posted journal entry
// @Description Creates and posts a reversing entry with debit and credit sides swapped
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Param   reversal body dto.ReverseJournalEntryRequest true "Reversal reason"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry not posted or already reversed"
// @Failure 422 {object} map[string]string "No open fiscal period for reversal date"
// @Failure 500 {object} map[string]string "Failed to reverse journal entry"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/{entry_id}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	entryID := c.Param("entry_id")

	var req dto.ReverseJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReverseEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), tenantID, entryID, req.Reason, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEntryNotPosted), errors.Is(err, services.ErrEntryReversed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNoOpenPeriod):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case mapJournalWriteError(c, err):
		default:
			logger.Error("Failed to reverse journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reverse journal entry"})
		}
		return
	}

	logger.Info("Journal entry reversed successfully",
		slog.String("entry_id", entryID),
		slog.String("reversal_entry_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}
