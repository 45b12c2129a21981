package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/membership_ledger/internal/core/ports/services"
	"github.com/SscSPs/membership_ledger/internal/dto"
	"github.com/SscSPs/membership_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// obligationHandler serves one obligation ledger. The same handler is mounted
// for dues, initial fees and donations.
type obligationHandler struct {
	obligationService portssvc.ObligationSvcFacade
	kind              domain.ObligationKind
}

func newObligationHandler(svc portssvc.ObligationSvcFacade) *obligationHandler {
	return &obligationHandler{obligationService: svc, kind: svc.Policy().Kind}
}

// registerObligationRoutes mounts the admin routes of a ledger under admin/path and
// the caller's own listing under me/path.
func registerObligationRoutes(admin, me *gin.RouterGroup, path string, svc portssvc.ObligationSvcFacade) {
	h := newObligationHandler(svc)

	g := admin.Group(path)
	{
		g.POST("", h.createObligation)
		g.POST("/bulk", h.createObligationsForOwners)
		g.GET("", h.listObligations)
		g.GET("/:id", h.getObligation)
		g.PUT("/:id", h.updateObligation)
		g.DELETE("/:id", h.deleteObligation)
		g.POST("/:id/settle", h.settleObligation)
	}
	me.GET(path, h.listMyObligations)
}

func (h *obligationHandler) logger(c *gin.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("obligation_kind", string(h.kind)))
}

// createObligation godoc
// @Summary Create an obligation
// @Description Creates one outstanding obligation in the ledger (dues, initial-fees or donations)
// @Tags obligations
// @Accept  json
// @Produce  json
// @Param   ledger path string true "Ledger" Enums(dues, initial-fees, donations)
// @Param   obligation body dto.CreateObligationRequest true "Obligation details"
// @Success 201 {object} dto.ObligationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create obligation"
// @Security BearerAuth
// @Router /{ledger} [post]
func (h *obligationHandler) createObligation(c *gin.Context) {
	logger := h.logger(c)
	var req dto.CreateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateObligation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := callerID(c, logger)
	if !ok {
		return
	}
	logger.Info("Received request to create obligation", slog.String("owner_id", req.OwnerID))

	ob, err := h.obligationService.Create(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create obligation")
		return
	}

	logger.Info("Obligation created successfully", slog.String("obligation_id", ob.ObligationID))
	c.JSON(http.StatusCreated, dto.ToObligationResponse(ob))
}

// createObligationsForOwners godoc
// @Summary Create an obligation for many owners
// @Description Creates one obligation per owner. Failures for some owners do not undo the others.
// @Tags obligations
// @Accept  json
// @Produce  json
// @Param   ledger path string true "Ledger" Enums(dues, initial-fees, donations)
// @Param   obligations body dto.BulkCreateObligationRequest true "Template and owners"
// @Success 201 {object} dto.BulkCreateObligationResponse "Every owner succeeded"
// @Success 207 {object} dto.BulkCreateObligationResponse "Some owners failed"
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /{ledger}/bulk [post]
func (h *obligationHandler) createObligationsForOwners(c *gin.Context) {
	logger := h.logger(c)
	var req dto.BulkCreateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BulkCreateObligation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := callerID(c, logger)
	if !ok {
		return
	}
	logger.Info("Received request to create obligations", slog.Int("owner_count", len(req.OwnerIDs)))

	result, err := h.obligationService.CreateForOwners(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create obligations")
		return
	}

	status := http.StatusCreated
	if len(result.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	logger.Info("Bulk obligation create finished", slog.Int("created", len(result.Created)), slog.Int("failed", len(result.Failed)))
	c.JSON(status, dto.ToBulkCreateObligationResponse(result))
}

// listObligations godoc
// @Summary List obligations
// @Description Lists every obligation in the ledger, optionally for one owner
// @Tags obligations
// @Produce  json
// @Param   ledger path string true "Ledger" Enums(dues, initial-fees, donations)
// @Param   ownerID query string false "Only this owner's obligations"
// @Success 200 {object} dto.ListObligationsResponse
// @Failure 500 {object} map[string]string "Failed to list obligations"
// @Security BearerAuth
// @Router /{ledger} [get]
func (h *obligationHandler) listObligations(c *gin.Context) {
	logger := h.logger(c)

	var (
		obs []domain.Obligation
		err error
	)
	if ownerID := c.Query("ownerID"); ownerID != "" {
		obs, err = h.obligationService.ListForOwner(c.Request.Context(), ownerID)
	} else {
		obs, err = h.obligationService.ListAll(c.Request.Context())
	}
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list obligations")
		return
	}
	c.JSON(http.StatusOK, dto.ToListObligationsResponse(obs))
}

// listMyObligations godoc
// @Summary List my obligations
// @Description Lists the caller's own obligations in the ledger
// @Tags me
// @Produce  json
// @Param   ledger path string true "Ledger" Enums(dues, initial-fees, donations)
// @Success 200 {object} dto.ListObligationsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /me/{ledger} [get]
func (h *obligationHandler) listMyObligations(c *gin.Context) {
	logger := h.logger(c)
	userID, ok := callerID(c, logger)
	if !ok {
		return
	}

	obs, err := h.obligationService.ListForOwner(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list obligations")
		return
	}
	c.JSON(http.StatusOK, dto.ToListObligationsResponse(obs))
}

// getObligation godoc
// @Summary Get an obligation by ID
// @Tags obligations
// @Produce  json
// @Param   ledger path string true "Ledger" Enums(dues, initial-fees, donations)
// @Param   id path string true "Obligation ID"
// @Success 200 {object} dto.ObligationResponse
// @Failure 404 {object} map[string]string "Obligation not found"
// @Security BearerAuth
// @Router /{ledger}/{id} [get]
func (h *obligationHandler) getObligation(c *gin.Context) {
	logger := h.logger(c)
	obligationID := c.Param("id")

	ob, err := h.obligationService.GetObligation(c.Request.Context(), obligationID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("obligation_id", obligationID)), err, "Failed to retrieve obligation")
		return
	}
	c.JSON(http.StatusOK, dto.ToObligationResponse(ob))
}

// updateObligation godoc
// @Summary Update an outstanding obligation
// @Tags obligations
// @Accept  json
// @Produce  json
// @Param   ledger path string true "Ledger" Enums(dues, initial-fees, donations)
// @Param   id path string true "Obligation ID"
// @Param   obligation body dto.UpdateObligationRequest true "Fields to update"
// @Success 200 {object} dto.ObligationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 409 {object} map[string]string "Obligation already settled"
// @Security BearerAuth
// @Router /{ledger}/{id} [put]
func (h *obligationHandler) updateObligation(c *gin.Context) {
	logger := h.logger(c)
	obligationID := c.Param("id")
	var req dto.UpdateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateObligation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := callerID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("obligation_id", obligationID))

	ob, err := h.obligationService.Update(c.Request.Context(), obligationID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update obligation")
		return
	}

	logger.Info("Obligation updated successfully")
	c.JSON(http.StatusOK, dto.ToObligationResponse(ob))
}

// deleteObligation godoc
// @Summary Delete an outstanding obligation
// @Tags obligations
// @Produce  json
// @Param   ledger path string true "Ledger" Enums(dues, initial-fees, donations)
// @Param   id path string true "Obligation ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 409 {object} map[string]string "Settled obligations cannot be deleted"
// @Security BearerAuth
// @Router /{ledger}/{id} [delete]
func (h *obligationHandler) deleteObligation(c *gin.Context) {
	logger := h.logger(c)
	obligationID := c.Param("id")

	userID, ok := callerID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("obligation_id", obligationID))

	if err := h.obligationService.Delete(c.Request.Context(), obligationID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete obligation")
		return
	}

	logger.Info("Obligation deleted successfully")
	c.Status(http.StatusNoContent)
}

// settleObligation godoc
// @Summary Settle an obligation
// @Description Marks the obligation settled and credits the wallet (main wallet when walletID is empty).
// @Description Settling an already settled obligation returns it unchanged without a second credit.
// @Tags obligations
// @Accept  json
// @Produce  json
// @Param   ledger path string true "Ledger" Enums(dues, initial-fees, donations)
// @Param   id path string true "Obligation ID"
// @Param   settlement body dto.SettleObligationRequest true "Settlement details"
// @Success 200 {object} dto.ObligationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Obligation or wallet not found"
// @Failure 500 {object} map[string]string "Failed to settle obligation"
// @Security BearerAuth
// @Router /{ledger}/{id}/settle [post]
func (h *obligationHandler) settleObligation(c *gin.Context) {
	logger := h.logger(c)
	obligationID := c.Param("id")
	var req dto.SettleObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SettleObligation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := callerID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("obligation_id", obligationID), slog.String("wallet_id", req.WalletID))
	logger.Info("Received request to settle obligation", slog.String("method", string(req.Method)))

	ob, err := h.obligationService.Settle(c.Request.Context(), obligationID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to settle obligation")
		return
	}

	logger.Info("Obligation settled", slog.String("status", string(ob.Status)))
	c.JSON(http.StatusOK, dto.ToObligationResponse(ob))
}
