package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/membership_ledger/internal/core/ports/services"
	"github.com/SscSPs/membership_ledger/internal/dto"
	"github.com/SscSPs/membership_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// walletHandler handles HTTP requests related to wallets.
type walletHandler struct {
	walletService      portssvc.WalletSvcFacade
	transactionService portssvc.TransactionReaderSvc
}

func newWalletHandler(ws portssvc.WalletSvcFacade, ts portssvc.TransactionReaderSvc) *walletHandler {
	return &walletHandler{walletService: ws, transactionService: ts}
}

// registerWalletRoutes registers routes related to wallets.
func registerWalletRoutes(rg *gin.RouterGroup, ws portssvc.WalletSvcFacade, ts portssvc.TransactionReaderSvc) {
	h := newWalletHandler(ws, ts)

	wallets := rg.Group("/wallets")
	{
		wallets.POST("", h.createWallet)
		wallets.GET("", h.listWallets)
		wallets.GET("/main", h.getMainWallet)
		wallets.GET("/:id", h.getWallet)
		wallets.PUT("/:id", h.updateWallet)
		wallets.DELETE("/:id", h.deleteWallet)
		wallets.GET("/:id/transactions", h.listWalletTransactions)
	}
}

// createWallet godoc
// @Summary Create a wallet
// @Description Creates a new, non-main wallet with an optional opening balance
// @Tags wallets
// @Accept  json
// @Produce  json
// @Param   wallet body dto.CreateWalletRequest true "Wallet details"
// @Success 201 {object} dto.WalletResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to create wallet"
// @Security BearerAuth
// @Router /wallets [post]
func (h *walletHandler) createWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateWallet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := callerID(c, logger)
	if !ok {
		return
	}
	logger.Info("Received request to create wallet", slog.String("wallet_name", req.Name))

	wallet, err := h.walletService.CreateWallet(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create wallet")
		return
	}

	logger.Info("Wallet created successfully", slog.String("wallet_id", wallet.WalletID))
	c.JSON(http.StatusCreated, dto.ToWalletResponse(wallet))
}

// listWallets godoc
// @Summary List wallets
// @Description Lists every wallet, main wallet first
// @Tags wallets
// @Produce  json
// @Success 200 {object} dto.ListWalletsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list wallets"
// @Security BearerAuth
// @Router /wallets [get]
func (h *walletHandler) listWallets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	wallets, err := h.walletService.ListWallets(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list wallets")
		return
	}
	c.JSON(http.StatusOK, dto.ToListWalletsResponse(wallets))
}

// getMainWallet godoc
// @Summary Get the main wallet
// @Tags wallets
// @Produce  json
// @Success 200 {object} dto.WalletResponse
// @Failure 404 {object} map[string]string "Main wallet not bootstrapped"
// @Security BearerAuth
// @Router /wallets/main [get]
func (h *walletHandler) getMainWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	wallet, err := h.walletService.GetMainWallet(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve main wallet")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// getWallet godoc
// @Summary Get a wallet by ID
// @Tags wallets
// @Produce  json
// @Param   id path string true "Wallet ID"
// @Success 200 {object} dto.WalletResponse
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 500 {object} map[string]string "Failed to retrieve wallet"
// @Security BearerAuth
// @Router /wallets/{id} [get]
func (h *walletHandler) getWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	walletID := c.Param("id")

	wallet, err := h.walletService.GetWalletByID(c.Request.Context(), walletID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("wallet_id", walletID)), err, "Failed to retrieve wallet")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// updateWallet godoc
// @Summary Update a wallet
// @Description Renames a wallet or changes its description. Balance is never edited directly.
// @Tags wallets
// @Accept  json
// @Produce  json
// @Param   id path string true "Wallet ID"
// @Param   wallet body dto.UpdateWalletRequest true "Fields to update"
// @Success 200 {object} dto.WalletResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 500 {object} map[string]string "Failed to update wallet"
// @Security BearerAuth
// @Router /wallets/{id} [put]
func (h *walletHandler) updateWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	walletID := c.Param("id")
	var req dto.UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateWallet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := callerID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("wallet_id", walletID))

	wallet, err := h.walletService.UpdateWallet(c.Request.Context(), walletID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update wallet")
		return
	}

	logger.Info("Wallet updated successfully")
	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// deleteWallet godoc
// @Summary Delete a wallet
// @Description Deletes a wallet together with its journal entries. The main wallet cannot be deleted.
// @Tags wallets
// @Produce  json
// @Param   id path string true "Wallet ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 409 {object} map[string]string "Main wallet cannot be deleted"
// @Failure 500 {object} map[string]string "Failed to delete wallet"
// @Security BearerAuth
// @Router /wallets/{id} [delete]
func (h *walletHandler) deleteWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	walletID := c.Param("id")

	userID, ok := callerID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("wallet_id", walletID))
	logger.Info("Received request to delete wallet")

	if err := h.walletService.DeleteWallet(c.Request.Context(), walletID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete wallet")
		return
	}

	logger.Info("Wallet deleted successfully")
	c.Status(http.StatusNoContent)
}

// listWalletTransactions godoc
// @Summary List a wallet's transactions
// @Description Pages through one wallet's journal entries, newest first
// @Tags wallets
// @Produce  json
// @Param   id path string true "Wallet ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Security BearerAuth
// @Router /wallets/{id}/transactions [get]
func (h *walletHandler) listWalletTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	walletID := c.Param("id")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListWalletTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.transactionService.ListWalletTransactions(c.Request.Context(), walletID, params)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("wallet_id", walletID)), err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}
