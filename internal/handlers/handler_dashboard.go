package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/membership_ledger/internal/core/ports/services"
	"github.com/SscSPs/membership_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type dashboardHandler struct {
	dashboardService portssvc.DashboardSvc
}

func registerDashboardRoutes(rg *gin.RouterGroup, ds portssvc.DashboardSvc) {
	h := &dashboardHandler{dashboardService: ds}
	rg.GET("/dashboard", h.getSummary)
}

// getSummary godoc
// @Summary Dashboard summary
// @Description Wallet, journal and obligation totals for the back-office dashboard
// @Tags dashboard
// @Produce  json
// @Success 200 {object} domain.DashboardSummary
// @Failure 500 {object} map[string]string "Failed to build dashboard"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.dashboardService.GetSummary(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, summary)
}
