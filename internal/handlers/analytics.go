// internal/handlers/analytics.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/creativechain/creativechain-backend/internal/services"
	"github.com/creativechain/creativechain-backend/internal/utils"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// GET /analytics/creator-earnings?period=month&category=all
func (h *AnalyticsHandler) GetCreatorEarnings(c *gin.Context) {
	creatorID, ok := requireUserID(c)
	if !ok {
		return
	}

	period := c.DefaultQuery("period", "month")
	category := c.DefaultQuery("category", "all")

	earnings := h.analyticsService.GetCreatorEarnings(creatorID, period, category)
	utils.SuccessResponse(c, earnings)
}

// GET /analytics/revenue-chart
func (h *AnalyticsHandler) GetRevenueChart(c *gin.Context) {
	creatorID, ok := requireUserID(c)
	if !ok {
		return
	}

	chart := h.analyticsService.GetRevenueChart(creatorID)
	utils.SuccessResponse(c, chart)
}

// GET /analytics/sales-activity
func (h *AnalyticsHandler) GetSalesActivity(c *gin.Context) {
	creatorID, ok := requireUserID(c)
	if !ok {
		return
	}

	activity := h.analyticsService.GetSalesActivity(creatorID)
	utils.SuccessResponse(c, activity)
}

// GET /analytics/works-performance
func (h *AnalyticsHandler) GetWorksPerformance(c *gin.Context) {
	creatorID, ok := requireUserID(c)
	if !ok {
		return
	}

	performance := h.analyticsService.GetWorksPerformance(creatorID)
	utils.SuccessResponse(c, performance)
}

// GET /analytics/export?period=month
func (h *AnalyticsHandler) ExportEarnings(c *gin.Context) {
	creatorID, ok := requireUserID(c)
	if !ok {
		return
	}

	period := c.DefaultQuery("period", "month")

	csvData, err := h.analyticsService.ExportEarningsCSV(creatorID, period)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to export earnings")
		return
	}

	filename := fmt.Sprintf("earnings_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", csvData)
}
