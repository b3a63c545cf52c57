package handler

import (
	"github.com/catering/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves the dashboard summary
type ReportHandler struct {
	BaseHandler
	dashboardService *report.DashboardService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(dashboardService *report.DashboardService) *ReportHandler {
	return &ReportHandler{dashboardService: dashboardService}
}

// RegisterRoutes mounts the report routes under /reports
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/dashboard", h.Dashboard)
}

// Dashboard returns the cached business summary
func (h *ReportHandler) Dashboard(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
