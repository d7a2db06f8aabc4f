package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutrack/schoolms/internal/app/services"
	"github.com/edutrack/schoolms/internal/middleware"
)

// DashboardController serves the role-specific landing summaries
type DashboardController struct {
	dashboardService *services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GetDashboard returns the summary for the caller's role
// @Summary Dashboard
// @Description Superusers get school counts, administrators the school summary, teachers their profile and the summary, students their class and guardians, guardians their wards
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	dashboard, err := c.dashboardService.Get(ctx.Request.Context(), p.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dashboard, "")
}
