package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecemk/classboard/internal/app/models/dto"
	"github.com/ecemk/classboard/internal/app/services"
	"github.com/ecemk/classboard/internal/middleware"
)

// DashboardController serves the landing-page overview.
type DashboardController struct {
	dashboard *services.DashboardService
}

// NewDashboardController creates a new DashboardController.
func NewDashboardController(dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{dashboard: dashboard}
}

// Overview assembles the viewer's dashboard
// @Summary Dashboard overview
// @Description Returns the schedule, announcements and feedback sections the viewer's role sees
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=services.Overview} "Overview assembled"
// @Failure 401 {object} dto.ErrorResponse "No valid session"
// @Router /dashboard [get]
func (c *DashboardController) Overview(ctx *gin.Context) {
	viewer, ok := middleware.SessionUser(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return
	}

	overview, err := c.dashboard.Overview(ctx, viewer)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(overview))
}
