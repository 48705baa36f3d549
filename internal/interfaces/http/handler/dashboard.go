package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stratix/backend/internal/application/okr"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	BaseHandler
	dashboardService *okr.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *okr.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetOverview godoc
// @Summary      Get the company overview dashboard
// @Description  Aggregated KPIs across all areas, objectives and initiatives for the current tenant
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=okr.OverviewSnapshot}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/overview [get]
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	snapshot, err := h.dashboardService.GetOverview(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, snapshot)
}

// GetAreaDashboard godoc
// @Summary      Get an area dashboard
// @Description  Aggregated KPIs scoped to one area for the current tenant
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        id path string true "Area ID" format(uuid)
// @Success      200 {object} dto.Response{data=okr.AreaSnapshot}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/areas/{id} [get]
func (h *DashboardHandler) GetAreaDashboard(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	areaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid area ID")
		return
	}

	snapshot, err := h.dashboardService.GetAreaDashboard(c.Request.Context(), tenantID, areaID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, snapshot)
}
