package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stratix/backend/internal/application/okr"
)

// AreaHandler handles organizational area HTTP requests
type AreaHandler struct {
	BaseHandler
	areaService *okr.AreaService
}

// NewAreaHandler creates a new area handler
func NewAreaHandler(areaService *okr.AreaService) *AreaHandler {
	return &AreaHandler{
		areaService: areaService,
	}
}

// Create godoc
// @Summary      Create an area
// @Description  Create a new organizational area in the tenant
// @Tags         areas
// @Accept       json
// @Produce      json
// @Param        request body okr.CreateAreaRequest true "Area creation request"
// @Success      201 {object} dto.Response{data=okr.AreaResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /areas [post]
func (h *AreaHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	var req okr.CreateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	area, err := h.areaService.CreateArea(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, area)
}

// List godoc
// @Summary      List areas
// @Description  List the tenant's areas with filtering and pagination
// @Tags         areas
// @Accept       json
// @Produce      json
// @Param        search query string false "Search by name"
// @Param        status query string false "Filter by status" Enums(active, archived)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]okr.AreaResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /areas [get]
func (h *AreaHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	var filter okr.ListAreasFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.areaService.ListAreas(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Areas, result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @Summary      Get an area by ID
// @Description  Retrieve an area by its ID
// @Tags         areas
// @Accept       json
// @Produce      json
// @Param        id path string true "Area ID" format(uuid)
// @Success      200 {object} dto.Response{data=okr.AreaResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /areas/{id} [get]
func (h *AreaHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid area ID")
		return
	}

	area, err := h.areaService.GetArea(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, area)
}

// Update godoc
// @Summary      Update an area
// @Description  Update an area's editable fields
// @Tags         areas
// @Accept       json
// @Produce      json
// @Param        id path string true "Area ID" format(uuid)
// @Param        request body okr.UpdateAreaRequest true "Area update request"
// @Success      200 {object} dto.Response{data=okr.AreaResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /areas/{id} [put]
func (h *AreaHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid area ID")
		return
	}

	var req okr.UpdateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	area, err := h.areaService.UpdateArea(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, area)
}

// Archive godoc
// @Summary      Archive an area
// @Description  Soft-delete an area by moving it to archived status
// @Tags         areas
// @Accept       json
// @Produce      json
// @Param        id path string true "Area ID" format(uuid)
// @Success      200 {object} dto.Response{data=okr.AreaResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /areas/{id} [delete]
func (h *AreaHandler) Archive(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid area ID")
		return
	}

	area, err := h.areaService.ArchiveArea(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, area)
}

// Restore godoc
// @Summary      Restore an archived area
// @Description  Move an archived area back to active status
// @Tags         areas
// @Accept       json
// @Produce      json
// @Param        id path string true "Area ID" format(uuid)
// @Success      200 {object} dto.Response{data=okr.AreaResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /areas/{id}/restore [post]
func (h *AreaHandler) Restore(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid area ID")
		return
	}

	area, err := h.areaService.RestoreArea(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, area)
}

// GetKPIs godoc
// @Summary      Get area KPIs
// @Description  Aggregate initiative counts, progress and budget figures for one area
// @Tags         areas
// @Accept       json
// @Produce      json
// @Param        id path string true "Area ID" format(uuid)
// @Success      200 {object} dto.Response{data=okr.AreaKPIResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /areas/{id}/kpis [get]
func (h *AreaHandler) GetKPIs(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid area ID")
		return
	}

	kpis, err := h.areaService.GetAreaKPIs(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, kpis)
}
