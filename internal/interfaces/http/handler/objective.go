package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stratix/backend/internal/application/okr"
)

// ObjectiveHandler handles objective HTTP requests
type ObjectiveHandler struct {
	BaseHandler
	objectiveService *okr.ObjectiveService
}

// NewObjectiveHandler creates a new objective handler
func NewObjectiveHandler(objectiveService *okr.ObjectiveService) *ObjectiveHandler {
	return &ObjectiveHandler{
		objectiveService: objectiveService,
	}
}

// Create godoc
// @Summary      Create an objective
// @Description  Create a new objective under an area
// @Tags         objectives
// @Accept       json
// @Produce      json
// @Param        request body okr.CreateObjectiveRequest true "Objective creation request"
// @Success      201 {object} dto.Response{data=okr.ObjectiveResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /objectives [post]
func (h *ObjectiveHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	var req okr.CreateObjectiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	objective, err := h.objectiveService.CreateObjective(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, objective)
}

// List godoc
// @Summary      List objectives
// @Description  List the tenant's objectives with filtering and pagination
// @Tags         objectives
// @Accept       json
// @Produce      json
// @Param        area_id query string false "Filter by area" format(uuid)
// @Param        status query string false "Filter by status" Enums(draft, active, completed, archived)
// @Param        priority query string false "Filter by priority" Enums(low, medium, high, critical)
// @Param        search query string false "Search by title"
// @Param        target_from query string false "Target date lower bound (RFC 3339)"
// @Param        target_to query string false "Target date upper bound (RFC 3339)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]okr.ObjectiveResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /objectives [get]
func (h *ObjectiveHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	var filter okr.ListObjectivesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.objectiveService.ListObjectives(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Objectives, result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @Summary      Get an objective by ID
// @Description  Retrieve an objective by its ID
// @Tags         objectives
// @Accept       json
// @Produce      json
// @Param        id path string true "Objective ID" format(uuid)
// @Success      200 {object} dto.Response{data=okr.ObjectiveResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /objectives/{id} [get]
func (h *ObjectiveHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid objective ID")
		return
	}

	objective, err := h.objectiveService.GetObjective(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, objective)
}

// Update godoc
// @Summary      Update an objective
// @Description  Update an objective's editable fields
// @Tags         objectives
// @Accept       json
// @Produce      json
// @Param        id path string true "Objective ID" format(uuid)
// @Param        request body okr.UpdateObjectiveRequest true "Objective update request"
// @Success      200 {object} dto.Response{data=okr.ObjectiveResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /objectives/{id} [put]
func (h *ObjectiveHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid objective ID")
		return
	}

	var req okr.UpdateObjectiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	objective, err := h.objectiveService.UpdateObjective(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, objective)
}

// ChangeStatus godoc
// @Summary      Change an objective's status
// @Description  Move an objective through its draft/active/completed/archived lifecycle
// @Tags         objectives
// @Accept       json
// @Produce      json
// @Param        id path string true "Objective ID" format(uuid)
// @Param        request body okr.ChangeObjectiveStatusRequest true "Status change request"
// @Success      200 {object} dto.Response{data=okr.ObjectiveResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /objectives/{id}/status [patch]
func (h *ObjectiveHandler) ChangeStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid objective ID")
		return
	}

	var req okr.ChangeObjectiveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	objective, err := h.objectiveService.ChangeObjectiveStatus(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, objective)
}

// Archive godoc
// @Summary      Archive an objective
// @Description  Soft-delete an objective by moving it to archived status
// @Tags         objectives
// @Accept       json
// @Produce      json
// @Param        id path string true "Objective ID" format(uuid)
// @Success      200 {object} dto.Response{data=okr.ObjectiveResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /objectives/{id} [delete]
func (h *ObjectiveHandler) Archive(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid objective ID")
		return
	}

	objective, err := h.objectiveService.ArchiveObjective(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, objective)
}

// Recalculate godoc
// @Summary      Recalculate objective progress
// @Description  Recompute the objective's progress from its non-cancelled initiatives
// @Tags         objectives
// @Accept       json
// @Produce      json
// @Param        id path string true "Objective ID" format(uuid)
// @Success      200 {object} dto.Response{data=okr.ObjectiveResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /objectives/{id}/recalculate [post]
func (h *ObjectiveHandler) Recalculate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid objective ID")
		return
	}

	objective, err := h.objectiveService.RecalculateObjectiveProgress(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, objective)
}
