package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stratix/backend/internal/application/okr"
)

// ActivityHandler handles activity HTTP requests
type ActivityHandler struct {
	BaseHandler
	activityService *okr.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService *okr.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// Create godoc
// @Summary      Create an activity
// @Description  Create a new activity under an initiative
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        id path string true "Initiative ID" format(uuid)
// @Param        request body okr.CreateActivityRequest true "Activity creation request"
// @Success      201 {object} dto.Response{data=okr.ActivityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /initiatives/{id}/activities [post]
func (h *ActivityHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	initiativeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid initiative ID")
		return
	}

	var req okr.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	activity, err := h.activityService.CreateActivity(c.Request.Context(), tenantID, initiativeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, activity)
}

// ListByInitiative godoc
// @Summary      List an initiative's activities
// @Description  List the activities under one initiative with filtering and pagination
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        id path string true "Initiative ID" format(uuid)
// @Param        search query string false "Search by title"
// @Param        status query string false "Filter by status" Enums(todo, in_progress, done, blocked)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]okr.ActivityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /initiatives/{id}/activities [get]
func (h *ActivityHandler) ListByInitiative(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	initiativeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid initiative ID")
		return
	}

	var filter okr.ListActivitiesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.activityService.ListActivities(c.Request.Context(), tenantID, initiativeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Activities, result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @Summary      Get an activity by ID
// @Description  Retrieve an activity by its ID
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        id path string true "Activity ID" format(uuid)
// @Success      200 {object} dto.Response{data=okr.ActivityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /activities/{id} [get]
func (h *ActivityHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid activity ID")
		return
	}

	activity, err := h.activityService.GetActivity(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, activity)
}

// Update godoc
// @Summary      Update an activity
// @Description  Update an activity's editable fields
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        id path string true "Activity ID" format(uuid)
// @Param        request body okr.UpdateActivityRequest true "Activity update request"
// @Success      200 {object} dto.Response{data=okr.ActivityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /activities/{id} [put]
func (h *ActivityHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid activity ID")
		return
	}

	var req okr.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	activity, err := h.activityService.UpdateActivity(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, activity)
}

// ChangeStatus godoc
// @Summary      Change an activity's status
// @Description  Move an activity through its todo/in_progress/done/blocked lifecycle
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        id path string true "Activity ID" format(uuid)
// @Param        request body okr.ChangeActivityStatusRequest true "Status change request"
// @Success      200 {object} dto.Response{data=okr.ActivityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /activities/{id}/status [patch]
func (h *ActivityHandler) ChangeStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid activity ID")
		return
	}

	var req okr.ChangeActivityStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	activity, err := h.activityService.ChangeActivityStatus(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, activity)
}

// Assign godoc
// @Summary      Assign an activity
// @Description  Set or clear the activity's assignee
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        id path string true "Activity ID" format(uuid)
// @Param        request body AssignActivityRequest true "Assignment request"
// @Success      200 {object} dto.Response{data=okr.ActivityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /activities/{id}/assignee [put]
func (h *ActivityHandler) Assign(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid activity ID")
		return
	}

	var req AssignActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	activity, err := h.activityService.AssignActivity(c.Request.Context(), tenantID, id, req.AssigneeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, activity)
}

// Delete godoc
// @Summary      Delete an activity
// @Description  Remove an activity from its initiative
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        id path string true "Activity ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /activities/{id} [delete]
func (h *ActivityHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid activity ID")
		return
	}

	if err := h.activityService.DeleteActivity(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AssignActivityRequest sets or clears an activity's assignee
type AssignActivityRequest struct {
	AssigneeID *uuid.UUID `json:"assignee_id"`
}
