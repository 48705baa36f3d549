package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stratix/backend/internal/application/okr"
)

// InitiativeHandler handles initiative HTTP requests
type InitiativeHandler struct {
	BaseHandler
	initiativeService *okr.InitiativeService
}

// NewInitiativeHandler creates a new initiative handler
func NewInitiativeHandler(initiativeService *okr.InitiativeService) *InitiativeHandler {
	return &InitiativeHandler{
		initiativeService: initiativeService,
	}
}

// Create godoc
// @Summary      Create an initiative
// @Description  Create a new initiative under an area, optionally linked to an objective
// @Tags         initiatives
// @Accept       json
// @Produce      json
// @Param        request body okr.CreateInitiativeRequest true "Initiative creation request"
// @Success      201 {object} dto.Response{data=okr.InitiativeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /initiatives [post]
func (h *InitiativeHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	var req okr.CreateInitiativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	initiative, err := h.initiativeService.CreateInitiative(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, initiative)
}

// List godoc
// @Summary      List initiatives
// @Description  List the tenant's initiatives; all filters compose as an intersection
// @Tags         initiatives
// @Accept       json
// @Produce      json
// @Param        area_id query string false "Filter by area" format(uuid)
// @Param        objective_id query string false "Filter by objective" format(uuid)
// @Param        status query string false "Filter by status" Enums(planning, in_progress, completed, on_hold, cancelled)
// @Param        priority query string false "Filter by priority" Enums(low, medium, high, critical)
// @Param        owner_id query string false "Filter by owner" format(uuid)
// @Param        search query string false "Search by title"
// @Param        target_from query string false "Target date lower bound (RFC 3339)"
// @Param        target_to query string false "Target date upper bound (RFC 3339)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]okr.InitiativeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /initiatives [get]
func (h *InitiativeHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	var filter okr.ListInitiativesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.initiativeService.ListInitiatives(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Initiatives, result.Total, result.Page, result.PageSize)
}

// Search godoc
// @Summary      Search initiatives
// @Description  Case-insensitive title search, capped at the given limit
// @Tags         initiatives
// @Accept       json
// @Produce      json
// @Param        q query string true "Search term"
// @Param        limit query int false "Maximum results" default(10)
// @Success      200 {object} dto.Response{data=[]okr.InitiativeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /initiatives/search [get]
func (h *InitiativeHandler) Search(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	term := c.Query("q")
	if term == "" {
		h.BadRequest(c, "Search term is required")
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	results, err := h.initiativeService.SearchInitiatives(c.Request.Context(), tenantID, term, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// GetByID godoc
// @Summary      Get an initiative by ID
// @Description  Retrieve an initiative by its ID
// @Tags         initiatives
// @Accept       json
// @Produce      json
// @Param        id path string true "Initiative ID" format(uuid)
// @Success      200 {object} dto.Response{data=okr.InitiativeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /initiatives/{id} [get]
func (h *InitiativeHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid initiative ID")
		return
	}

	initiative, err := h.initiativeService.GetInitiative(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, initiative)
}

// Update godoc
// @Summary      Update an initiative
// @Description  Update an initiative's editable fields
// @Tags         initiatives
// @Accept       json
// @Produce      json
// @Param        id path string true "Initiative ID" format(uuid)
// @Param        request body okr.UpdateInitiativeRequest true "Initiative update request"
// @Success      200 {object} dto.Response{data=okr.InitiativeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /initiatives/{id} [put]
func (h *InitiativeHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid initiative ID")
		return
	}

	var req okr.UpdateInitiativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	initiative, err := h.initiativeService.UpdateInitiative(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, initiative)
}

// UpdateProgress godoc
// @Summary      Update initiative progress
// @Description  Record a progress change; a progress history entry is written atomically
// @Tags         initiatives
// @Accept       json
// @Produce      json
// @Param        id path string true "Initiative ID" format(uuid)
// @Param        request body okr.UpdateProgressRequest true "Progress update request"
// @Success      200 {object} dto.Response{data=okr.InitiativeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /initiatives/{id}/progress [patch]
func (h *InitiativeHandler) UpdateProgress(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid initiative ID")
		return
	}

	var req okr.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	initiative, err := h.initiativeService.UpdateProgress(c.Request.Context(), tenantID, id, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, initiative)
}

// ChangeStatus godoc
// @Summary      Change an initiative's status
// @Description  Move an initiative through its lifecycle states
// @Tags         initiatives
// @Accept       json
// @Produce      json
// @Param        id path string true "Initiative ID" format(uuid)
// @Param        request body okr.ChangeInitiativeStatusRequest true "Status change request"
// @Success      200 {object} dto.Response{data=okr.InitiativeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /initiatives/{id}/status [patch]
func (h *InitiativeHandler) ChangeStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid initiative ID")
		return
	}

	var req okr.ChangeInitiativeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	initiative, err := h.initiativeService.ChangeStatus(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, initiative)
}

// Cancel godoc
// @Summary      Cancel an initiative
// @Description  Soft-delete an initiative by moving it to cancelled status
// @Tags         initiatives
// @Accept       json
// @Produce      json
// @Param        id path string true "Initiative ID" format(uuid)
// @Success      200 {object} dto.Response{data=okr.InitiativeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /initiatives/{id} [delete]
func (h *InitiativeHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid initiative ID")
		return
	}

	initiative, err := h.initiativeService.CancelInitiative(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, initiative)
}

// GetProgressHistory godoc
// @Summary      Get progress history
// @Description  Paginated progress history for an initiative, newest first
// @Tags         initiatives
// @Accept       json
// @Produce      json
// @Param        id path string true "Initiative ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]okr.ProgressEntryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /initiatives/{id}/progress-history [get]
func (h *InitiativeHandler) GetProgressHistory(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid initiative ID")
		return
	}

	page, pageSize := parsePagination(c)

	history, err := h.initiativeService.GetProgressHistory(c.Request.Context(), tenantID, id, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, history.Entries, history.Total, history.Page, history.PageSize)
}

// parsePagination reads page/page_size query parameters with defaults
func parsePagination(c *gin.Context) (int, int) {
	page := 1
	pageSize := 20
	if raw := c.Query("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if raw := c.Query("page_size"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			pageSize = parsed
		}
	}
	return page, pageSize
}
