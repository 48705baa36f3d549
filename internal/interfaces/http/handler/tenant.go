package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/stratix/backend/internal/application/identity"
)

// TenantHandler handles tenant management HTTP requests
type TenantHandler struct {
	BaseHandler
	tenantService *identity.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *identity.TenantService) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
	}
}

// Register godoc
// @Summary      Register a new tenant
// @Description  Create a new tenant together with its first CEO user
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        request body identity.RegisterTenantRequest true "Tenant registration request"
// @Success      201 {object} dto.Response{data=identity.RegisterTenantResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/register [post]
func (h *TenantHandler) Register(c *gin.Context) {
	var req identity.RegisterTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.tenantService.RegisterTenant(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetCurrent godoc
// @Summary      Get the current tenant
// @Description  Retrieve the tenant the authenticated user belongs to
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=identity.TenantResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tenants/current [get]
func (h *TenantHandler) GetCurrent(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	tenant, err := h.tenantService.GetTenant(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// UpdateCurrent godoc
// @Summary      Update the current tenant
// @Description  Update the current tenant's name, contact and locale settings
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        request body identity.UpdateTenantRequest true "Tenant update request"
// @Success      200 {object} dto.Response{data=identity.TenantResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tenants/current [put]
func (h *TenantHandler) UpdateCurrent(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	var req identity.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// ChangePlan godoc
// @Summary      Change the current tenant's plan
// @Description  Move the current tenant to a different subscription plan
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        request body identity.ChangePlanRequest true "Plan change request"
// @Success      200 {object} dto.Response{data=identity.TenantResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tenants/current/plan [put]
func (h *TenantHandler) ChangePlan(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	var req identity.ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	tenant, err := h.tenantService.ChangePlan(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}
