package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stratix/backend/internal/application/identity"
)

// InvitationHandler handles invitation HTTP requests
type InvitationHandler struct {
	BaseHandler
	invitationService *identity.InvitationService
}

// NewInvitationHandler creates a new invitation handler
func NewInvitationHandler(invitationService *identity.InvitationService) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
	}
}

// Create godoc
// @Summary      Create an invitation
// @Description  Invite a new member into the current tenant. Admin or CEO only.
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        request body identity.CreateInvitationRequest true "Invitation creation request"
// @Success      201 {object} dto.Response{data=identity.InvitationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invitations [post]
func (h *InvitationHandler) Create(c *gin.Context) {
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

	var req identity.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	invitation, err := h.invitationService.CreateInvitation(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invitation)
}

// List godoc
// @Summary      List invitations
// @Description  List the current tenant's invitations with filtering and pagination
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        status query string false "Filter by status" Enums(pending, accepted, revoked, expired)
// @Param        search query string false "Search by email"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]identity.InvitationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invitations [get]
func (h *InvitationHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	var filter identity.ListInvitationsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.invitationService.ListInvitations(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Invitations, result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @Summary      Get an invitation by ID
// @Description  Retrieve one of the current tenant's invitations
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        id path string true "Invitation ID" format(uuid)
// @Success      200 {object} dto.Response{data=identity.InvitationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invitations/{id} [get]
func (h *InvitationHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invitation ID")
		return
	}

	invitation, err := h.invitationService.GetInvitation(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invitation)
}

// Revoke godoc
// @Summary      Revoke an invitation
// @Description  Revoke a pending invitation so its token can no longer be accepted. Admin or CEO only.
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        id path string true "Invitation ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invitations/{id}/revoke [post]
func (h *InvitationHandler) Revoke(c *gin.Context) {
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
		h.BadRequest(c, "Invalid invitation ID")
		return
	}

	if err := h.invitationService.RevokeInvitation(c.Request.Context(), tenantID, id, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Accept godoc
// @Summary      Accept an invitation
// @Description  Redeem an invitation token and create the invited user profile. Public endpoint.
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        request body identity.AcceptInvitationRequest true "Invitation acceptance request"
// @Success      201 {object} dto.Response{data=identity.UserResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      410 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invitations/accept [post]
func (h *InvitationHandler) Accept(c *gin.Context) {
	var req identity.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.invitationService.AcceptInvitation(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}
