package handler

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/stratix/backend/internal/application/assistant"
	"github.com/stratix/backend/internal/infrastructure/config"
)

// AssistantHandler handles chat assistant HTTP requests
type AssistantHandler struct {
	BaseHandler
	assistantService *assistant.AssistantService
	config           config.AssistantConfig
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assistantService *assistant.AssistantService, cfg config.AssistantConfig) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
		config:           cfg,
	}
}

// Webhook godoc
// @Summary      Conversational agent fulfillment webhook
// @Description  Receives fulfillment requests from the conversational agent and answers from tenant data. Authenticated by a shared secret header.
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Secret header string true "Shared webhook secret"
// @Param        request body assistant.WebhookRequest true "Fulfillment request"
// @Success      200 {object} assistant.WebhookResponse
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /assistant/webhook [post]
func (h *AssistantHandler) Webhook(c *gin.Context) {
	if !h.validSecret(c) {
		h.Unauthorized(c, "Invalid webhook secret")
		return
	}

	var req assistant.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	// Fulfillment responses always answer in natural language, even
	// on failure, so the agent can relay them verbatim.
	resp := h.assistantService.HandleWebhook(c.Request.Context(), req)
	c.JSON(200, resp)
}

// ToolCall godoc
// @Summary      Assistant tool call
// @Description  Executes a structured assistant action for the authenticated user's tenant
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        request body assistant.ToolRequest true "Tool call request"
// @Success      200 {object} dto.Response{data=assistant.ToolResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /assistant/tool-call [post]
func (h *AssistantHandler) ToolCall(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not found in token")
		return
	}

	var req assistant.ToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.assistantService.HandleToolCall(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

func (h *AssistantHandler) validSecret(c *gin.Context) bool {
	if h.config.WebhookSecret == "" {
		return false
	}
	provided := c.GetHeader("X-Webhook-Secret")
	return subtle.ConstantTimeCompare([]byte(provided), []byte(h.config.WebhookSecret)) == 1
}
