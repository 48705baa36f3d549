package assistant

// WebhookRequest is the Dialogflow CX fulfillment request envelope
type WebhookRequest struct {
	DetectIntentResponseID string          `json:"detectIntentResponseId,omitempty"`
	Text                   string          `json:"text,omitempty"`
	FulfillmentInfo        FulfillmentInfo `json:"fulfillmentInfo"`
	SessionInfo            SessionInfo     `json:"sessionInfo"`
}

// FulfillmentInfo carries the webhook tag configured on the Dialogflow page
type FulfillmentInfo struct {
	Tag string `json:"tag"`
}

// SessionInfo carries the Dialogflow session and its parameters
type SessionInfo struct {
	Session    string                 `json:"session,omitempty"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

// WebhookResponse is the Dialogflow CX fulfillment response envelope
type WebhookResponse struct {
	FulfillmentResponse FulfillmentResponse `json:"fulfillment_response"`
}

// FulfillmentResponse holds the reply messages
type FulfillmentResponse struct {
	Messages []ResponseMessage `json:"messages"`
}

// ResponseMessage is a single reply message
type ResponseMessage struct {
	Text TextMessage `json:"text"`
}

// TextMessage holds the reply text variants
type TextMessage struct {
	Text []string `json:"text"`
}

// NewWebhookResponse builds a single-message fulfillment response
func NewWebhookResponse(text string) *WebhookResponse {
	return &WebhookResponse{
		FulfillmentResponse: FulfillmentResponse{
			Messages: []ResponseMessage{
				{Text: TextMessage{Text: []string{text}}},
			},
		},
	}
}

// ToolRequest is the generative tool-call request envelope
type ToolRequest struct {
	Tool           string                 `json:"tool"`
	ToolParameters map[string]interface{} `json:"tool_parameters"`
}

// ToolResponse is the generative tool-call response envelope
type ToolResponse struct {
	ToolOutput []ToolOutput `json:"tool_output"`
}

// ToolOutput pairs the tool name with its structured output
type ToolOutput struct {
	Tool   string      `json:"tool"`
	Output interface{} `json:"output"`
}

// NewToolResponse builds a single-output tool response
func NewToolResponse(tool string, output interface{}) *ToolResponse {
	return &ToolResponse{
		ToolOutput: []ToolOutput{
			{Tool: tool, Output: output},
		},
	}
}

// ActionResult is the structured output of one assistant action. Summary
// carries the conversational reply, Link the platform deep link, and Data
// the action-specific payload.
type ActionResult struct {
	Summary string                 `json:"summary"`
	Link    string                 `json:"link,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
}
