package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/domain/okr"
	"github.com/stratix/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Assistant actions. The router maps webhook tags and tool parameters
// onto these.
const (
	ActionInitiativeStatus      = "get_initiative_status"
	ActionAreaKPIs              = "get_area_kpis"
	ActionCompanyOverview       = "get_company_overview"
	ActionUserInitiatives       = "get_user_initiatives"
	ActionSearchInitiatives     = "search_initiatives"
	ActionInitiativeSuggestions = "get_initiative_suggestions"
)

var hundred = decimal.NewFromInt(100)

// AssistantService answers conversational queries about initiatives,
// areas, and company progress
type AssistantService struct {
	initiativeRepo okr.InitiativeRepository
	areaRepo       okr.AreaRepository
	objectiveRepo  okr.ObjectiveRepository
	profileRepo    identity.UserProfileRepository
	platformURL    string
	logger         *zap.Logger
}

// NewAssistantService creates a new assistant service. platformURL is the
// base URL used for deep links in replies; empty disables links.
func NewAssistantService(
	initiativeRepo okr.InitiativeRepository,
	areaRepo okr.AreaRepository,
	objectiveRepo okr.ObjectiveRepository,
	profileRepo identity.UserProfileRepository,
	platformURL string,
	logger *zap.Logger,
) *AssistantService {
	return &AssistantService{
		initiativeRepo: initiativeRepo,
		areaRepo:       areaRepo,
		objectiveRepo:  objectiveRepo,
		profileRepo:    profileRepo,
		platformURL:    strings.TrimRight(platformURL, "/"),
		logger:         logger,
	}
}

// HandleWebhook serves a Dialogflow fulfillment call. The tenant is
// resolved from the user_email session parameter.
func (s *AssistantService) HandleWebhook(ctx context.Context, req WebhookRequest) *WebhookResponse {
	tenantID, err := s.resolveTenant(ctx, req.SessionInfo.Parameters)
	if err != nil {
		return NewWebhookResponse("Sorry, I could not identify your workspace. Please sign in again.")
	}

	action, params, err := mapWebhookTag(req)
	if err != nil {
		s.logger.Warn("unsupported webhook tag", zap.String("tag", req.FulfillmentInfo.Tag))
		return NewWebhookResponse("Sorry, I don't know how to answer that yet.")
	}

	result, err := s.Execute(ctx, tenantID, action, params)
	if err != nil {
		s.logger.Warn("assistant action failed",
			zap.String("action", action), zap.Error(err))
		return NewWebhookResponse("Sorry, something went wrong: " + err.Error())
	}

	text := result.Summary
	if result.Link != "" {
		text += " " + result.Link
	}
	return NewWebhookResponse(text)
}

// HandleToolCall serves a generative tool call from an authenticated
// session
func (s *AssistantService) HandleToolCall(ctx context.Context, tenantID uuid.UUID, req ToolRequest) (*ToolResponse, error) {
	action, params, err := ResolveAction(req.ToolParameters)
	if err != nil {
		return nil, err
	}

	result, err := s.Execute(ctx, tenantID, action, params)
	if err != nil {
		return NewToolResponse(req.Tool, map[string]interface{}{"error": err.Error()}), nil
	}
	return NewToolResponse(req.Tool, result), nil
}

// Execute runs one assistant action
func (s *AssistantService) Execute(ctx context.Context, tenantID uuid.UUID, action string, params map[string]interface{}) (*ActionResult, error) {
	switch action {
	case ActionInitiativeStatus:
		return s.initiativeStatus(ctx, tenantID, params)
	case ActionAreaKPIs:
		return s.areaKPIs(ctx, tenantID, params)
	case ActionCompanyOverview:
		return s.companyOverview(ctx, tenantID)
	case ActionUserInitiatives:
		return s.userInitiatives(ctx, tenantID, params)
	case ActionSearchInitiatives:
		return s.searchInitiatives(ctx, tenantID, params)
	case ActionInitiativeSuggestions:
		return s.initiativeSuggestions(ctx, tenantID, params)
	default:
		return nil, shared.NewDomainError("UNKNOWN_ACTION", "Unknown assistant action: "+action)
	}
}

// ResolveAction routes tool parameters onto an action, most specific
// parameter first
func ResolveAction(params map[string]interface{}) (string, map[string]interface{}, error) {
	switch {
	case hasParam(params, "initiative_name") || hasParam(params, "initiative_id"):
		return ActionInitiativeStatus, params, nil
	case hasParam(params, "area_name") || hasParam(params, "area_id"):
		return ActionAreaKPIs, params, nil
	case hasParam(params, "user_id") || hasParam(params, "user_email"):
		return ActionUserInitiatives, params, nil
	case hasParam(params, "query"):
		return ActionSearchInitiatives, params, nil
	case stringParam(params, "action") == "company_overview":
		return ActionCompanyOverview, params, nil
	case stringParam(params, "action") == "suggestions":
		return ActionInitiativeSuggestions, params, nil
	default:
		return "", nil, shared.NewDomainError("UNKNOWN_ACTION", "No assistant action matches the given parameters")
	}
}

func mapWebhookTag(req WebhookRequest) (string, map[string]interface{}, error) {
	params := map[string]interface{}{}
	for k, v := range req.SessionInfo.Parameters {
		params[k] = v
	}

	switch req.FulfillmentInfo.Tag {
	case "company_overview":
		return ActionCompanyOverview, params, nil
	case "initiative_status":
		if _, ok := params["initiative_name"]; !ok && req.Text != "" {
			params["initiative_name"] = req.Text
		}
		return ActionInitiativeStatus, params, nil
	case "area_kpis":
		if _, ok := params["area_name"]; !ok && req.Text != "" {
			params["area_name"] = req.Text
		}
		return ActionAreaKPIs, params, nil
	default:
		return "", nil, shared.NewDomainError("UNKNOWN_TAG", "Unsupported webhook tag: "+req.FulfillmentInfo.Tag)
	}
}

func (s *AssistantService) initiativeStatus(ctx context.Context, tenantID uuid.UUID, params map[string]interface{}) (*ActionResult, error) {
	initiative, err := s.findInitiative(ctx, tenantID, params)
	if err != nil {
		return nil, err
	}

	areaName := ""
	if area, err := s.areaRepo.FindByID(ctx, tenantID, initiative.AreaID); err == nil {
		areaName = area.Name
	}

	summary := fmt.Sprintf("Initiative '%s' is at %d%% progress, status '%s'.",
		initiative.Title, initiative.Progress, initiative.Status)
	if areaName != "" {
		summary = fmt.Sprintf("Initiative '%s' in area %s is at %d%% progress, status '%s'.",
			initiative.Title, areaName, initiative.Progress, initiative.Status)
	}
	if !initiative.Budget.IsZero() {
		summary += fmt.Sprintf(" Budget: %s, spent: %s.",
			initiative.Budget.StringFixed(2), initiative.ActualCost.StringFixed(2))
	}

	return &ActionResult{
		Summary: summary,
		Link:    s.link("/initiatives/" + initiative.ID.String()),
		Data: map[string]interface{}{
			"id":          initiative.ID,
			"title":       initiative.Title,
			"status":      initiative.Status,
			"progress":    initiative.Progress,
			"area_name":   areaName,
			"budget":      initiative.Budget,
			"actual_cost": initiative.ActualCost,
			"is_overdue":  initiative.IsOverdue(),
		},
	}, nil
}

func (s *AssistantService) areaKPIs(ctx context.Context, tenantID uuid.UUID, params map[string]interface{}) (*ActionResult, error) {
	area, err := s.findArea(ctx, tenantID, params)
	if err != nil {
		return nil, err
	}

	stats, err := s.initiativeRepo.StatsForArea(ctx, tenantID, area.ID)
	if err != nil {
		return nil, err
	}
	objectiveCount, err := s.objectiveRepo.CountByArea(ctx, tenantID, area.ID)
	if err != nil {
		return nil, err
	}

	completed := stats.ByStatus[okr.InitiativeStatusCompleted]
	budgetEfficiency := 0.0
	if !stats.TotalBudget.IsZero() {
		budgetEfficiency, _ = stats.TotalActualCost.Div(stats.TotalBudget).Mul(hundred).Float64()
	}

	summary := fmt.Sprintf(
		"Area '%s' has %d initiatives averaging %.1f%% progress, %d completed. Budget efficiency: %.1f%%.",
		area.Name, stats.Total, stats.AverageProgress, completed, budgetEfficiency)

	return &ActionResult{
		Summary: summary,
		Link:    s.link("/areas/" + area.ID.String()),
		Data: map[string]interface{}{
			"area_id":               area.ID,
			"area_name":             area.Name,
			"total_initiatives":     stats.Total,
			"completed_initiatives": completed,
			"average_progress":      stats.AverageProgress,
			"objective_count":       objectiveCount,
			"total_budget":          stats.TotalBudget,
			"total_actual_cost":     stats.TotalActualCost,
		},
	}, nil
}

func (s *AssistantService) companyOverview(ctx context.Context, tenantID uuid.UUID) (*ActionResult, error) {
	stats, err := s.initiativeRepo.StatsForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	areas, err := s.areaRepo.FindActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	completed := stats.ByStatus[okr.InitiativeStatusCompleted]
	summary := fmt.Sprintf(
		"Your company has %d initiatives across %d areas. Average progress: %.1f%%, %d completed. Total budget: %s, spent: %s.",
		stats.Total, len(areas), stats.AverageProgress, completed,
		stats.TotalBudget.StringFixed(2), stats.TotalActualCost.StringFixed(2))

	return &ActionResult{
		Summary: summary,
		Link:    s.link("/dashboard"),
		Data: map[string]interface{}{
			"total_initiatives":     stats.Total,
			"completed_initiatives": completed,
			"average_progress":      stats.AverageProgress,
			"total_areas":           len(areas),
			"total_budget":          stats.TotalBudget,
			"total_actual_cost":     stats.TotalActualCost,
			"by_status":             stats.ByStatus,
		},
	}, nil
}

func (s *AssistantService) userInitiatives(ctx context.Context, tenantID uuid.UUID, params map[string]interface{}) (*ActionResult, error) {
	profile, err := s.findProfile(ctx, tenantID, params)
	if err != nil {
		return nil, err
	}

	initiatives, err := s.initiativeRepo.FindByOwner(ctx, tenantID, profile.ID)
	if err != nil {
		return nil, err
	}

	limit := intParam(params, "limit", 10)
	if len(initiatives) > limit {
		initiatives = initiatives[:limit]
	}

	if len(initiatives) == 0 {
		return &ActionResult{
			Summary: fmt.Sprintf("%s has no initiatives assigned.", profile.FullName),
			Link:    s.link("/dashboard"),
		}, nil
	}

	items := make([]map[string]interface{}, 0, len(initiatives))
	for _, initiative := range initiatives {
		items = append(items, initiativeItem(initiative))
	}
	return &ActionResult{
		Summary: fmt.Sprintf("%s owns %d initiatives. The most recent is '%s' at %d%% progress.",
			profile.FullName, len(initiatives), initiatives[0].Title, initiatives[0].Progress),
		Link: s.link("/dashboard"),
		Data: map[string]interface{}{"initiatives": items},
	}, nil
}

func (s *AssistantService) searchInitiatives(ctx context.Context, tenantID uuid.UUID, params map[string]interface{}) (*ActionResult, error) {
	query := stringParam(params, "query")
	if query == "" {
		return nil, shared.NewDomainError("MISSING_QUERY", "A search query is required")
	}

	limit := intParam(params, "limit", 20)
	initiatives, err := s.initiativeRepo.SearchByTitle(ctx, tenantID, query, limit)
	if err != nil {
		return nil, err
	}

	if len(initiatives) == 0 {
		return &ActionResult{
			Summary: fmt.Sprintf("No initiatives match '%s'.", query),
		}, nil
	}

	items := make([]map[string]interface{}, 0, len(initiatives))
	for _, initiative := range initiatives {
		items = append(items, initiativeItem(initiative))
	}
	return &ActionResult{
		Summary: fmt.Sprintf("Found %d initiatives matching '%s'. Top match: '%s' at %d%% progress.",
			len(initiatives), query, initiatives[0].Title, initiatives[0].Progress),
		Link: s.link("/initiatives/" + initiatives[0].ID.String()),
		Data: map[string]interface{}{"initiatives": items},
	}, nil
}

// initiativeSuggestions flags initiatives that need attention: overdue,
// over budget, or still in planning with no progress
func (s *AssistantService) initiativeSuggestions(ctx context.Context, tenantID uuid.UUID, params map[string]interface{}) (*ActionResult, error) {
	filter := okr.NewInitiativeFilter()
	filter.PageSize = 100
	if areaID := stringParam(params, "area_id"); areaID != "" {
		parsed, err := uuid.Parse(areaID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_AREA_ID", "Invalid area ID")
		}
		filter.AreaID = &parsed
	}

	initiatives, _, err := s.initiativeRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	suggestions := make([]map[string]interface{}, 0)
	for _, initiative := range initiatives {
		if !initiative.CountsTowardObjective() {
			continue
		}
		var reason string
		switch {
		case initiative.IsOverdue():
			reason = "past its target date"
		case initiative.IsOverBudget():
			reason = "over budget"
		case initiative.Status == okr.InitiativeStatusOnHold:
			reason = "on hold"
		case initiative.Status == okr.InitiativeStatusPlanning && initiative.Progress == 0:
			reason = "still in planning with no progress"
		default:
			continue
		}
		item := initiativeItem(initiative)
		item["reason"] = reason
		suggestions = append(suggestions, item)
	}

	if len(suggestions) == 0 {
		return &ActionResult{
			Summary: "Everything looks on track. No initiatives need attention right now.",
			Link:    s.link("/dashboard"),
		}, nil
	}
	return &ActionResult{
		Summary: fmt.Sprintf("%d initiatives need attention. For example, '%s' is %s.",
			len(suggestions), suggestions[0]["title"], suggestions[0]["reason"]),
		Link: s.link("/dashboard"),
		Data: map[string]interface{}{"suggestions": suggestions},
	}, nil
}

func (s *AssistantService) findInitiative(ctx context.Context, tenantID uuid.UUID, params map[string]interface{}) (*okr.Initiative, error) {
	if id := stringParam(params, "initiative_id"); id != "" {
		initiativeID, err := uuid.Parse(id)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INITIATIVE_ID", "Invalid initiative ID")
		}
		initiative, err := s.initiativeRepo.FindByID(ctx, tenantID, initiativeID)
		if err != nil {
			return nil, shared.NewDomainError("INITIATIVE_NOT_FOUND", "Initiative not found")
		}
		return initiative, nil
	}

	name := stringParam(params, "initiative_name")
	if name == "" {
		return nil, shared.NewDomainError("MISSING_INITIATIVE", "An initiative name or ID is required")
	}
	matches, err := s.initiativeRepo.SearchByTitle(ctx, tenantID, name, 1)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, shared.NewDomainError("INITIATIVE_NOT_FOUND", "No initiative matches '"+name+"'")
	}
	return matches[0], nil
}

func (s *AssistantService) findArea(ctx context.Context, tenantID uuid.UUID, params map[string]interface{}) (*okr.Area, error) {
	if id := stringParam(params, "area_id"); id != "" {
		areaID, err := uuid.Parse(id)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_AREA_ID", "Invalid area ID")
		}
		area, err := s.areaRepo.FindByID(ctx, tenantID, areaID)
		if err != nil {
			return nil, shared.NewDomainError("AREA_NOT_FOUND", "Area not found")
		}
		return area, nil
	}

	name := stringParam(params, "area_name")
	if name == "" {
		return nil, shared.NewDomainError("MISSING_AREA", "An area name or ID is required")
	}
	area, err := s.areaRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, shared.NewDomainError("AREA_NOT_FOUND", "No area named '"+name+"'")
	}
	return area, nil
}

func (s *AssistantService) findProfile(ctx context.Context, tenantID uuid.UUID, params map[string]interface{}) (*identity.UserProfile, error) {
	if id := stringParam(params, "user_id"); id != "" {
		userID, err := uuid.Parse(id)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_USER_ID", "Invalid user ID")
		}
		profile, err := s.profileRepo.FindByID(ctx, tenantID, userID)
		if err != nil {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return profile, nil
	}

	email := stringParam(params, "user_email")
	if email == "" {
		return nil, shared.NewDomainError("MISSING_USER", "A user ID or email is required")
	}
	profile, err := s.profileRepo.FindByEmail(ctx, tenantID, email)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	return profile, nil
}

// resolveTenant maps the session's user_email onto a tenant. Email is
// globally unique across tenants.
func (s *AssistantService) resolveTenant(ctx context.Context, params map[string]interface{}) (uuid.UUID, error) {
	email := stringParam(params, "user_email")
	if email == "" {
		return uuid.Nil, shared.NewDomainError("MISSING_USER", "Session has no user_email parameter")
	}
	profile, err := s.profileRepo.FindByEmailGlobal(ctx, email)
	if err != nil {
		return uuid.Nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	return profile.TenantID, nil
}

func (s *AssistantService) link(path string) string {
	if s.platformURL == "" {
		return ""
	}
	return s.platformURL + path
}

func initiativeItem(initiative *okr.Initiative) map[string]interface{} {
	return map[string]interface{}{
		"id":       initiative.ID,
		"title":    initiative.Title,
		"status":   initiative.Status,
		"progress": initiative.Progress,
	}
}

func hasParam(params map[string]interface{}, key string) bool {
	v, ok := params[key]
	if !ok {
		return false
	}
	str, isString := v.(string)
	return !isString || str != ""
}

func stringParam(params map[string]interface{}, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

func intParam(params map[string]interface{}, key string, fallback int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}
