package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/bulk"
)

// ImportHistoryListRequest represents query parameters for listing import histories
type ImportHistoryListRequest struct {
	EntityType  string `form:"entity_type"`
	Status      string `form:"status"`
	StartedFrom string `form:"started_from"`
	StartedTo   string `form:"started_to"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

// ImportHistoryResponse represents an import history record in API responses
type ImportHistoryResponse struct {
	ID           uuid.UUID                `json:"id"`
	EntityType   string                   `json:"entity_type"`
	FileName     string                   `json:"file_name"`
	FileSize     int64                    `json:"file_size"`
	TotalRows    int                      `json:"total_rows"`
	SuccessRows  int                      `json:"success_rows"`
	ErrorRows    int                      `json:"error_rows"`
	SkippedRows  int                      `json:"skipped_rows"`
	UpdatedRows  int                      `json:"updated_rows"`
	ConflictMode string                   `json:"conflict_mode"`
	Status       string                   `json:"status"`
	ErrorDetails []bulk.ImportErrorDetail `json:"error_details,omitempty"`
	ImportedBy   *uuid.UUID               `json:"imported_by,omitempty"`
	StartedAt    *time.Time               `json:"started_at,omitempty"`
	CompletedAt  *time.Time               `json:"completed_at,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

// NewImportHistoryResponse maps a domain import history to its API representation
func NewImportHistoryResponse(h *bulk.ImportHistory) ImportHistoryResponse {
	return ImportHistoryResponse{
		ID:           h.ID,
		EntityType:   string(h.EntityType),
		FileName:     h.FileName,
		FileSize:     h.FileSize,
		TotalRows:    h.TotalRows,
		SuccessRows:  h.SuccessRows,
		ErrorRows:    h.ErrorRows,
		SkippedRows:  h.SkippedRows,
		UpdatedRows:  h.UpdatedRows,
		ConflictMode: string(h.ConflictMode),
		Status:       string(h.Status),
		ErrorDetails: h.ErrorDetails,
		ImportedBy:   h.ImportedBy,
		StartedAt:    h.StartedAt,
		CompletedAt:  h.CompletedAt,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}

// ImportHistoryListResponse represents a paginated list of import histories
type ImportHistoryListResponse struct {
	Items    []ImportHistoryResponse `json:"items"`
	Total    int64                   `json:"total"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
}

// NewImportHistoryListResponse maps a domain list result to its API representation
func NewImportHistoryListResponse(result *bulk.ImportHistoryListResult) ImportHistoryListResponse {
	items := make([]ImportHistoryResponse, len(result.Items))
	for i, h := range result.Items {
		items[i] = NewImportHistoryResponse(h)
	}
	return ImportHistoryListResponse{
		Items:    items,
		Total:    result.TotalCount,
		Page:     result.Page,
		PageSize: result.PageSize,
	}
}
