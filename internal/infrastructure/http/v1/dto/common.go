// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"

	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
)

// --- List Response ---

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// --- Base DTOs ---

// BaseResponse contains common response fields.
type BaseResponse struct {
	ID           string `json:"id"`
	DeletionMark bool   `json:"deletionMark"`
	Version      int    `json:"version"`
}

// DocumentResponse contains common document fields.
type DocumentResponse struct {
	BaseResponse
	Number    string    `json:"number"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy string    `json:"createdBy,omitempty"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
}

// FromDocument creates DocumentResponse from entity.Document.
func FromDocument(d entity.Document) DocumentResponse {
	return DocumentResponse{
		BaseResponse: BaseResponse{
			ID:           d.ID.String(),
			DeletionMark: d.DeletionMark,
			Version:      d.Version,
		},
		Number:    d.Number,
		Date:      d.Date,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		CreatedBy: d.CreatedBy,
		UpdatedBy: d.UpdatedBy,
	}
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
