package dto

import (
	"time"

	"stockbook/internal/domain/documents/returns"
)

// --- Request DTOs ---

// CreateReturnRequest is the request body for recording a return.
type CreateReturnRequest struct {
	Date        *time.Time `json:"date"`
	Description string     `json:"description" binding:"required"`
	Entries     int        `json:"entries" binding:"required,min=1"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateReturnRequest) ToEntity(kind returns.Kind) *returns.ReturnRecord {
	rec := returns.NewReturnRecord(kind)
	if r.Date != nil {
		rec.Date = *r.Date
	}
	rec.Description = r.Description
	rec.Entries = r.Entries
	return rec
}

// UpdateReturnRequest is the request body for updating a return.
type UpdateReturnRequest struct {
	Date        *time.Time `json:"date"`
	Description string     `json:"description" binding:"required"`
	Entries     int        `json:"entries" binding:"required,min=1"`
	Version     int        `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to an existing return record.
func (r *UpdateReturnRequest) ApplyTo(rec *returns.ReturnRecord) {
	if r.Date != nil {
		rec.Date = *r.Date
	}
	rec.Description = r.Description
	rec.Entries = r.Entries
	rec.Version = r.Version
}

// --- Response DTOs ---

// ReturnResponse is the response body for a return record.
type ReturnResponse struct {
	DocumentResponse
	Kind        returns.Kind   `json:"kind"`
	Description string         `json:"description"`
	Entries     int            `json:"entries"`
	Status      returns.Status `json:"status"`
}

// FromReturn creates response DTO from domain entity.
func FromReturn(rec *returns.ReturnRecord) *ReturnResponse {
	return &ReturnResponse{
		DocumentResponse: FromDocument(rec.Document),
		Kind:             rec.Kind,
		Description:      rec.Description,
		Entries:          rec.Entries,
		Status:           rec.Status,
	}
}

// FromReturns maps a slice of return records to response DTOs.
func FromReturns(recs []*returns.ReturnRecord) []*ReturnResponse {
	out := make([]*ReturnResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, FromReturn(rec))
	}
	return out
}
