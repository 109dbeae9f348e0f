package models

import "flims/pkg/platform/validation"

// CreateFlimRequest is the body of POST /flims after validation.
type CreateFlimRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NewCreateFlimRequest reads the create fields out of a validated body.
func NewCreateFlimRequest(body validation.Body) CreateFlimRequest {
	return CreateFlimRequest{
		Title:       validation.StringValue(body[FieldTitle]),
		Description: validation.StringValue(body[FieldDescription]),
	}
}

// UpdateFlimRequest is the body of PUT /flims after validation.
type UpdateFlimRequest struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NewUpdateFlimRequest reads the update fields out of a validated body.
// The id is resolved with the same loose matching the existence check uses.
func NewUpdateFlimRequest(body validation.Body) UpdateFlimRequest {
	id, _ := validation.IntValue(body[FieldID])
	return UpdateFlimRequest{
		ID:          id,
		Title:       validation.StringValue(body[FieldTitle]),
		Description: validation.StringValue(body[FieldDescription]),
	}
}

// Fields returns the overwrites applied to the stored record.
func (r UpdateFlimRequest) Fields() map[string]any {
	return map[string]any{
		FieldTitle:       r.Title,
		FieldDescription: r.Description,
	}
}
