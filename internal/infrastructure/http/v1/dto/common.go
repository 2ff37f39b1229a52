// Package dto defines request and response shapes for the HTTP API.
package dto

// IDResponse is the standard create response.
type IDResponse struct {
	ID string `json:"id"`
}

// SuccessResponse is the standard acknowledgement response.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ListResponse wraps list payloads.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// NewListResponse builds a ListResponse from a slice.
func NewListResponse[T any](items []T) ListResponse[T] {
	return ListResponse[T]{Items: items, Count: len(items)}
}
