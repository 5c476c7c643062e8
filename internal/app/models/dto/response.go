package dto

import "time"

// APIResponse is the standard success envelope for gateway endpoints.
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Message   string       `json:"message,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewAPIResponse wraps data in the standard envelope.
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{Data: data, Timestamp: time.Now()}
}

// NewMessageResponse wraps a transient notification message. The client
// is expected to auto-dismiss it after NotificationTTLSeconds.
func NewMessageResponse(message string) APIResponse {
	return APIResponse{Message: message, Timestamp: time.Now()}
}

// NotificationTTLSeconds is how long success/info notifications stay
// visible client-side before auto-dismissing.
const NotificationTTLSeconds = 5

// PaginationInfo describes one page of a filtered collection.
type PaginationInfo struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	PageSize    int `json:"pageSize"`
	TotalItems  int `json:"totalItems"`
}

// ListResponse is the envelope for filtered, sorted, paginated lists.
type ListResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
	// Stale is set when the items come from a previous successful
	// fetch because the most recent one failed.
	Stale bool `json:"stale,omitempty"`
}
