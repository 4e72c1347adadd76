package client

import "fmt"

// APIError represents a non-2xx response from the backend. Detail carries
// the backend's structured error message when the body had one.
type APIError struct {
	Status int
	Detail string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}
