package api

import (
	"fmt"
	"strings"
)

// TransportError means the request did not produce a usable body: the
// network failed, the status was not 2xx, or the body was not JSON.
type TransportError struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "transport error"
	}
	switch {
	case e.Err != nil && e.StatusCode == 0:
		return fmt.Sprintf("request %s: %v", e.URL, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("HTTP %d %s: %v", e.StatusCode, e.URL, e.Err)
	}
	status := strings.TrimSpace(e.Status)
	if status == "" {
		status = fmt.Sprintf("%d", e.StatusCode)
	}
	return fmt.Sprintf("API error: %s (%s)", status, e.URL)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError means the body was valid JSON but its shape could
// not be normalized.
type MalformedResponseError struct {
	URL    string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	if e == nil {
		return "malformed response"
	}
	return fmt.Sprintf("malformed response from %s: %s", e.URL, e.Reason)
}

// NotFoundError means the detail lookup returned nothing for ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return "not found"
	}
	return fmt.Sprintf("movie %q not found", e.ID)
}
