package gcloud

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is the standard Google API error envelope.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("googleapi: %s (HTTP %d): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("googleapi: HTTP %d: %s", e.Code, e.Message)
}

// parseAPIError decodes the Google error envelope from a non-2xx response
// body. If the body is not the expected shape, the HTTP status alone is used.
func parseAPIError(statusCode int, body []byte) *APIError {
	var envelope struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		if envelope.Error.Code == 0 {
			envelope.Error.Code = statusCode
		}
		return envelope.Error
	}
	return &APIError{
		Code:    statusCode,
		Message: http.StatusText(statusCode),
	}
}

func isAPIErrorCode(err error, codes ...int) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		for _, code := range codes {
			if apiErr.Code == code {
				return true
			}
		}
	}
	return false
}

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	return isAPIErrorCode(err, http.StatusNotFound)
}

// IsPermissionDenied checks if an error indicates the caller lacks access.
// Resource Manager returns 403 both for missing permission and for projects
// owned by someone else, so availability checks treat it like not-found.
func IsPermissionDenied(err error) bool {
	return isAPIErrorCode(err, http.StatusForbidden)
}

// IsConflict checks if an error indicates the resource already exists or
// changed during the request.
func IsConflict(err error) bool {
	return isAPIErrorCode(err, http.StatusConflict)
}

// IsRateLimited checks if an error indicates API quota exhaustion.
func IsRateLimited(err error) bool {
	return isAPIErrorCode(err, http.StatusTooManyRequests)
}
