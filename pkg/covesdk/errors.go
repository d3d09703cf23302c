package covesdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes shared between the server handlers and the client.
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeUnauthorized   = "unauthorized"
	ErrorCodeForbidden      = "forbidden"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeAlreadyUsed    = "already_used"
	ErrorCodeServerError    = "server_error"
)

// APIError is an error response from the cove API. It implements the error
// interface so SDK callers can errors.As on it and branch on Code.
type APIError struct {
	// StatusCode is the HTTP status the server responded with.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code.
	Code string `json:"error"`

	// Description is a human-readable description of the error.
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// IsNotFound reports whether the error is the API's not-found response.
func (e *APIError) IsNotFound() bool { return e.Code == ErrorCodeNotFound }

// IsAlreadyUsed reports whether the error is an invite redemption conflict.
func (e *APIError) IsAlreadyUsed() bool { return e.Code == ErrorCodeAlreadyUsed }

// decodeAPIError turns a non-2xx response into an *APIError. Responses that
// are not the standard envelope still come back as an APIError with the
// status code preserved.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: resp.Status,
	}

	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		apiErr.Code = body.Error
		apiErr.Description = body.ErrorDescription
	}

	return apiErr
}
