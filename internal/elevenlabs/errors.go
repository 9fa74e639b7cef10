package elevenlabs

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned by every API call when the client was built
// without a key.
var ErrMissingAPIKey = errors.New("ELEVENLABS_API_KEY is not set")

// APINetworkError reports a transport failure, or the final failure after
// retries, for one endpoint.
type APINetworkError struct {
	Endpoint string
	Err      error
}

func (e *APINetworkError) Error() string {
	return fmt.Sprintf("elevenlabs request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *APINetworkError) Unwrap() error { return e.Err }

// APIResponseError reports a non-2xx status from the streaming endpoint.
type APIResponseError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIResponseError) Error() string {
	body := e.Body
	if len(body) > 100 {
		body = body[:100] + "..."
	}
	return fmt.Sprintf("elevenlabs %s returned status %d: %s", e.Endpoint, e.StatusCode, body)
}

// InvalidJSONError reports a response body that could not be decoded.
type InvalidJSONError struct {
	Details string
	Err     error
}

func (e *InvalidJSONError) Error() string {
	return fmt.Sprintf("invalid JSON in %s: %v", e.Details, e.Err)
}

func (e *InvalidJSONError) Unwrap() error { return e.Err }
