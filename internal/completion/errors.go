package completion

import "fmt"

// RequestError reports a failed call to the completion endpoint.
// StatusCode is zero when no HTTP response was received.
type RequestError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("completion request failed with status code %d: %v", e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("completion request failed: %v", e.Err)
	default:
		return fmt.Sprintf("completion request failed with status code %d: %s", e.StatusCode, e.Body)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
