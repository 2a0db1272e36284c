package weather

import "fmt"

// NetworkError reports a transport failure or an HTTP error status. Body
// holds the (truncated) response body when the server sent one.
type NetworkError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.StatusCode > 0 && e.Body != "":
		return fmt.Sprintf("weather api returned status %d: %s", e.StatusCode, e.Body)
	case e.StatusCode > 0:
		return fmt.Sprintf("weather api returned status %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("weather request failed: %v", e.Err)
	default:
		return "weather request failed"
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ConfigError means the request could not be built at all. Retrying will not
// help.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return fmt.Sprintf("weather client config: %v", e.Err) }

func (e *ConfigError) Unwrap() error { return e.Err }

// MalformedResponseError reports a body that is not JSON or lacks a field
// the display needs.
type MalformedResponseError struct {
	Field string
	Err   error
}

func (e *MalformedResponseError) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("malformed weather response: %s: %v", e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("malformed weather response: missing %s", e.Field)
	case e.Err != nil:
		return fmt.Sprintf("malformed weather response: %v", e.Err)
	default:
		return "malformed weather response"
	}
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
