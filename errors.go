package lifeline

import (
	"errors"
	"fmt"
)

// ErrEmptyPrompt is returned when a completion is requested without a prompt.
var ErrEmptyPrompt = errors.New("prompt is empty")

// ConfigurationError reports missing or invalid configuration, such as an unset API key.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
}

// UpstreamError reports a non-success HTTP status from the completion endpoint.
// Body holds the raw response text for diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// EmptyResponseError reports a well-formed response that carried no content.
type EmptyResponseError struct {
	Reason string
}

func (e *EmptyResponseError) Error() string {
	if e.Reason == "" {
		return "empty response from API"
	}
	return "empty response from API: " + e.Reason
}

// FileIOError reports a failed read or write of a request or response file.
type FileIOError struct {
	Op   string // "read", "write", "list" or "mkdir"
	Path string
	Err  error
}

func (e *FileIOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileIOError) Unwrap() error { return e.Err }
