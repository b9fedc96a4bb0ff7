package model

import "fmt"

// TransportError reports that the generation service could not be reached.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError reports a reply that was received but not usable: a non-2xx
// status or a body that does not decode. StatusCode is 0 for decode failures.
type ProtocolError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ProtocolError) Error() string {
	if e.StatusCode != 0 {
		if e.Body != "" {
			return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
		}
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("invalid response: %v", e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// ValidationError rejects user input before any generation starts.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
