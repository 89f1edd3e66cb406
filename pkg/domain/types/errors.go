package types

import "fmt"

// GatewayError is the closed set of failures a gateway operation can report.
// Only the types declared in this file implement it.
type GatewayError interface {
	error
	gatewayError()
}

// UpstreamStatusError means GitHub answered with a non-2xx status
type UpstreamStatusError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Message)
}

// UpstreamShapeError means a field expected at a fixed JSON path was absent or
// malformed, or the body was not JSON at all. Path "$" denotes the whole body.
type UpstreamShapeError struct {
	Path   string
	Reason string
}

func (e *UpstreamShapeError) Error() string {
	return fmt.Sprintf("unexpected upstream response at %s: %s", e.Path, e.Reason)
}

// TransportError means GitHub could not be reached
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "failed to reach upstream: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means a base64 payload from GitHub could not be decoded
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %s", e.Field, e.Err.Error())
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidQueryError means a required query parameter was missing
type InvalidQueryError struct {
	Param string
}

func (e *InvalidQueryError) Error() string {
	return "missing required query parameter: " + e.Param
}

// InvalidURLError means an upstream URL could not be parsed into a request
type InvalidURLError struct {
	URL string
	Err error
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid upstream URL %q: %s", e.URL, e.Err.Error())
}

func (e *InvalidURLError) Unwrap() error { return e.Err }

func (*UpstreamStatusError) gatewayError() {}
func (*UpstreamShapeError) gatewayError() {}
func (*TransportError) gatewayError() {}
func (*DecodeError) gatewayError() {}
func (*InvalidQueryError) gatewayError() {}
func (*InvalidURLError) gatewayError() {}
