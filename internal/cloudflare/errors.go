package cloudflare

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProjectNotFound is returned when the upstream answers 404 for the project.
	ErrProjectNotFound = errors.New("project not found")
	// ErrUpstreamUnavailable covers every other failure: non-2xx, transport and parse errors.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	errInvalidJSON = errors.New("invalid json body")
)

// APIError describes a failed upstream call. It unwraps to ErrProjectNotFound or
// ErrUpstreamUnavailable, and to the transport error when there is one.
type APIError struct {
	Op         string
	StatusCode int
	// Messages holds errors[].message from the Cloudflare response envelope, if any.
	Messages []string
	Err      error
	kind     error
}

func (e *APIError) Error() string {
	var sb strings.Builder
	sb.WriteString("cloudflare ")
	sb.WriteString(e.Op)
	sb.WriteString(": ")
	sb.WriteString(e.kind.Error())
	if e.StatusCode != 0 {
		fmt.Fprintf(&sb, " (status %d)", e.StatusCode)
	}
	if len(e.Messages) > 0 {
		sb.WriteString(": ")
		sb.WriteString(strings.Join(e.Messages, "; "))
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *APIError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.kind, e.Err}
	}
	return []error{e.kind}
}

func notFound(op string, status int, msgs []string) error {
	return &APIError{Op: op, StatusCode: status, Messages: msgs, kind: ErrProjectNotFound}
}

func unavailable(op string, status int, msgs []string, cause error) error {
	return &APIError{Op: op, StatusCode: status, Messages: msgs, Err: cause, kind: ErrUpstreamUnavailable}
}
