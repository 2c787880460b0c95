package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies an API failure. The backend answers with a small
// closed set of payload shapes, so callers can branch on the kind instead of
// sniffing the message.
type ErrorKind string

const (
	// KindTransport means no usable response reached the client.
	KindTransport ErrorKind = "transport"
	// KindAuth is an authentication failure (HTTP 401).
	KindAuth ErrorKind = "auth"
	// KindValidation is a structured field-level validation failure.
	KindValidation ErrorKind = "validation"
	// KindApplication is a generic backend error with a single detail string.
	KindApplication ErrorKind = "application"
	// KindUnexpected is a payload the client could not interpret.
	KindUnexpected ErrorKind = "unexpected"
)

// FieldError is one entry of a structured validation failure.
type FieldError struct {
	// Field is the last segment of the backend's error location.
	Field string `json:"field"`
	// Message is the backend's message for that field.
	Message string `json:"message"`
}

// Error is the normalized form of every failed API call. Callers may rely on
// Message being a human-readable string regardless of what the backend sent.
type Error struct {
	Kind       ErrorKind    `json:"kind"`
	StatusCode int          `json:"status_code,omitempty"`
	Message    string       `json:"message"`
	Fields     []FieldError `json:"fields,omitempty"`
}

func (e *Error) Error() string { return e.Message }

// IsAuthFailure reports whether the error was an authentication failure.
func (e *Error) IsAuthFailure() bool {
	return e.Kind == KindAuth || e.StatusCode == http.StatusUnauthorized
}

// IsValidation reports whether the error carries field-level details.
func (e *Error) IsValidation() bool { return e.Kind == KindValidation }

// IsTransport reports whether the request never produced a response.
func (e *Error) IsTransport() bool { return e.Kind == KindTransport }

// AsError unwraps err into an *Error if it is one.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// transportError wraps a failure that produced no response at all.
func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Message: err.Error()}
}

// fastAPIDetail covers the two shapes the backend's "detail" field takes:
// a plain string, or a list of {loc, msg} validation entries.
type fastAPIDetail struct {
	Detail json.RawMessage `json:"detail"`
}

type validationEntry struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

// parseError normalizes an error response body. Extraction precedence:
//  1. detail is a string -> that string exactly
//  2. detail is a list of {loc, msg} -> "<field>: <msg>" joined with ", "
//  3. body is a bare JSON string -> that string
//  4. anything else -> the raw body
func parseError(statusCode int, body []byte) *Error {
	e := &Error{StatusCode: statusCode, Kind: kindForStatus(statusCode)}

	var wrapped fastAPIDetail
	if err := json.Unmarshal(body, &wrapped); err == nil && len(wrapped.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(wrapped.Detail, &detail); err == nil {
			e.Message = detail
			return e
		}

		var entries []validationEntry
		if err := json.Unmarshal(wrapped.Detail, &entries); err == nil && len(entries) > 0 {
			e.Kind = KindValidation
			parts := make([]string, 0, len(entries))
			for _, entry := range entries {
				fe := FieldError{Field: lastLocSegment(entry.Loc), Message: entry.Msg}
				e.Fields = append(e.Fields, fe)
				parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
			}
			e.Message = strings.Join(parts, ", ")
			return e
		}
	}

	var plain string
	if err := json.Unmarshal(body, &plain); err == nil {
		e.Message = plain
		return e
	}

	e.Kind = KindUnexpected
	if statusCode == http.StatusUnauthorized {
		e.Kind = KindAuth
	}
	e.Message = strings.TrimSpace(string(body))
	if e.Message == "" {
		e.Message = http.StatusText(statusCode)
	}
	return e
}

func kindForStatus(statusCode int) ErrorKind {
	if statusCode == http.StatusUnauthorized {
		return KindAuth
	}
	return KindApplication
}

// lastLocSegment returns the final element of a validation error location,
// e.g. ["body", "email"] -> "email". Segments may be strings or array
// indices, so anything non-string is rendered as-is.
func lastLocSegment(loc []json.RawMessage) string {
	if len(loc) == 0 {
		return "field"
	}
	raw := loc[len(loc)-1]
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.Trim(string(raw), `"`)
}
