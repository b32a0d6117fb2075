package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError is returned when arguments are rejected locally, before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// TransportError means the service could not be reached at all:
// DNS failure, refused connection, timeout or a cancelled context.
type TransportError struct {
	Operation string
	Method    string
	URL       string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("error %s: failed to perform %s request to %s: %v", e.Operation, e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ApiError represents a rejected request: a non-2xx status or a 2xx response
// whose body is not valid JSON.
type ApiError struct {
	Operation  string
	Method     string
	URL        string
	StatusCode int
	Detail     string // message extracted from the response body
	Body       string // raw response body
}

// Error implements the error interface.
func (e *ApiError) Error() string {
	detail := e.Detail
	if detail == "" {
		detail = http.StatusText(e.StatusCode)
	}
	if e.StatusCode == http.StatusNotFound && !containsNotFound(detail) {
		detail = "not found: " + detail
	}
	msg := detail
	if e.Operation != "" {
		msg = fmt.Sprintf("error %s: %s", e.Operation, detail)
	}
	if e.StatusCode == 0 {
		return msg
	}
	return fmt.Sprintf("%s (%s request to %s returned status code %d)", msg, e.Method, e.URL, e.StatusCode)
}

// VersionIncompatibleError is returned when the remote API is older than the client supports.
type VersionIncompatibleError struct {
	APIVersion     string
	MinimumVersion string
}

func (e *VersionIncompatibleError) Error() string {
	return fmt.Sprintf(
		"API version compatibility warning: server reports %s, client requires at least %s",
		e.APIVersion, e.MinimumVersion,
	)
}

func IsApiError(err error) bool {
	var apiErr *ApiError
	return errors.As(err, &apiErr)
}

func IsTransportError(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// IsNotFoundErr reports whether the server said the target does not exist,
// either with a 404 or with a "not found" detail on another status.
func IsNotFoundErr(err error) bool {
	var apiErr *ApiError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusNotFound || containsNotFound(apiErr.Detail)
}

// IgnoreStatusCodes returns nil if err is an ApiError with one of the given codes.
func IgnoreStatusCodes(err error, codes ...int) error {
	if ExpectStatusCodes(err, codes...) {
		return nil
	}
	return err
}

// ExpectStatusCodes reports whether err is an ApiError with one of the given codes.
func ExpectStatusCodes(err error, codes ...int) bool {
	var apiErr *ApiError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.StatusCode == code {
			return true
		}
	}
	return false
}

func containsNotFound(s string) bool {
	return strings.Contains(strings.ToLower(s), "not found")
}

// DetailHint maps a known server message fragment to a clearer one.
type DetailHint struct {
	Contains string
	Detail   string
}

// RewriteDetail replaces the Detail of an ApiError when it contains one of the hint fragments.
// The first matching hint wins. Other errors are returned unchanged.
func RewriteDetail(err error, hints ...DetailHint) error {
	var apiErr *ApiError
	if !errors.As(err, &apiErr) {
		return err
	}
	for _, hint := range hints {
		if strings.Contains(apiErr.Detail, hint.Contains) {
			apiErr.Detail = hint.Detail
			break
		}
	}
	return err
}

// PrefixDetail prepends a status-specific label to the Detail of an ApiError,
// e.g. {401: "not authenticated"}. Other errors are returned unchanged.
func PrefixDetail(err error, labels map[int]string) error {
	var apiErr *ApiError
	if !errors.As(err, &apiErr) {
		return err
	}
	label, ok := labels[apiErr.StatusCode]
	if !ok {
		return err
	}
	if apiErr.Detail == "" {
		apiErr.Detail = label
	} else {
		apiErr.Detail = label + ": " + apiErr.Detail
	}
	return err
}
