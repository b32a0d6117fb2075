package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"
)

// validateResponse checks the response for a 2xx status code.
// Non-2xx responses become *ApiError with the detail extracted from the body.
// The body is consumed; on success it is returned to the caller.
func validateResponse(response *http.Response, operation string) ([]byte, error) {
	requestURL := "<unknown URL>"
	method := "<unknown method>"
	if response == nil {
		return nil, &ApiError{
			Operation: operation,
			Method:    method,
			URL:       requestURL,
			Detail:    "server unreachable: verify the base URL is correct and the network is accessible",
		}
	}
	if response.Request != nil {
		if response.Request.URL != nil {
			requestURL = response.Request.URL.String()
		}
		method = response.Request.Method
	}
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &TransportError{Operation: operation, Method: method, URL: requestURL, Err: err}
	}
	if response.StatusCode >= 200 && response.StatusCode <= 299 {
		return body, nil
	}
	return nil, &ApiError{
		Operation:  operation,
		Method:     method,
		URL:        requestURL,
		StatusCode: response.StatusCode,
		Detail:     extractDetail(body),
		Body:       string(body),
	}
}

// extractDetail pulls a human-readable message out of an error body.
// FastAPI style {"detail": "..."} and {"detail": [{"loc": [...], "msg": "..."}]}
// are understood, then {"message": "..."} and {"error": "..."}. Anything else
// is returned verbatim.
func extractDetail(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	var payload map[string]any
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return string(trimmed)
	}
	if detail, ok := payload["detail"]; ok && detail != nil {
		return detailToString(detail)
	}
	for _, key := range []string{"message", "error"} {
		if msg, ok := payload[key].(string); ok && msg != "" {
			return msg
		}
	}
	return string(trimmed)
}

func detailToString(detail any) string {
	switch d := detail.(type) {
	case string:
		return d
	case []any:
		parts := make([]string, 0, len(d))
		for _, item := range d {
			m, ok := item.(map[string]any)
			if !ok {
				parts = append(parts, convertToString(item))
				continue
			}
			msg := convertToString(m["msg"])
			if loc, ok := m["loc"].([]any); ok && len(loc) > 0 {
				locParts := make([]string, len(loc))
				for i, l := range loc {
					locParts[i] = convertToString(l)
				}
				msg = fmt.Sprintf("%s: %s", strings.Join(locParts, "."), msg)
			}
			parts = append(parts, msg)
		}
		return strings.Join(parts, "; ")
	default:
		return convertToString(d)
	}
}

// pathToUrl returns a full URL for the given input.
// Absolute URLs are returned unchanged; relative paths (with an optional query)
// are resolved against the configured base URL.
func pathToUrl(s RESTSession, input string) (string, error) {
	parsedURL, parseErr := urlpkg.Parse(input)
	if parseErr == nil && parsedURL.Scheme != "" {
		return input, nil
	}
	if !strings.HasPrefix(input, "/") {
		input = "/" + input
	}
	pathAndQuery, err := urlpkg.ParseRequestURI(input)
	if err != nil {
		return "", fmt.Errorf("invalid relative URL: %w", err)
	}
	return buildUrl(s, pathAndQuery.EscapedPath(), pathAndQuery.RawQuery)
}

// buildUrl appends an already escaped path and an encoded query to the base URL.
// The path is not cleaned: a trailing slash is kept since some collection
// endpoints require it, and escaped segments are never resolved against each other.
func buildUrl(s RESTSession, path, query string) (string, error) {
	base, err := urlpkg.Parse(s.GetConfig().BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	rel, err := urlpkg.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	escaped := strings.TrimRight(base.EscapedPath(), "/") + "/" + rel.EscapedPath()
	unescaped, err := urlpkg.PathUnescape(escaped)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	full := *base
	full.Path = unescaped
	full.RawPath = escaped
	full.RawQuery = query
	return full.String(), nil
}
