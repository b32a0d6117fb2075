package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ######################################################
//
//	REQUEST/RESPONSE INTERCEPTORS
//
// ######################################################

// doBeforeRequest logs the outgoing request and runs the user-defined BeforeRequestFn.
func doBeforeRequest(ctx context.Context, s RESTSession, r *http.Request, verb, url string, body []byte) error {
	config := s.GetConfig()
	beforeRequestLog(config.Logger, r, body)
	if config.BeforeRequestFn != nil {
		if err := config.BeforeRequestFn(ctx, r, verb, url, bytes.NewReader(body)); err != nil {
			return err
		}
	}
	return nil
}

// doAfterRequest runs the user-defined AfterRequestFn on a decoded response.
// The hook may replace the value but must keep its type.
func doAfterRequest[T any](ctx context.Context, s RESTSession, response T) (T, error) {
	config := s.GetConfig()
	if config.AfterRequestFn == nil {
		return response, nil
	}
	mutated, err := config.AfterRequestFn(ctx, response)
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := mutated.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf(
			"unexpected response type returned by AfterRequestFn: got %T, expected %T",
			mutated, zero,
		)
	}
	return typed, nil
}

// ######################################################
//
//	REQUEST/RESPONSE LOGGING
//
// ######################################################

// beforeRequestLog logs HTTP request details before sending the request.
// At debug level the JSON body is included. Form-encoded bodies (login) never are.
func beforeRequestLog(logger *zap.Logger, r *http.Request, body []byte) {
	if logger == nil || !logger.Core().Enabled(zapcore.InfoLevel) {
		return
	}
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
		zap.String("request_id", r.Header.Get(HeaderRequestID)),
	}
	if logger.Core().Enabled(zapcore.DebugLevel) && len(body) > 0 && loggableBody(r) {
		fields = append(fields, zap.String("body", compactJSON(body)))
	}
	logger.Info("sending request", fields...)
}

// afterResponseLog logs the status and latency of a completed request.
func afterResponseLog(logger *zap.Logger, r *http.Request, response *http.Response, elapsed time.Duration, body []byte) {
	if logger == nil || !logger.Core().Enabled(zapcore.InfoLevel) {
		return
	}
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
		zap.String("request_id", r.Header.Get(HeaderRequestID)),
		zap.Int("status", response.StatusCode),
		zap.Duration("elapsed", elapsed),
	}
	if logger.Core().Enabled(zapcore.DebugLevel) && len(body) > 0 && loggableBody(r) {
		fields = append(fields, zap.String("body", compactJSON(body)))
	}
	if response.StatusCode >= 400 {
		logger.Warn("request failed", fields...)
		return
	}
	logger.Info("received response", fields...)
}

// loggableBody reports whether request/response bodies may be logged.
// Login exchanges carry credentials and tokens.
func loggableBody(r *http.Request) bool {
	contentType := strings.ToLower(r.Header.Get(HeaderContentType))
	return !strings.Contains(contentType, ContentTypeFormURLEncoded) &&
		!strings.Contains(contentType, ContentTypeMultipartForm)
}

func compactJSON(body []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return string(bytes.TrimSpace(body))
	}
	return buf.String()
}
