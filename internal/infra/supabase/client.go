// Package supabase talks to the Supabase Auth (GoTrue) and Storage REST APIs.
// Every call is bounded by a timeout and runs behind a circuit breaker;
// idempotent calls are additionally retried with backoff.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"techup-blog/internal/observability/tracing"
	"techup-blog/internal/resilience/circuitbreaker"
	"techup-blog/internal/resilience/retry"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// APIError is a non-2xx answer from the provider.
type APIError struct {
	StatusCode int
	Code       string // error_code or error, when present
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("supabase: HTTP %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("supabase: HTTP %d: %s", e.StatusCode, e.Message)
}

// Unwrap exposes the status code to retry.IsRetryable.
func (e *APIError) Unwrap() error {
	return &retry.HTTPError{StatusCode: e.StatusCode, Message: e.Message}
}

// IsClientError reports whether the provider rejected the request itself (4xx other than 408/429).
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 &&
		e.StatusCode != http.StatusRequestTimeout && e.StatusCode != http.StatusTooManyRequests
}

type errorBody struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	ErrorCode        string `json:"error_code"`
}

func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		apiErr.Code = firstNonEmpty(eb.ErrorCode, eb.Error)
		apiErr.Message = firstNonEmpty(eb.Msg, eb.Message, eb.ErrorDescription, eb.Error)
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// isClientRejection keeps 4xx answers from tripping the breaker: the provider is healthy.
func isClientRejection(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsClientError()
}

// request describes one provider call.
type request struct {
	method      string
	path        string
	bearer      string
	apiKey      string
	body        io.Reader
	contentType string
	header      http.Header
	idempotent  bool
}

// transport is the shared HTTP core of the auth and storage clients.
type transport struct {
	baseURL    string
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
	retryCfg   retry.Config
}

func newTransport(cfg Config, name string) *transport {
	cbCfg := circuitbreaker.ProviderConfig(name)
	cbCfg.IsSuccessful = isClientRejection
	return &transport{
		baseURL:    cfg.URL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    circuitbreaker.New(cbCfg),
		retryCfg:   retry.ProviderConfig(),
	}
}

// check fails while the circuit breaker is open.
func (t *transport) check() error {
	if t.breaker.IsOpen() {
		return fmt.Errorf("%s: circuit breaker open", t.breaker.Name())
	}
	return nil
}

// do executes req and returns the response body of a 2xx answer.
func (t *transport) do(ctx context.Context, spanName string, req request) ([]byte, error) {
	ctx, span := tracing.GetTracer().Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.method),
			attribute.String("supabase.path", req.path),
		))
	defer span.End()

	// Bodies cannot be replayed, so only body-less or buffered requests are retried.
	var payload []byte
	if req.body != nil && req.idempotent {
		b, err := io.ReadAll(req.body)
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
		payload = b
	}

	once := func() ([]byte, error) {
		return circuitbreaker.Run(t.breaker, func() ([]byte, error) {
			body := req.body
			if payload != nil {
				body = bytes.NewReader(payload)
			}
			return t.send(ctx, req, body)
		})
	}

	var (
		out []byte
		err error
	)
	if req.idempotent {
		out, err = retry.Do(ctx, t.retryCfg, once)
	} else {
		out, err = once()
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider call failed")
	}
	return out, err
}

func (t *transport) send(ctx context.Context, req request, body io.Reader) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.method, t.baseURL+req.path, body)
	if err != nil {
		return nil, fmt.Errorf("create http request: %w", err)
	}
	for k, vs := range req.header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("apikey", req.apiKey)
	if req.bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.bearer)
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		out, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response body: %w", err)
		}
		return out, nil
	}

	errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return nil, parseAPIError(resp.StatusCode, errBody)
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return bytes.NewReader(b), nil
}
