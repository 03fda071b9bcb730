package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"studioops/internal/logging"
	"studioops/internal/ports"
)

// Client talks JSON to the ops backend. One accessor per domain resource,
// all sharing a single base URL and transport.
type Client struct {
	Dashboard *DashboardService
	Exports   *ExportService
	Members   *MemberService
	Sessions  *SessionService
	Tickets   *LessonTicketService
}

// Verify accessor interface compliance at compile time
var (
	_ ports.DashboardAPI    = (*DashboardService)(nil)
	_ ports.ExportAPI       = (*ExportService)(nil)
	_ ports.LessonTicketAPI = (*LessonTicketService)(nil)
	_ ports.MemberAPI       = (*MemberService)(nil)
	_ ports.SessionAPI      = (*SessionService)(nil)
)

// NewClient creates a backend client for the given base URL
func NewClient(baseURL string, timeout time.Duration) *Client {
	rest := &restClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	return &Client{
		Dashboard: &DashboardService{rest: rest},
		Exports:   &ExportService{rest: rest},
		Members:   &MemberService{rest: rest},
		Sessions:  &SessionService{rest: rest},
		Tickets:   &LessonTicketService{rest: rest},
	}
}

// Backend returns the accessors bundled as the ports struct services expect
func (c *Client) Backend() ports.Backend {
	return ports.Backend{
		Dashboard: c.Dashboard,
		Exports:   c.Exports,
		Members:   c.Members,
		Sessions:  c.Sessions,
		Tickets:   c.Tickets,
	}
}

// APIError is a server-reported failure: the backend answered with a
// non-2xx status. Detail carries the backend message verbatim when present.
type APIError struct {
	Detail     string
	Operation  string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s failed: %s (status %d)", e.Operation, e.Detail, e.StatusCode)
	}
	return fmt.Sprintf("%s failed with status %d", e.Operation, e.StatusCode)
}

// TransportError is a failure before any response reached the client
type TransportError struct {
	Err       error
	Operation string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// restClient carries the base URL and transport shared by all accessors
type restClient struct {
	baseURL    string
	httpClient *http.Client
}

// do issues a request and decodes the JSON response into out (when non-nil).
// Non-2xx statuses become APIError with the backend detail surfaced.
func (c *restClient) do(ctx context.Context, operation, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", operation, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", operation, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Logger.Warn("Backend request failed",
			"operation", operation,
			"method", method,
			"path", path,
			"error", err)
		return &TransportError{Err: err, Operation: operation}
	}
	defer resp.Body.Close()

	logging.Logger.Debug("Backend request",
		"operation", operation,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Detail:     readDetail(resp.Body),
			Operation:  operation,
			StatusCode: resp.StatusCode,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", operation, err)
	}
	return nil
}

// stream issues a GET and returns the raw body for binary downloads
func (c *restClient) stream(ctx context.Context, operation, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build request: %w", operation, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err, Operation: operation}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, &APIError{
			Detail:     readDetail(resp.Body),
			Operation:  operation,
			StatusCode: resp.StatusCode,
		}
	}
	return resp.Body, nil
}

// readDetail extracts the backend's human-readable detail field, if any
func readDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 64*1024))
	if err != nil {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.Detail
}
