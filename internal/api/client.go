package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenSource supplies the current access token for outgoing requests.
// An empty string means the request is sent unauthenticated — the server
// is the authority on authorization, the client never blocks a call.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource holding a fixed token. Useful in tests.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Client is the HTTP binding for the fitness backend. Resource services
// hang off it; all of them funnel through the same request path, which
// injects the bearer token, a request id, and reports each call to the
// observer. The client never retries and never swallows errors.
type Client struct {
	baseURL  string
	http     *http.Client
	tokens   TokenSource
	observer Observer

	Auth         *AuthService
	Plans        *PlanService
	Exercises    *ExerciseService
	Steps        *StepService
	Measurements *MeasurementService
	Nutrition    *NutritionService
	Tracking     *TrackingService
}

// Option configures a Client during construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithObserver sets the per-call observer.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// New creates a Client rooted at baseURL (without the trailing /api).
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api",
		tokens:  tokens,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
			Timeout: 30 * time.Second,
		},
		observer: NoopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.observer == nil {
		c.observer = NoopObserver{}
	}

	c.Auth = &AuthService{c: c}
	c.Plans = &PlanService{c: c}
	c.Exercises = &ExerciseService{c: c}
	c.Steps = &StepService{c: c}
	c.Measurements = &MeasurementService{c: c}
	c.Nutrition = &NutritionService{c: c}
	c.Tracking = &TrackingService{c: c}
	return c
}

// do issues one JSON request. body may be nil; out may be nil when the
// caller does not care about the response payload.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.roundTrip(req, out)
}

// upload issues a multipart/form-data request with a single file part
// plus extra form fields. Used by the media and avatar endpoints, which
// reject the default JSON encoding.
func (c *Client) upload(ctx context.Context, path, filePath string, fields map[string]string, out any) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("opening upload file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("reading upload file: %w", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("building multipart body: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("building multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.roundTrip(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	return req, nil
}

func (c *Client) roundTrip(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observer.OnCallComplete(CallEvent{
			Method:    req.Method,
			Path:      req.URL.Path,
			LatencyMs: time.Since(start).Milliseconds(),
			Err:       err,
		})
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	event := CallEvent{
		Method:    req.Method,
		Path:      req.URL.Path,
		Status:    resp.StatusCode,
		LatencyMs: time.Since(start).Milliseconds(),
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Code: resp.StatusCode, Message: serverMessage(respBody)}
		event.Err = statusErr
		c.observer.OnCallComplete(event)
		return statusErr
	}
	c.observer.OnCallComplete(event)

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// serverMessage extracts the backend's error message from a non-2xx body,
// falling back to the raw body when it is not the usual JSON envelope.
func serverMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return strings.TrimSpace(string(body))
}
