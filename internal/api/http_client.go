package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ngmaloney/solar-terminal/internal/metrics"
	"github.com/ngmaloney/solar-terminal/internal/models"
)

// DefaultTimeout bounds every backend call.
const DefaultTimeout = 30 * time.Second

// HTTPClient implements Client against the FastAPI prediction backend.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	recorder   Recorder
	sessionID  string
}

// NewClient creates a backend client. An empty baseURL falls back to DefaultBaseURL.
func NewClient(baseURL string) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent: "SolarTerminal/1.0 (github.com/ngmaloney/solar-terminal)",
	}
}

// SetTimeout overrides the transport timeout.
func (c *HTTPClient) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

// SetRecorder journals every call under the given session id.
func (c *HTTPClient) SetRecorder(r Recorder, sessionID string) {
	c.recorder = r
	c.sessionID = sessionID
}

// BaseURL returns the configured backend root.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// GetPredictions retrieves the series bundle for a view
func (c *HTTPClient) GetPredictions(ctx context.Context, mode models.ViewMode, rangeDays int, date *models.Date) (*models.SeriesBundle, error) {
	q := url.Values{}
	q.Set("view_mode", mode.String())
	q.Set("range_days", strconv.Itoa(rangeDays))
	if date != nil && !date.IsZero() {
		q.Set("date", date.String())
	}

	var resp predictionsResponse
	if err := c.do(ctx, http.MethodGet, "/predictions", q, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch predictions: %w", err)
	}

	bundle, err := resp.toModel()
	if err != nil {
		return nil, fmt.Errorf("failed to read predictions: %w", err)
	}
	return bundle, nil
}

// GetCurrentWeather retrieves the live weather snapshot
func (c *HTTPClient) GetCurrentWeather(ctx context.Context) (*models.WeatherSnapshot, error) {
	var resp weatherResponse
	if err := c.do(ctx, http.MethodGet, "/current-weather", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch current weather: %w", err)
	}

	snapshot, err := resp.toModel()
	if err != nil {
		return nil, fmt.Errorf("failed to read current weather: %w", err)
	}
	return snapshot, nil
}

// GetModelPerformance retrieves the analytics payload
func (c *HTTPClient) GetModelPerformance(ctx context.Context) (*models.PerformanceBundle, error) {
	var resp performanceResponse
	if err := c.do(ctx, http.MethodGet, "/analytics/model-performance", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch model performance: %w", err)
	}

	bundle, err := resp.toModel()
	if err != nil {
		return nil, fmt.Errorf("failed to read model performance: %w", err)
	}
	return bundle, nil
}

// TriggerDay queues prediction jobs for a date on the backend
func (c *HTTPClient) TriggerDay(ctx context.Context, date models.Date) (*models.TriggerAck, error) {
	if date.IsZero() {
		return nil, errors.New("trigger date is required")
	}
	q := url.Values{}
	q.Set("date", date.String())

	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/trigger-day", q, &resp); err != nil {
		return nil, fmt.Errorf("failed to trigger day: %w", err)
	}
	return &models.TriggerAck{Message: resp.Message}, nil
}

// GetStatus retrieves the backend status
func (c *HTTPClient) GetStatus(ctx context.Context) (*models.StatusReport, error) {
	var resp struct {
		Status string `json:"status"`
		Time   string `json:"time"`
	}
	if err := c.do(ctx, http.MethodGet, "/status", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch status: %w", err)
	}
	if resp.Status == "" {
		return nil, malformed("status payload has no status")
	}

	report := &models.StatusReport{Status: resp.Status}
	if resp.Time != "" {
		if t, err := models.ParseTimestamp(resp.Time); err == nil {
			report.Time = t
		}
	}
	return report, nil
}

// do issues one request, decodes a 200 JSON body into out, and reports the
// call to metrics and the recorder.
func (c *HTTPClient) do(ctx context.Context, method, path string, q url.Values, out any) (err error) {
	endpoint := c.baseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	start := time.Now()
	status := 0
	defer func() {
		c.observe(ctx, path, q, start, status, err)
	}()

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) observe(ctx context.Context, path string, q url.Values, start time.Time, status int, err error) {
	elapsed := time.Since(start)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if status != 0 {
			outcome = strconv.Itoa(status)
		}
	}
	metrics.APICallsTotal.WithLabelValues(path, outcome).Inc()
	metrics.APILatency.WithLabelValues(path).Observe(elapsed.Seconds())

	if c.recorder == nil {
		return
	}
	rec := models.FetchRecord{
		SessionID:  c.sessionID,
		Seq:        seqFrom(ctx),
		Endpoint:   path,
		Query:      q.Encode(),
		StartedAt:  start,
		Duration:   elapsed,
		HTTPStatus: status,
		Success:    err == nil,
	}
	if err != nil {
		rec.Error = err.Error()
	}
	// The journal outlives a cancelled request context.
	if rerr := c.recorder.RecordFetch(context.WithoutCancel(ctx), rec); rerr != nil {
		log.Printf("api: journal %s: %v", path, rerr)
	}
}
