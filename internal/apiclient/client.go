// Package apiclient talks to the guest-experience backend on behalf of a browser session.
package apiclient

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

	"github.com/AnshRaj112/guestexp-web/internal/models"
)

const maxErrorBody = 4 << 10

// APIError is returned for any non-2xx backend response.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
}

// Client is a thin typed wrapper over the backend JSON endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client for baseURL. A zero timeout leaves requests bounded only by their context.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL is the backend origin, used to absolutise root-relative asset paths.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SubmitFeedback posts a feedback form. A non-2xx answer is returned as *APIError
// carrying the backend's detail message.
func (c *Client) SubmitFeedback(ctx context.Context, cookies []*http.Cookie, sub models.FeedbackSubmission) (*models.SubmitResult, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("encode feedback: %w", err)
	}
	var result models.SubmitResult
	if err := c.do(ctx, http.MethodPost, "/api/feedback/submit", cookies, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Recommendations loads the recommendation set for guestID, or the default set when guestID is empty.
func (c *Client) Recommendations(ctx context.Context, cookies []*http.Cookie, guestID string) (*models.RecommendationSet, error) {
	path := "/api/recommendations/default"
	if guestID != "" {
		path = "/api/recommendations/guest/" + url.PathEscape(guestID)
	}
	var resp models.RecommendationsResponse
	if err := c.do(ctx, http.MethodGet, path, cookies, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("recommendations: backend reported failure")
	}
	return &resp.Data, nil
}

// AnalyzeSentiment asks the backend to classify text.
func (c *Client) AnalyzeSentiment(ctx context.Context, cookies []*http.Cookie, text string) (*models.SentimentResult, error) {
	q := url.Values{}
	q.Set("text", text)
	var result models.SentimentResult
	if err := c.do(ctx, http.MethodGet, "/api/feedback/analyze?"+q.Encode(), cookies, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Dashboard loads the aggregate analytics.
func (c *Client) Dashboard(ctx context.Context, cookies []*http.Cookie) (*models.Dashboard, error) {
	var resp models.DashboardResponse
	if err := c.do(ctx, http.MethodGet, "/api/analytics/dashboard", cookies, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("analytics: backend reported failure")
	}
	return &resp.Data, nil
}

// CurrentUser returns the logged-in user for the forwarded session cookie.
func (c *Client) CurrentUser(ctx context.Context, cookies []*http.Cookie) (*models.CurrentUser, error) {
	var user models.CurrentUser
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", cookies, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path string, cookies []*http.Cookie, body []byte, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// readDetail pulls a FastAPI-style {"detail": "..."} or {"message": "..."} out of an error body.
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	var detail string
	if len(payload.Detail) > 0 && json.Unmarshal(payload.Detail, &detail) == nil && detail != "" {
		return detail
	}
	return payload.Message
}
