// Package client is a Go client for the CareerLens HTTP API.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/careerlens/careerlens/internal/models"
)

// DefaultTimeout covers a full model call on the server.
const DefaultTimeout = 3 * time.Minute

type Client struct {
	http *resty.Client
}

type Option func(*resty.Client)

func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) { c.SetTimeout(d) }
}

// WithToken sends a bearer token on every request.
func WithToken(token string) Option {
	return func(c *resty.Client) { c.SetAuthToken(token) }
}

func New(baseURL string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(DefaultTimeout).
		SetHeader("Accept", "application/json")
	for _, o := range opts {
		o(rc)
	}
	return &Client{http: rc}
}

// APIError is a non-2xx response. Message is the server's error or message
// text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("careerlens: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return e.Message
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == status
}

type envelope struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e envelope) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

func (c *Client) send(ctx context.Context, r *resty.Request, method, path string, out any) error {
	var fail envelope
	resp, err := r.SetContext(ctx).SetResult(out).SetError(&fail).Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return &APIError{StatusCode: resp.StatusCode(), Message: fail.text()}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, c.http.R().SetBody(body), http.MethodPost, path, out)
}

func (c *Client) Health(ctx context.Context) (string, error) {
	var out struct {
		envelope
		Status string `json:"status"`
	}
	if err := c.send(ctx, c.http.R(), http.MethodGet, "/api/health", &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

// ExtractResume uploads a PDF or DOCX resume and returns its text.
func (c *Client) ExtractResume(ctx context.Context, filename string, r io.Reader) (*models.ExtractedResume, error) {
	var out struct {
		envelope
		models.ExtractedResume
	}
	req := c.http.R().SetFileReader("resume", filename, r)
	if err := c.send(ctx, req, http.MethodPost, "/api/analyze/extract-pdf", &out); err != nil {
		return nil, err
	}
	return &out.ExtractedResume, nil
}

func (c *Client) Review(ctx context.Context, req models.ReviewRequest) (string, error) {
	var out struct {
		envelope
		Output string `json:"output"`
	}
	if err := c.postJSON(ctx, "/api/analyze/run", req, &out); err != nil {
		return "", err
	}
	return out.Output, nil
}

func (c *Client) SkillGap(ctx context.Context, req models.SkillGapRequest) (*models.SkillGapReport, error) {
	var out struct {
		envelope
		Analysis *models.SkillGapReport `json:"analysis"`
	}
	if err := c.postJSON(ctx, "/api/analyze/skill-gap", req, &out); err != nil {
		return nil, err
	}
	return out.Analysis, nil
}

func (c *Client) CareerRoadmap(ctx context.Context, req models.RoadmapRequest) (*models.CareerRoadmap, error) {
	var out struct {
		envelope
		Roadmap *models.CareerRoadmap `json:"roadmap"`
	}
	if err := c.postJSON(ctx, "/api/analyze/career-roadmap", req, &out); err != nil {
		return nil, err
	}
	return out.Roadmap, nil
}
