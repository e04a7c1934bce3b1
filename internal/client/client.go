// Package client talks to the projects HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/folioadmin/folioadmin-go/internal/model"
)

const DefaultTimeout = 15 * time.Second

// Client is a projects API client. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRateLimit caps outbound requests to rps per second with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Inf, 0),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (model.LoginResponse, error) {
	body, err := json.Marshal(model.LoginRequest{Username: username, Password: password})
	if err != nil {
		return model.LoginResponse{}, fmt.Errorf("encode login: %w", err)
	}

	var resp model.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", "", bytes.NewReader(body), "application/json", &resp); err != nil {
		return model.LoginResponse{}, err
	}
	return resp, nil
}

// ListProjects fetches the full project collection.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var resp model.ProjectListResponse
	if err := c.do(ctx, http.MethodGet, "/projects", "", nil, "", &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []model.Project{}, nil
	}
	return resp.Data, nil
}

// CreateProject uploads a new project and returns the server message.
func (c *Client) CreateProject(ctx context.Context, token string, in model.ProjectInput) (string, error) {
	body, contentType, err := encodeProject(in)
	if err != nil {
		return "", err
	}

	var resp model.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/projects", token, body, contentType, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// UpdateProject replaces the fields of project id. The image is only sent
// when in.Image is set.
func (c *Client) UpdateProject(ctx context.Context, token string, id int64, in model.ProjectInput) (model.UpdateProjectResponse, error) {
	body, contentType, err := encodeProject(in)
	if err != nil {
		return model.UpdateProjectResponse{}, err
	}

	var resp model.UpdateProjectResponse
	if err := c.do(ctx, http.MethodPatch, projectPath(id), token, body, contentType, &resp); err != nil {
		return model.UpdateProjectResponse{}, err
	}
	return resp, nil
}

// DeleteProject removes project id and returns the server message.
func (c *Client) DeleteProject(ctx context.Context, token string, id int64) (string, error) {
	var resp model.MessageResponse
	if err := c.do(ctx, http.MethodDelete, projectPath(id), token, nil, "", &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ImageURL returns the absolute URL of a stored project image.
func (c *Client) ImageURL(filename string) string {
	return c.baseURL + "/uploads/" + url.PathEscape(filename)
}

// FetchImage downloads a stored project image. The caller closes the reader.
func (c *Client) FetchImage(ctx context.Context, filename string) (io.ReadCloser, error) {
	resp, err := c.send(ctx, http.MethodGet, "/uploads/"+url.PathEscape(filename), "", nil, "")
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func projectPath(id int64) string {
	return "/projects/" + strconv.FormatInt(id, 10)
}

func encodeProject(in model.ProjectInput) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"title", in.Title},
		{"description", in.Description},
		{"category", in.Category},
		{"link", in.Link},
		{"github", in.Github},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("encode %s: %w", f[0], err)
		}
	}

	if in.Image != nil && in.Image.Content != nil {
		part, err := mw.CreateFormFile("image", in.Image.Name)
		if err != nil {
			return nil, "", fmt.Errorf("encode image: %w", err)
		}
		if _, err := io.Copy(part, in.Image.Content); err != nil {
			return nil, "", fmt.Errorf("read image: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("encode multipart: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}

// do sends a request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, contentType string, out any) error {
	resp, err := c.send(ctx, method, path, token, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindDecode, Status: resp.StatusCode, Err: fmt.Errorf("decode JSON: %w", err)}
	}
	return nil
}

// send performs the request and turns transport failures and error statuses
// into *Error. On success the caller owns resp.Body.
func (c *Client) send(ctx context.Context, method, path, token string, body io.Reader, contentType string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &Error{Kind: KindNetwork, Err: fmt.Errorf("rate limit: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Err: fmt.Errorf("create request: %w", err)}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return nil, &Error{Kind: KindNetwork, Err: fmt.Errorf("request failed: %w", err)}
	}
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, &Error{
			Kind:    kindForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: readMessage(resp.Body),
		}
	}
	return resp, nil
}

func readMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 1<<20)).Decode(&body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
