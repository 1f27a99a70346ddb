// Package apiclient is a typed Go client for the portfolio backend API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const adminKeyHeader = "X-Admin-Key"

// Config holds the client settings. BaseURL is required; AdminKey is only
// needed for the mutating and listing endpoints that the server gates.
type Config struct {
	BaseURL    string
	AdminKey   string
	Timeout    time.Duration // per-request; default 10s
	MaxRetries int           // idempotent GETs only; default 2, -1 disables
	RetryDelay time.Duration // doubles per attempt; default 500ms
}

// Client talks to the backend over HTTP.
type Client struct {
	baseURL    string
	adminKey   string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

// New creates a Client. Invalid or missing BaseURL returns an error.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("apiclient: base url required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("apiclient: invalid base url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	} else if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}
	return &Client{
		baseURL:    base,
		adminKey:   cfg.AdminKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// ---------------------------------------------------------------------------
// wire types
// ---------------------------------------------------------------------------

// Post is a blog post as returned by the API. Content is empty in listings.
type Post struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content,omitempty"`
	Excerpt       string    `json:"excerpt"`
	Slug          string    `json:"slug"`
	Author        string    `json:"author"`
	Tags          []string  `json:"tags"`
	PublishedAt   time.Time `json:"publishedAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	IsPublished   bool      `json:"isPublished"`
	FeaturedImage string    `json:"featuredImage,omitempty"`
	ReadTime      int       `json:"readTime"`
}

// PostInput is the payload for creating or updating a post.
type PostInput struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt,omitempty"`
	Author        string   `json:"author,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	IsPublished   *bool    `json:"isPublished,omitempty"`
	FeaturedImage string   `json:"featuredImage,omitempty"`
}

// Pagination describes a listing page.
type Pagination struct {
	Current int  `json:"current"`
	Total   int  `json:"total"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// PostsPage is one page of the blog listing.
type PostsPage struct {
	Posts      []Post     `json:"posts"`
	Tag        string     `json:"tag,omitempty"`
	Pagination Pagination `json:"pagination"`
}

// ContactInput is the contact form payload.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Contact is a stored contact message (admin listing).
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	IsRead    bool      `json:"isRead"`
	IPAddress string    `json:"ipAddress,omitempty"`
}

// ContactsPage is one page of the contact listing.
type ContactsPage struct {
	Contacts   []Contact  `json:"contacts"`
	Pagination Pagination `json:"pagination"`
}

// FieldError is one per-field validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-2xx response decoded into the server's error envelope.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("api: %d %s (%d field errors)", e.Status, e.Message, len(e.Fields))
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// ---------------------------------------------------------------------------
// operations
// ---------------------------------------------------------------------------

func listQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// Posts returns one page of published posts. Zero page/limit use the
// server defaults.
func (c *Client) Posts(ctx context.Context, page, limit int) (*PostsPage, error) {
	var out PostsPage
	if err := c.get(ctx, "/api/blog", listQuery(page, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PostsByTag returns one page of published posts carrying the tag.
func (c *Client) PostsByTag(ctx context.Context, tag string, page, limit int) (*PostsPage, error) {
	var out PostsPage
	path := "/api/blog/tag/" + url.PathEscape(tag)
	if err := c.get(ctx, path, listQuery(page, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tags returns every tag in use across published posts, sorted.
func (c *Client) Tags(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.get(ctx, "/api/blog/tags/all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Post returns the full published post with the given slug.
func (c *Client) Post(ctx context.Context, slug string) (*Post, error) {
	var out Post
	if err := c.get(ctx, "/api/blog/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePost creates a post. Requires the admin key.
func (c *Client) CreatePost(ctx context.Context, in PostInput) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodPost, "/api/blog", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePost replaces the post with the given id. Requires the admin key.
func (c *Client) UpdatePost(ctx context.Context, id string, in PostInput) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodPut, "/api/blog/"+url.PathEscape(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePost deletes the post with the given id and returns its title.
// Requires the admin key.
func (c *Client) DeletePost(ctx context.Context, id string) (string, error) {
	var out struct {
		Title string `json:"title"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/blog/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return "", err
	}
	return out.Title, nil
}

// ClearPosts deletes every post and returns the deleted count. Requires
// the admin key.
func (c *Client) ClearPosts(ctx context.Context) (int64, error) {
	var out struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/blog/clear/all", nil, nil, &out); err != nil {
		return 0, err
	}
	return out.DeletedCount, nil
}

// SubmitContact submits the contact form.
func (c *Client) SubmitContact(ctx context.Context, in ContactInput) error {
	return c.do(ctx, http.MethodPost, "/api/contact", nil, in, nil)
}

// Contacts returns one page of stored contact messages. Requires the
// admin key.
func (c *Client) Contacts(ctx context.Context, page, limit int) (*ContactsPage, error) {
	var out ContactsPage
	if err := c.get(ctx, "/api/contact", listQuery(page, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------------------------------------------------------------------------
// transport
// ---------------------------------------------------------------------------

// get performs a GET with retries. Only GETs retry: they are idempotent,
// and a retried POST could double-submit.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	delay := c.retryDelay
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		err := c.doOnce(ctx, http.MethodGet, path, query, nil, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable(err) {
			return err
		}
	}
	return lastErr
}

// do performs a single non-retried request.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return c.doOnce(ctx, method, path, query, body, out)
}

// retryable reports whether the request may be re-sent: transport errors
// and 5xx responses only.
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	return true
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("apiclient: encode request: %w", err)
		}
		payload = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.adminKey != "" {
		req.Header.Set(adminKeyHeader, c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		apiErr.Message = resp.Status
		return apiErr
	}

	var envelope struct {
		Message string       `json:"message"`
		Errors  []FieldError `json:"errors"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
		if apiErr.Message == "" {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	apiErr.Message = envelope.Message
	apiErr.Fields = envelope.Errors
	return apiErr
}
