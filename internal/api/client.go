// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the AI-chat service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the AI-chat service client.
type ClientError struct {
	Type    ErrorType
	Message string
	Status  int // HTTP status for ErrTypeStatus, 0 otherwise
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnreachable
	ErrTypeTimeout
	ErrTypeStatus
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeUnreachable, Message: "AI-chat service is not reachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsStatus checks if an error is a non-2xx status error and returns the status.
func IsStatus(err error) (int, bool) {
	var clientErr *ClientError
	if errors.As(err, &clientErr) && clientErr.Type == ErrTypeStatus {
		return clientErr.Status, true
	}
	return 0, false
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the service client.
type ClientConfig struct {
	// BaseURL is the service base URL (default: http://127.0.0.1:8008)
	BaseURL string

	// Timeout for requests (default: 60s). Every call completes within this
	// bound so a hung request cannot leave the UI loading forever.
	Timeout time.Duration

	// RequestsPerSecond caps outgoing request rate (default: 10).
	RequestsPerSecond float64

	// Burst is the rate limiter burst size (default: 5).
	Burst int

	// Logger receives one debug line per request. Nil discards.
	Logger *log.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           "http://127.0.0.1:8008",
		Timeout:           60 * time.Second,
		RequestsPerSecond: 10,
		Burst:             5,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the AI-chat service.
//
// The Client is safe for concurrent use; it holds no mutable request state.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewClient creates a new service client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new service client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8008"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.RequestsPerSecond == 0 {
		config.RequestsPerSecond = 10
	}
	if config.Burst == 0 {
		config.Burst = 5
	}

	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
		logger:     logger,
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// do executes a request against the service and decodes a 2xx JSON body into
// out (skipped when out is nil). Non-2xx statuses map to a uniform
// ErrTypeStatus error; bodies of failed responses are not interpreted.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &ClientError{Type: ErrTypeTimeout, Message: "rate limiter wait aborted", Cause: err}
	}

	endpoint := c.config.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			c.logger.Debug("request timed out", "method", method, "path", path, "request_id", requestID)
			return ErrTimeout
		}
		c.logger.Debug("request failed", "method", method, "path", path, "request_id", requestID, "err", err)
		return ErrUnreachable
	}
	defer drainAndClose(resp.Body)

	c.logger.Debug("request done",
		"method", method, "path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ClientError{
			Type:    ErrTypeStatus,
			Message: "unexpected status from service: " + resp.Status,
			Status:  resp.StatusCode,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// getJSON issues a GET request and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

// postJSON issues a POST request with a JSON body and decodes the response.
func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}
	return c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(body), "application/json", out)
}

// deleteJSON issues a DELETE request and decodes the response into out.
func (c *Client) deleteJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", out)
}

// pageQuery builds the limit/offset query shared by the list endpoints.
func pageQuery(limit, offset int) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return q
}

// Helper to drain and close a response body so connections are reused.
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, r)
	r.Close()
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// CreateChat starts a new chat or continues an existing one (POST /chat).
// The acknowledgement carries the agent's answer and the chat id only; fetch
// the full transcript with GetChat afterwards.
func (c *Client) CreateChat(ctx context.Context, req ChatRequest) (*AIResponse, error) {
	var result AIResponse
	if err := c.postJSON(ctx, "/chat", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListChats retrieves a page of chats (GET /chats). An empty userID lists
// chats for all users.
func (c *Client) ListChats(ctx context.Context, limit, offset int, userID string) (*ChatListResponse, error) {
	q := pageQuery(limit, offset)
	if userID != "" {
		q.Set("user_id", userID)
	}
	var result ChatListResponse
	if err := c.getJSON(ctx, "/chats", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetChat retrieves a chat with its full transcript (GET /chats/{id}).
func (c *Client) GetChat(ctx context.Context, id string) (*Chat, error) {
	var result Chat
	if err := c.getJSON(ctx, "/chats/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteChat removes a chat (DELETE /chats/{id}).
func (c *Client) DeleteChat(ctx context.Context, id string) (*DeleteResponse, error) {
	var result DeleteResponse
	if err := c.deleteJSON(ctx, "/chats/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// DOCUMENT OPERATIONS
// =============================================================================

// ListDocuments retrieves a page of the document corpus (GET /documents).
func (c *Client) ListDocuments(ctx context.Context, limit, offset int) (*DocumentListResponse, error) {
	var result DocumentListResponse
	if err := c.getJSON(ctx, "/documents", pageQuery(limit, offset), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetDocument retrieves a single document with full content (GET /documents/{id}).
func (c *Client) GetDocument(ctx context.Context, id string) (*Document, error) {
	var result Document
	if err := c.getJSON(ctx, "/documents/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteDocument removes a document (DELETE /documents/{id}). The service
// guarantees the vector index is invalidated before responding.
func (c *Client) DeleteDocument(ctx context.Context, id string) (*DeleteResponse, error) {
	var result DeleteResponse
	if err := c.deleteJSON(ctx, "/documents/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// SEARCH OPERATIONS
// =============================================================================

// SearchDocuments performs a keyword similarity search (GET /documents/search).
// scoreThreshold < 0 means no threshold.
func (c *Client) SearchDocuments(ctx context.Context, query string, limit int, scoreThreshold float64) ([]SearchResult, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("limit", strconv.Itoa(limit))
	if scoreThreshold >= 0 {
		q.Set("score_threshold", strconv.FormatFloat(scoreThreshold, 'f', -1, 64))
	}
	var result []SearchResult
	if err := c.getJSON(ctx, "/documents/search", q, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// RAGSearch performs a retrieval-augmented search (GET /rag/search).
// A 2xx response with a non-empty Error field is returned without error;
// callers must treat it as a soft failure.
func (c *Client) RAGSearch(ctx context.Context, prompt string, count int, scoreThreshold float64) (*RAGSearchResponse, error) {
	q := url.Values{}
	q.Set("prompt", prompt)
	q.Set("count", strconv.Itoa(count))
	if scoreThreshold >= 0 {
		q.Set("score_threshold", strconv.FormatFloat(scoreThreshold, 'f', -1, 64))
	}
	var result RAGSearchResponse
	if err := c.getJSON(ctx, "/rag/search", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// USER OPERATIONS
// =============================================================================

// ListUsers retrieves a page of users (GET /users).
func (c *Client) ListUsers(ctx context.Context, limit, offset int) (*UserListResponse, error) {
	var result UserListResponse
	if err := c.getJSON(ctx, "/users", pageQuery(limit, offset), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetUser retrieves a single user (GET /users/{id}).
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var result User
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateUser creates a user (POST /users). Login uniqueness is enforced by
// the service; a conflict surfaces as an ErrTypeStatus error.
func (c *Client) CreateUser(ctx context.Context, login string) (*User, error) {
	var result User
	if err := c.postJSON(ctx, "/users", CreateUserRequest{Login: login}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteUser removes a user (DELETE /users/{id}).
func (c *Client) DeleteUser(ctx context.Context, id string) (*DeleteResponse, error) {
	var result DeleteResponse
	if err := c.deleteJSON(ctx, "/users/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
