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

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prepdesk/prepdesk/internal/config"
)

// Client is the HTTP adapter for the PrepDesk backend API. Every
// request carries the stored bearer token when one exists; a 401
// reply clears the stored token and signals the shell through
// SessionInvalidated. 403 and 5xx replies are recorded in the log and
// surfaced to the caller without touching session state.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	creds       *config.CredentialStore
	logger      *zap.Logger
	invalidated chan struct{}
}

// NewClient creates a new API client.
func NewClient(baseURL string, creds *config.CredentialStore, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		creds:       creds,
		logger:      logger,
		invalidated: make(chan struct{}, 1),
	}
}

// SessionInvalidated returns the channel the client signals after a
// 401 reply. The shell subscribes to it and redirects to the login
// view; transport code never navigates. At most one signal is pending
// at a time.
func (c *Client) SessionInvalidated() <-chan struct{} {
	return c.invalidated
}

// do executes a JSON request against the API and unmarshals the
// response into result when result is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, result any) error {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if resp.StatusCode >= 400 {
		return c.replyError(method, path, requestID, resp.StatusCode, respBody)
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &ServerResponseError{Reason: err.Error()}
		}
	}

	return nil
}

// replyError maps a non-2xx reply onto the error taxonomy and applies
// the cross-cutting 401 reaction.
func (c *Client) replyError(method, path, requestID string, status int, body []byte) error {
	msg := serverMessage(body)

	switch {
	case status == http.StatusUnauthorized:
		// An unverifiable credential is treated as invalid: drop it
		// and signal the shell. The signal channel holds at most one
		// pending entry so repeated 401s collapse into one reaction.
		if err := c.creds.Clear(); err != nil {
			c.logger.Error("clear credentials", zap.Error(err))
		}
		select {
		case c.invalidated <- struct{}{}:
		default:
		}
		c.logger.Warn("session invalidated",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID))
		return &AuthenticationError{Message: msg}

	case status == http.StatusForbidden:
		c.logger.Warn("forbidden",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.String("server_error", msg))
		return &AuthorizationError{Message: msg}

	case status >= 500:
		c.logger.Error("server fault",
			zap.Int("status", status),
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.String("server_error", msg))
		return &ServerFaultError{Status: status, Message: msg}

	default:
		return &ApplicationError{Status: status, Message: msg}
	}
}
