package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Stuart-0728/cqnu/internal/errors"
	"github.com/Stuart-0728/cqnu/internal/log"
)

// Client is the association platform API client. It is an opaque REST
// collaborator: it issues authenticated requests and returns structured
// success/error results. Requests are single-attempt, no retries.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string

	logger *log.Logger
}

// NewClient creates a new API client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		logger: log.DefaultLogger().With("component", "api"),
	}
}

// SetToken sets the credential token attached to every outgoing request.
// An empty token detaches it.
func (c *Client) SetToken(token string) {
	c.Token = token
}

// doRequest performs an HTTP request with authentication and a correlation id.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return nil, errors.NewNetworkError(err)
	}

	return resp, nil
}

// parseResponse decodes the response body into target, enforcing the
// {success, message} envelope. Any shape the client cannot interpret is
// treated as a failure, never as partial data.
func (c *Client) parseResponse(resp *http.Response, action string, target interface{}) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewBadResponseError(err)
	}

	var env envelope
	envErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := ""
		if envErr == nil {
			msg = env.Message
		}
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return errors.New(errors.ErrCodeAuthSessionExpired, messageOr(msg, "authentication required"))
		case http.StatusForbidden:
			return errors.New(errors.ErrCodeAuthAdminRequired, messageOr(msg, "admin role required"))
		case http.StatusNotFound:
			return errors.New(errors.ErrCodeAPINotFound, messageOr(msg, action+" target not found"))
		default:
			return errors.NewAPIRejectedError(action, msg)
		}
	}

	if envErr != nil {
		return errors.NewBadResponseError(envErr)
	}
	if !env.Success {
		// 2xx with success=false still means the backend rejected the call.
		return errors.NewAPIRejectedError(action, env.Message)
	}

	if target != nil {
		if err := json.Unmarshal(raw, target); err != nil {
			return errors.NewBadResponseError(err)
		}
	}

	return nil
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}

// get is a convenience wrapper for GET endpoints.
func (c *Client) get(ctx context.Context, path, action string, target interface{}) error {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.parseResponse(resp, action, target)
}

// post is a convenience wrapper for POST endpoints.
func (c *Client) post(ctx context.Context, path, action string, body, target interface{}) error {
	resp, err := c.doRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return c.parseResponse(resp, action, target)
}

// put is a convenience wrapper for PUT endpoints.
func (c *Client) put(ctx context.Context, path, action string, body, target interface{}) error {
	resp, err := c.doRequest(ctx, http.MethodPut, path, body)
	if err != nil {
		return err
	}
	return c.parseResponse(resp, action, target)
}

// del is a convenience wrapper for DELETE endpoints.
func (c *Client) del(ctx context.Context, path, action string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	return c.parseResponse(resp, action, nil)
}
