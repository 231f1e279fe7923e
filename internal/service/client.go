package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"events-cms/internal/model"
)

const maxResponseBytes = 4 << 20

// Client talks to the events REST API. Every call performs one request and
// resolves to an ApiResponse; transport and decode failures are folded into
// the failure envelope instead of being returned as Go errors.
type Client struct {
	baseURL string
	client  *http.Client
	token   string
}

func NewClient(baseURL string, timeout time.Duration, client *http.Client) *Client {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = "http://localhost:8080"
	}
	trimmed = strings.TrimRight(trimmed, "/")
	if client == nil {
		client = &http.Client{Timeout: timeoutOrDefault(timeout)}
	} else if timeout > 0 {
		client.Timeout = timeout
	}
	return &Client{baseURL: trimmed, client: client}
}

// WithToken returns a copy of the client that sends token as a bearer credential.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = strings.TrimSpace(token)
	return &clone
}

func (c *Client) GetAllEvents(ctx context.Context) model.ApiResponse[[]model.Event] {
	return call[[]model.Event](ctx, c, http.MethodGet, "/api/v1/events", nil)
}

func (c *Client) GetEvent(ctx context.Context, id string) model.ApiResponse[model.Event] {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Fail[model.Event]("event id is required")
	}
	return call[model.Event](ctx, c, http.MethodGet, "/api/v1/events/"+url.PathEscape(id), nil)
}

func (c *Client) AddEvent(ctx context.Context, req model.EventCreateRequest) model.ApiResponse[model.Event] {
	return call[model.Event](ctx, c, http.MethodPost, "/api/v1/events", req)
}

func (c *Client) DeleteEvent(ctx context.Context, id string) model.ApiResponse[model.Empty] {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Fail[model.Empty]("event id is required")
	}
	return call[model.Empty](ctx, c, http.MethodDelete, "/api/v1/events/"+url.PathEscape(id), nil)
}

func call[T any](ctx context.Context, c *Client, method, endpoint string, payload any) model.ApiResponse[T] {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return model.Fail[T](fmt.Sprintf("encode request: %v", err))
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, endpoint, body)
	if err != nil {
		slog.Error("api request build failed", slog.String("path", endpoint), slog.Any("error", err))
		return model.Fail[T](err.Error())
	}

	slog.Debug("api request", slog.String("method", method), slog.String("url", req.URL.String()))

	res, err := c.client.Do(req)
	if err != nil {
		slog.Error("api request error", slog.String("method", method), slog.String("path", endpoint), slog.Any("error", err))
		return model.Fail[T](transportMessage(err))
	}
	defer res.Body.Close()

	slog.Debug("api response", slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()))

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return model.Fail[T](transportMessage(err))
	}

	var envelope model.ApiResponse[T]
	if err := json.Unmarshal(raw, &envelope); err != nil {
		if res.StatusCode >= http.StatusBadRequest {
			slog.Error("api unexpected status", slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()), slog.String("body", strings.TrimSpace(string(raw[:min(len(raw), 2048)]))))
			return model.FailStatus[T](res.StatusCode, fmt.Sprintf("unexpected response %d", res.StatusCode))
		}
		return model.Fail[T](fmt.Sprintf("decode response: %v", err))
	}

	envelope.Status = res.StatusCode
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		envelope.Success = false
		if strings.TrimSpace(envelope.Error) == "" && strings.TrimSpace(envelope.Message) == "" {
			envelope.Error = fmt.Sprintf("unexpected response %d", res.StatusCode)
		}
	}
	return envelope.Normalize()
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(endpoint, "/"), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func transportMessage(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "request timeout"
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	default:
		return err.Error()
	}
}

func timeoutOrDefault(value time.Duration) time.Duration {
	if value <= 0 {
		return 10 * time.Second
	}
	return value
}
