package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"
)

const (
	StatusOk    = "Ok"
	StatusError = "Error"

	defaultTimeout = 30 * time.Second
)

var ErrServer = errors.New("server error")

// Client - HTTP клиент удаленного хранилища записей
type Client struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
}

// BaseURL собирает адрес сервера из host:port и признака TLS
func BaseURL(address string, tls bool) string {
	if tls {
		return "https://" + address
	}
	return "http://" + address
}

func New(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		log:       log.With("component", "remote_client"),
		baseURL:   baseURL,
		userAgent: "Shopkeeper-Client/1.0",
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type envelope struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	// huma отдает описание ошибки в detail
	Detail string `json:"detail"`
}

func (c *Client) doRequest(ctx context.Context, token, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug("sending request", "method", method, "url", req.URL.String())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	return resp, nil
}

func (c *Client) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("response received", "status", resp.StatusCode, "size", len(body))

	var env envelope
	_ = json.Unmarshal(body, &env)

	if resp.StatusCode >= http.StatusBadRequest {
		switch {
		case env.Error != "":
			return fmt.Errorf("%w: %s", ErrServer, env.Error)
		case env.Detail != "":
			return fmt.Errorf("%w: %s", ErrServer, env.Detail)
		}
		return fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode)
	}

	if env.Status == StatusError {
		return fmt.Errorf("%w: %s", ErrServer, env.Error)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}

	return nil
}

func (c *Client) call(ctx context.Context, token, method, path string, body, result any) error {
	resp, err := c.doRequest(ctx, token, method, path, body)
	if err != nil {
		return err
	}
	return c.parseResponse(resp, result)
}
