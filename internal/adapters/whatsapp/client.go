package whatsapp

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
	"sync/atomic"
	"time"

	"github.com/bnema/opbots/internal/domain"
	"github.com/bnema/opbots/internal/ports"
)

const maxGatewayResponseBytes = 1 << 20

// API locates the endpoints of a WhatsApp Web automation gateway.
type API struct {
	BaseURL     string
	SessionPath string
	GroupsPath  string
}

func DefaultAPI(baseURL string) API {
	return API{BaseURL: baseURL, SessionPath: "/session", GroupsPath: "/groups"}
}

// Client drives the gateway over HTTP. The connection flag is refreshed by
// Watch and by every gateway answer that reports the session state.
type Client struct {
	API            API
	HTTPClient     *http.Client
	APIKey         string
	RequestTimeout time.Duration
	Logger         *slog.Logger

	connected atomic.Bool
}

var _ ports.GroupCreator = (*Client)(nil)

type SessionStatus struct {
	Connected bool   `json:"connected"`
	QR        string `json:"qr"`
}

type createGroupRequest struct {
	Subject      string   `json:"subject"`
	Participants []string `json:"participants"`
}

type createGroupResponse struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
}

type gatewayError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) IsConnected() bool {
	return c.connected.Load()
}

func (c *Client) Status(ctx context.Context) (SessionStatus, error) {
	endpoint, err := buildAPIURL(c.API.BaseURL, c.API.SessionPath)
	if err != nil {
		return SessionStatus{}, err
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return SessionStatus{}, fmt.Errorf("create session request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return SessionStatus{}, fmt.Errorf("request session status: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return SessionStatus{}, fmt.Errorf("request session status: %s", decodeGatewayError(resp))
	}

	var status SessionStatus
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxGatewayResponseBytes)).Decode(&status); err != nil {
		return SessionStatus{}, fmt.Errorf("decode session status: %w", err)
	}

	c.connected.Store(status.Connected)
	return status, nil
}

func (c *Client) CreateGroup(ctx context.Context, name string, participants []string) (ports.GroupInfo, error) {
	if strings.TrimSpace(name) == "" {
		return ports.GroupInfo{}, errors.New("group name is required")
	}
	if len(participants) == 0 {
		return ports.GroupInfo{}, errors.New("at least one participant is required")
	}

	endpoint, err := buildAPIURL(c.API.BaseURL, c.API.GroupsPath)
	if err != nil {
		return ports.GroupInfo{}, err
	}

	body, err := json.Marshal(createGroupRequest{Subject: name, Participants: participants})
	if err != nil {
		return ports.GroupInfo{}, fmt.Errorf("encode create group request: %w", err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return ports.GroupInfo{}, fmt.Errorf("create group request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return ports.GroupInfo{}, fmt.Errorf("create group: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusServiceUnavailable {
		c.connected.Store(false)
		return ports.GroupInfo{}, fmt.Errorf("create group: %w: %s", domain.ErrNotConnected, decodeGatewayError(resp))
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return ports.GroupInfo{}, fmt.Errorf("create group: %s", decodeGatewayError(resp))
	}

	var payload createGroupResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxGatewayResponseBytes)).Decode(&payload); err != nil {
		return ports.GroupInfo{}, fmt.Errorf("decode create group response: %w", err)
	}
	if payload.ID == "" {
		return ports.GroupInfo{}, errors.New("create group response missing group id")
	}

	subject := payload.Subject
	if subject == "" {
		subject = name
	}
	return ports.GroupInfo{ID: payload.ID, Name: subject}, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func decodeGatewayError(resp *http.Response) string {
	var payload gatewayError
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxGatewayResponseBytes)).Decode(&payload); err != nil {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}

	switch {
	case payload.Error != "" && payload.Message != "":
		return payload.Error + ": " + payload.Message
	case payload.Error != "":
		return payload.Error
	case payload.Message != "":
		return payload.Message
	default:
		return fmt.Sprintf("status %d", resp.StatusCode)
	}
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("gateway base url is required")
	}
	if path == "" {
		return "", errors.New("gateway path is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse gateway base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("gateway base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("gateway base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse gateway path: %w", err)
	}
	return endpoint.String(), nil
}
