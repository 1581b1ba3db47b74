// Package client talks to the OCSF tool server over HTTP or NATS.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/telhawk-systems/ocsf-mcp/internal/logging"
	"github.com/telhawk-systems/ocsf-mcp/internal/messaging"
	natsclient "github.com/telhawk-systems/ocsf-mcp/internal/messaging/nats"
	"github.com/telhawk-systems/ocsf-mcp/internal/models"
	"github.com/telhawk-systems/ocsf-mcp/internal/tools"
	"github.com/telhawk-systems/ocsf-mcp/internal/transport"
)

// ErrEmptyResponse is returned when a 2xx reply has no result.
var ErrEmptyResponse = errors.New("server returned an empty result")

// Client calls the tool server. Clients built with NewNATS send every tool
// call over the message broker and connect on first use.
type Client struct {
	baseURL string
	token   string
	client  *http.Client

	natsURL string
	timeout time.Duration
	once    sync.Once
	broker  messaging.Client
	remote  *transport.Client
	connErr error
}

// New creates a Client for baseURL. An empty token sends no Authorization header.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// NewNATS creates a Client that calls tools on the subjects served by
// ocsf-mcp's NATS transport.
func NewNATS(natsURL string, timeout time.Duration) *Client {
	return &Client{natsURL: natsURL, timeout: timeout}
}

func (c *Client) connect() (*transport.Client, error) {
	c.once.Do(func() {
		cfg := natsclient.DefaultConfig()
		cfg.URL = c.natsURL
		cfg.Name = "ocsfctl"
		cfg.MaxReconnects = 0

		conn, err := natsclient.NewClient(cfg, logging.Nop())
		if err != nil {
			c.connErr = fmt.Errorf("failed to connect to %s: %w", c.natsURL, err)
			return
		}
		c.broker = conn
		c.remote = transport.NewClient(conn, messaging.DefaultToolSubjectPrefix, c.timeout)
	})
	return c.remote, c.connErr
}

// Close releases the broker connection, if one was opened.
func (c *Client) Close() error {
	if c.broker == nil {
		return nil
	}
	return c.broker.Close()
}

// StatusError is a non-2xx reply that carried no error envelope.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Body)
}

// Health fetches /healthz. A degraded server still returns its report.
// Over NATS the broker is pinged and a tool server must answer
// list_ocsf_versions; the default version is not reported.
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	if c.natsURL != "" {
		return c.natsHealth(ctx)
	}

	resp, err := c.do(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		return nil, statusError(resp)
	}

	var health models.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &health, nil
}

func (c *Client) natsHealth(ctx context.Context) (*models.HealthResponse, error) {
	if _, err := c.connect(); err != nil {
		return nil, err
	}
	if status := messaging.CheckClientHealth(ctx, c.broker); status.Error != "" {
		return nil, errors.New(status.Error)
	}

	var versions models.VersionsResponse
	if err := c.CallJSON(ctx, tools.ListVersions, nil, &versions); err != nil {
		return nil, err
	}
	return &models.HealthResponse{Status: "healthy", Versions: versions.Count}, nil
}

// ListTools fetches the tool catalog. NATS exposes no catalog subject, so
// the catalog this binary was built with is returned.
func (c *Client) ListTools(ctx context.Context) ([]tools.Definition, error) {
	if c.natsURL != "" {
		return tools.Definitions(), nil
	}

	resp, err := c.do(ctx, http.MethodGet, "/tools", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var body struct {
		Tools []tools.Definition `json:"tools"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return body.Tools, nil
}

// Call invokes a tool with args marshalled as JSON. Tool failures are
// returned as *tools.ToolError.
func (c *Client) Call(ctx context.Context, tool string, args any) (*tools.Result, error) {
	var raw []byte
	switch v := args.(type) {
	case nil:
		raw = []byte("{}")
	case json.RawMessage:
		raw = v
	case []byte:
		raw = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode arguments: %w", err)
		}
		raw = b
	}

	if c.natsURL != "" {
		remote, err := c.connect()
		if err != nil {
			return nil, err
		}
		return remote.Call(ctx, tool, raw, uuid.NewString())
	}

	resp, err := c.do(ctx, http.MethodPost, "/tools/"+tool, raw)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var env tools.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if env.Error != nil {
		return nil, env.Error
	}
	if env.Result == nil {
		return nil, ErrEmptyResponse
	}
	return env.Result, nil
}

// CallJSON invokes a tool and decodes its text output into out.
func (c *Client) CallJSON(ctx context.Context, tool string, args, out any) error {
	res, err := c.Call(ctx, tool, args)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(res.Text()), out); err != nil {
		return fmt.Errorf("decode %s output: %w", tool, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return c.client.Do(req)
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var env tools.Envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Error != nil {
		return env.Error
	}
	return &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
}

func statusError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	return &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
}
