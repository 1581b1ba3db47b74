package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/telhawk-systems/ocsf-mcp/internal/messaging"
	"github.com/telhawk-systems/ocsf-mcp/internal/tools"
)

// ErrEmptyEnvelope is returned when a reply carries neither a result nor an error.
var ErrEmptyEnvelope = errors.New("reply envelope is empty")

// Client calls tools served by a Server.
type Client struct {
	publisher messaging.Publisher
	prefix    string
	timeout   time.Duration
}

func NewClient(publisher messaging.Publisher, prefix string, timeout time.Duration) *Client {
	if prefix == "" {
		prefix = messaging.DefaultToolSubjectPrefix
	}
	return &Client{publisher: publisher, prefix: prefix, timeout: timeout}
}

// Call runs a tool remotely. Tool failures come back as *tools.ToolError;
// broker failures are returned as-is.
func (c *Client) Call(ctx context.Context, tool string, args json.RawMessage, requestID string) (*tools.Result, error) {
	msg := &messaging.Message{
		Subject: messaging.ToolSubject(c.prefix, tool),
		Data:    args,
	}
	if requestID != "" {
		msg.Metadata = map[string]string{messaging.HeaderRequestID: requestID}
	}

	resp, err := c.publisher.Request(ctx, msg, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", msg.Subject, err)
	}

	var env tools.Envelope
	if err := json.Unmarshal(resp.Data, &env); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	if env.Error != nil {
		return nil, env.Error
	}
	if env.Result == nil {
		return nil, ErrEmptyEnvelope
	}
	return env.Result, nil
}
