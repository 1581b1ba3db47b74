// Package transport serves tool calls over the message broker. Each request on
// {prefix}.{tool} is dispatched and answered with the same envelope the HTTP
// API returns.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/telhawk-systems/ocsf-mcp/internal/logging"
	"github.com/telhawk-systems/ocsf-mcp/internal/messaging"
	"github.com/telhawk-systems/ocsf-mcp/internal/middleware"
	"github.com/telhawk-systems/ocsf-mcp/internal/tools"
)

// ToolCaller runs one tool call.
type ToolCaller interface {
	Call(ctx context.Context, transport, name string, args json.RawMessage) (*tools.Result, error)
}

// Config controls the subject space and per-call deadline.
type Config struct {
	SubjectPrefix string
	Queue         string
	CallTimeout   time.Duration
}

// Server answers tool requests arriving on the broker.
type Server struct {
	client messaging.Client
	caller ToolCaller
	logger *logging.Logger
	cfg    Config

	mu  sync.Mutex
	sub messaging.Subscription
}

func NewServer(client messaging.Client, caller ToolCaller, logger *logging.Logger, cfg Config) *Server {
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = messaging.DefaultToolSubjectPrefix
	}
	if cfg.Queue == "" {
		cfg.Queue = messaging.DefaultToolQueue
	}
	return &Server{client: client, caller: caller, logger: logger, cfg: cfg}
}

// Start subscribes to every tool subject in the configured queue group.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sub != nil {
		return errors.New("transport already started")
	}

	subject := messaging.ToolWildcard(s.cfg.SubjectPrefix)
	sub, err := s.client.QueueSubscribe(subject, s.cfg.Queue, s.handle)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	s.sub = sub

	s.logger.Info("NATS tool transport started",
		"subject", subject,
		"queue", s.cfg.Queue,
	)
	return nil
}

// Stop removes the subscription. It is safe to call more than once.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sub == nil {
		return nil
	}
	err := s.sub.Unsubscribe()
	s.sub = nil
	return err
}

func (s *Server) handle(ctx context.Context, msg *messaging.Message) error {
	tool, ok := messaging.ToolFromSubject(s.cfg.SubjectPrefix, msg.Subject)
	if !ok {
		tool = msg.Subject
	}

	requestID := msg.Metadata[messaging.HeaderRequestID]
	if requestID != "" {
		ctx = middleware.WithRequestID(ctx, requestID)
	}
	if s.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.CallTimeout)
		defer cancel()
	}

	var env tools.Envelope
	result, err := s.caller.Call(ctx, tools.TransportNATS, tool, msg.Data)
	if err != nil {
		env.Error = tools.NewToolError(tool, err)
	} else {
		env.Result = result
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	var headers map[string]string
	if requestID != "" {
		headers = map[string]string{messaging.HeaderRequestID: requestID}
	}
	return messaging.Reply(ctx, s.client, msg, body, headers)
}
