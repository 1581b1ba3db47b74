package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/telhawk-systems/ocsf-mcp/internal/logging"
	"github.com/telhawk-systems/ocsf-mcp/internal/metrics"
	"github.com/telhawk-systems/ocsf-mcp/internal/models"
	"github.com/telhawk-systems/ocsf-mcp/internal/observability"
	"github.com/telhawk-systems/ocsf-mcp/internal/service"
)

// Transports reported on spans.
const (
	TransportHTTP = "http"
	TransportNATS = "nats"
)

// Content is one block of tool output.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result is a successful tool call.
type Result struct {
	Tool    string    `json:"tool"`
	Content []Content `json:"content"`
}

// Text concatenates every text block.
func (r *Result) Text() string {
	var b bytes.Buffer
	for _, c := range r.Content {
		b.WriteString(c.Text)
	}
	return b.String()
}

// Envelope carries either a result or an error.
type Envelope struct {
	Result *Result    `json:"result,omitempty"`
	Error  *ToolError `json:"error,omitempty"`
}

type handlerFunc func(ctx context.Context, args json.RawMessage) (any, error)

// Dispatcher decodes tool arguments, calls the service and renders results.
type Dispatcher struct {
	svc      *service.ToolService
	logger   *logging.Logger
	handlers map[string]handlerFunc
}

func NewDispatcher(svc *service.ToolService, logger *logging.Logger) *Dispatcher {
	d := &Dispatcher{svc: svc, logger: logger}
	d.handlers = map[string]handlerFunc{
		BrowseSchema: func(ctx context.Context, args json.RawMessage) (any, error) {
			var req models.BrowseSchemaRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			return svc.BrowseSchema(ctx, req)
		},
		GenerateEvent: func(ctx context.Context, args json.RawMessage) (any, error) {
			var req models.GenerateEventRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			return svc.GenerateEvent(ctx, req)
		},
		ValidateEvent: func(ctx context.Context, args json.RawMessage) (any, error) {
			var req models.ValidateEventRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			return svc.ValidateEvent(ctx, req)
		},
		MapCustom: func(ctx context.Context, args json.RawMessage) (any, error) {
			var req models.MapCustomRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			return svc.MapCustomToOCSF(ctx, req), nil
		},
		ListExamples: func(ctx context.Context, args json.RawMessage) (any, error) {
			var req models.ListExamplesRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			return svc.ListEventExamples(ctx, req)
		},
		ListVersions: func(ctx context.Context, _ json.RawMessage) (any, error) {
			return svc.ListVersions(ctx)
		},
		NewestVersion: func(ctx context.Context, _ json.RawMessage) (any, error) {
			return svc.NewestVersion(ctx)
		},
		GenerateCode: func(ctx context.Context, args json.RawMessage) (any, error) {
			var req models.GenerateCodeRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			return svc.GenerateLoggingCode(ctx, req)
		},
		ReadDocs: func(ctx context.Context, args json.RawMessage) (any, error) {
			var req models.ReadDocsRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			return svc.ReadDocs(ctx, req)
		},
	}
	return d
}

// Tools lists the tools this dispatcher serves.
func (d *Dispatcher) Tools() []Definition {
	return Definitions()
}

// Call runs one tool. Failures are always returned as *ToolError.
func (d *Dispatcher) Call(ctx context.Context, transport, name string, args json.RawMessage) (*Result, error) {
	start := time.Now()
	ctx, span := observability.StartToolSpan(ctx, name, transport)

	result, err := d.call(ctx, name, args)

	label := name
	if _, ok := d.handlers[name]; !ok {
		label = "unknown"
	}
	metrics.ToolCallDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

	if err != nil {
		te := NewToolError(name, err)
		metrics.ToolCallsTotal.WithLabelValues(label, "error").Inc()
		observability.EndSpanWithError(span, err, string(te.Kind))
		d.logger.WarnContext(ctx, "tool call failed",
			logging.Tool(name),
			logging.Error(err),
			logging.Duration(time.Since(start).Milliseconds()),
		)
		return nil, te
	}

	metrics.ToolCallsTotal.WithLabelValues(label, "ok").Inc()
	observability.EndSpanWithError(span, nil, "")
	return result, nil
}

func (d *Dispatcher) call(ctx context.Context, name string, args json.RawMessage) (*Result, error) {
	h, ok := d.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	def, _ := lookup(name)
	if err := checkRequired(args, def.required); err != nil {
		return nil, err
	}

	out, err := h(ctx, args)
	if err != nil {
		return nil, err
	}
	text, err := render(out)
	if err != nil {
		return nil, err
	}
	return &Result{Tool: name, Content: []Content{{Type: "text", Text: text}}}, nil
}

func isEmpty(args json.RawMessage) bool {
	trimmed := bytes.TrimSpace(args)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decode(args json.RawMessage, v any) error {
	if isEmpty(args) {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return nil
}

func checkRequired(args json.RawMessage, required []string) error {
	if len(required) == 0 {
		return nil
	}
	present := map[string]json.RawMessage{}
	if !isEmpty(args) {
		if err := json.Unmarshal(args, &present); err != nil {
			return fmt.Errorf("%w: arguments must be a JSON object", ErrInvalidArguments)
		}
	}
	for _, key := range required {
		if _, ok := present[key]; !ok {
			return fmt.Errorf("%w: missing field `%s`", ErrInvalidArguments, key)
		}
	}
	return nil
}

// render returns strings verbatim and everything else as indented JSON.
func render(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(out), nil
}
