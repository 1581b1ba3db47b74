package tools

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telhawk-systems/ocsf-mcp/internal/codegen"
	"github.com/telhawk-systems/ocsf-mcp/internal/logging"
	"github.com/telhawk-systems/ocsf-mcp/internal/metrics"
	"github.com/telhawk-systems/ocsf-mcp/internal/schema"
	"github.com/telhawk-systems/ocsf-mcp/internal/service"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	gen, err := codegen.New()
	require.NoError(t, err)
	svc := service.NewToolService(schema.NewEmbeddedRepository(logging.Nop()), gen, logging.Nop())
	return NewDispatcher(svc, logging.Nop())
}

func call(t *testing.T, d *Dispatcher, name, args string) (*Result, *ToolError) {
	t.Helper()
	res, err := d.Call(context.Background(), TransportHTTP, name, json.RawMessage(args))
	if err == nil {
		return res, nil
	}
	var te *ToolError
	require.True(t, errors.As(err, &te), "error should be a ToolError: %v", err)
	return nil, te
}

func TestDispatcher_Tools(t *testing.T) {
	d := newTestDispatcher(t)
	defs := d.Tools()
	require.Len(t, defs, 9)

	for _, def := range defs {
		assert.True(t, json.Valid(def.InputSchema), def.Name)
		_, ok := d.handlers[def.Name]
		assert.True(t, ok, "no handler for %s", def.Name)
	}
}

func TestDispatcher_ListVersions(t *testing.T) {
	d := newTestDispatcher(t)

	res, te := call(t, d, ListVersions, "")
	require.Nil(t, te)
	assert.Equal(t, ListVersions, res.Tool)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "text", res.Content[0].Type)

	var body struct {
		Versions []string `json:"versions"`
		Count    int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.Text()), &body))
	assert.Equal(t, 8, body.Count)
	assert.Contains(t, res.Text(), "\n  \"versions\"", "result should be indented")
}

func TestDispatcher_GenerateEventReturnsEventText(t *testing.T) {
	d := newTestDispatcher(t)

	res, te := call(t, d, GenerateEvent, `{"event_class":"authentication","required_fields":"{\"user\":{\"name\":\"alice\"}}"}`)
	require.Nil(t, te)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Text()), &doc))
	meta := doc["metadata"].(map[string]any)
	assert.EqualValues(t, 3002, meta["class_uid"])
	assert.EqualValues(t, 3, meta["category_uid"])
}

func TestDispatcher_ValidationFailureIsNotAnError(t *testing.T) {
	d := newTestDispatcher(t)

	res, te := call(t, d, ValidateEvent, `{"event_json":"{}"}`)
	require.Nil(t, te)
	assert.Contains(t, res.Text(), `"is_valid": false`)
}

func TestDispatcher_MapCustomHint(t *testing.T) {
	d := newTestDispatcher(t)

	tests := []struct {
		name string
		args string
		want string
	}{
		{name: "absent", args: `{"sample_log": "user login failed"}`, want: "authentication"},
		{name: "null", args: `{"sample_log": "user login failed", "suggested_class": null}`, want: "authentication"},
		{name: "given", args: `{"sample_log": "user login failed", "suggested_class": "dns_activity"}`, want: "dns_activity"},
		{name: "empty", args: `{"sample_log": "user login failed", "suggested_class": ""}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, te := call(t, d, MapCustom, tt.args)
			require.Nil(t, te)

			var rec struct {
				SuggestedEventClass string `json:"suggested_event_class"`
			}
			require.NoError(t, json.Unmarshal([]byte(res.Text()), &rec))
			assert.Equal(t, tt.want, rec.SuggestedEventClass)
		})
	}
}

func TestDispatcher_Errors(t *testing.T) {
	d := newTestDispatcher(t)

	tests := []struct {
		name    string
		tool    string
		args    string
		code    string
		kind    ErrorKind
		status  int
		message string
	}{
		{
			name: "unknown class", tool: GenerateEvent,
			args: `{"event_class":"does_not_exist","required_fields":"{}"}`,
			code: "generate_event_error", kind: KindEventClassNotFound, status: http.StatusNotFound,
			message: "Event class 'does_not_exist' not found",
		},
		{
			name: "bad field source", tool: GenerateEvent,
			args: `{"event_class":"authentication","required_fields":"{nope"}`,
			code: "generate_event_error", kind: KindInvalidFieldSource, status: http.StatusBadRequest,
		},
		{
			name: "missing required argument", tool: GenerateEvent,
			args: `{"event_class":"authentication"}`,
			code: "generate_event_error", kind: KindInvalidArguments, status: http.StatusBadRequest,
			message: "invalid arguments: missing field `required_fields`",
		},
		{
			name: "browse unknown class", tool: BrowseSchema,
			args: `{"event_class":"nope"}`,
			code: "browse_schema_error", kind: KindEventClassNotFound, status: http.StatusNotFound,
			message: "Event class not found",
		},
		{
			name: "bad event json", tool: ValidateEvent,
			args: `{"event_json":"nope"}`,
			code: "validate_event_error", kind: KindInvalidEventJSON, status: http.StatusBadRequest,
		},
		{
			name: "no examples", tool: ListExamples,
			args: `{"event_class":"dns_activity"}`,
			code: "list_examples_error", kind: KindNoExamples, status: http.StatusNotFound,
			message: "No examples available for event class 'dns_activity'. Available: authentication, process_activity",
		},
		{
			name: "unsupported language", tool: GenerateCode,
			args: `{"language":"cobol","event_classes":"authentication"}`,
			code: "generate_code_error", kind: KindUnsupportedLanguage, status: http.StatusBadRequest,
		},
		{
			name: "bad class list", tool: GenerateCode,
			args: `{"language":"go","event_classes":"[1"}`,
			code: "generate_code_error", kind: KindInvalidArguments, status: http.StatusBadRequest,
		},
		{
			name: "unknown codegen class", tool: GenerateCode,
			args: `{"language":"go","event_classes":"nope"}`,
			code: "generate_code_error", kind: KindEventClassNotFound, status: http.StatusNotFound,
			message: "Unknown event class: nope",
		},
		{
			name: "unknown topic", tool: ReadDocs,
			args: `{"topic":"nope"}`,
			code: "read_docs_error", kind: KindUnknownTopic, status: http.StatusBadRequest,
		},
		{
			name: "malformed arguments", tool: MapCustom,
			args: `{"sample_log":`,
			code: "map_custom_error", kind: KindInvalidArguments, status: http.StatusBadRequest,
		},
		{
			name: "unknown tool", tool: "drop_tables",
			args: `{}`,
			code: "unknown_tool_error", kind: KindUnknownTool, status: http.StatusNotFound,
			message: "unknown tool: drop_tables",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, te := call(t, d, tt.tool, tt.args)
			require.Nil(t, res)
			require.NotNil(t, te)
			assert.Equal(t, tt.code, te.Code)
			assert.Equal(t, tt.kind, te.Kind)
			assert.Equal(t, tt.status, te.HTTPStatus())
			if tt.message != "" {
				assert.Equal(t, tt.message, te.Message)
			}
		})
	}
}

func TestDispatcher_Metrics(t *testing.T) {
	d := newTestDispatcher(t)

	okBefore := testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues(ReadDocs, "ok"))
	errBefore := testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues(ReadDocs, "error"))
	unknownBefore := testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("unknown", "error"))

	_, te := call(t, d, ReadDocs, `{"topic":"intro"}`)
	require.Nil(t, te)
	_, te = call(t, d, ReadDocs, `{"topic":"nope"}`)
	require.NotNil(t, te)
	_, te = call(t, d, "whatever", ``)
	require.NotNil(t, te)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues(ReadDocs, "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues(ReadDocs, "error")))
	assert.Equal(t, unknownBefore+1, testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("unknown", "error")))
}

func TestNewToolError_PassesThrough(t *testing.T) {
	original := &ToolError{Code: "x_error", Kind: KindInternal, Message: "boom"}
	assert.Same(t, original, NewToolError(ReadDocs, original))

	te := NewToolError(ReadDocs, context.DeadlineExceeded)
	assert.Equal(t, KindInternal, te.Kind)
	assert.Equal(t, "read_docs_error", te.Code)
}

func TestEnvelopeJSON(t *testing.T) {
	out, err := json.Marshal(Envelope{Error: &ToolError{Code: "read_docs_error", Kind: KindUnknownTopic, Message: "m"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":{"code":"read_docs_error","kind":"UnknownTopic","message":"m"}}`, string(out))
}
