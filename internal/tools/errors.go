package tools

import (
	"context"
	"errors"
	"net/http"

	"github.com/telhawk-systems/ocsf-mcp/internal/codegen"
	"github.com/telhawk-systems/ocsf-mcp/internal/docs"
	"github.com/telhawk-systems/ocsf-mcp/internal/event"
	"github.com/telhawk-systems/ocsf-mcp/internal/examples"
	"github.com/telhawk-systems/ocsf-mcp/internal/schema"
	"github.com/telhawk-systems/ocsf-mcp/internal/validator"
)

// ErrorKind classifies a failed tool call.
type ErrorKind string

const (
	KindEventClassNotFound  ErrorKind = "EventClassNotFound"
	KindInvalidFieldSource  ErrorKind = "InvalidFieldSource"
	KindNoStableVersion     ErrorKind = "NoStableVersion"
	KindInvalidEventJSON    ErrorKind = "InvalidEventJSON"
	KindNoExamples          ErrorKind = "NoExamples"
	KindUnsupportedLanguage ErrorKind = "UnsupportedLanguage"
	KindUnknownTopic        ErrorKind = "UnknownTopic"
	KindInvalidArguments    ErrorKind = "InvalidArguments"
	KindUnknownTool         ErrorKind = "UnknownTool"
	KindSchemaDecode        ErrorKind = "SchemaDecode"
	KindInternal            ErrorKind = "Internal"
)

var (
	// ErrUnknownTool is returned for tool names the dispatcher does not serve.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrInvalidArguments is returned when tool arguments do not decode.
	ErrInvalidArguments = errors.New("invalid arguments")
)

// ToolError is the error envelope body returned to callers.
type ToolError struct {
	Code    string    `json:"code"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *ToolError) Error() string { return e.Message }

// HTTPStatus maps the kind to a response status.
func (e *ToolError) HTTPStatus() int {
	switch e.Kind {
	case KindEventClassNotFound, KindUnknownTool, KindNoExamples:
		return http.StatusNotFound
	case KindInvalidFieldSource, KindInvalidEventJSON, KindUnsupportedLanguage,
		KindUnknownTopic, KindInvalidArguments:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var kinds = []struct {
	target error
	kind   ErrorKind
}{
	{schema.ErrEventClassNotFound, KindEventClassNotFound},
	{event.ErrInvalidFieldSource, KindInvalidFieldSource},
	{schema.ErrNoStableVersion, KindNoStableVersion},
	{validator.ErrInvalidEventJSON, KindInvalidEventJSON},
	{examples.ErrNoExamples, KindNoExamples},
	{codegen.ErrUnsupportedLanguage, KindUnsupportedLanguage},
	{codegen.ErrInvalidClassList, KindInvalidArguments},
	{docs.ErrUnknownTopic, KindUnknownTopic},
	{ErrInvalidArguments, KindInvalidArguments},
	{ErrUnknownTool, KindUnknownTool},
	{schema.ErrSchemaDecode, KindSchemaDecode},
}

// KindOf returns the kind of err, KindInternal when nothing matches.
func KindOf(err error) ErrorKind {
	for _, k := range kinds {
		if errors.Is(err, k.target) {
			return k.kind
		}
	}
	return KindInternal
}

// NewToolError wraps err for the named tool. A ToolError passes through.
func NewToolError(tool string, err error) *ToolError {
	var te *ToolError
	if errors.As(err, &te) {
		return te
	}
	message := err.Error()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		message = "request cancelled: " + message
	}
	return &ToolError{Code: ErrorCode(tool), Kind: KindOf(err), Message: message}
}

// ErrorCode is the wire error code for a tool.
func ErrorCode(tool string) string {
	if def, ok := lookup(tool); ok {
		return def.errorCode
	}
	return "unknown_tool_error"
}
