package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/telhawk-systems/ocsf-mcp/internal/httputil"
	"github.com/telhawk-systems/ocsf-mcp/internal/logging"
	"github.com/telhawk-systems/ocsf-mcp/internal/service"
	"github.com/telhawk-systems/ocsf-mcp/internal/tools"
)

// ToolHandler exposes the tool dispatcher over HTTP.
type ToolHandler struct {
	dispatcher   *tools.Dispatcher
	service      *service.ToolService
	logger       *logging.Logger
	maxBodyBytes int64
}

func NewToolHandler(dispatcher *tools.Dispatcher, svc *service.ToolService, logger *logging.Logger, maxBodyBytes int64) *ToolHandler {
	return &ToolHandler{
		dispatcher:   dispatcher,
		service:      svc,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// HealthCheck handles GET /healthz.
func (h *ToolHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := h.service.Health()
	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, status, health)
}

// ListTools handles GET /tools.
func (h *ToolHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string][]tools.Definition{"tools": h.dispatcher.Tools()})
}

// CallTool handles POST /tools/{name}. The body is the tool's argument object.
func (h *ToolHandler) CallTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeToolError(w, http.StatusRequestEntityTooLarge, &tools.ToolError{
				Code:    tools.ErrorCode(name),
				Kind:    tools.KindInvalidArguments,
				Message: "request body too large",
			})
			return
		}
		writeToolError(w, http.StatusBadRequest, &tools.ToolError{
			Code:    tools.ErrorCode(name),
			Kind:    tools.KindInvalidArguments,
			Message: "failed to read request body",
		})
		return
	}

	result, err := h.dispatcher.Call(r.Context(), tools.TransportHTTP, name, json.RawMessage(body))
	if err != nil {
		te := tools.NewToolError(name, err)
		writeToolError(w, te.HTTPStatus(), te)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tools.Envelope{Result: result})
}

func writeToolError(w http.ResponseWriter, status int, te *tools.ToolError) {
	httputil.WriteErrorBody(w, status, httputil.ErrorBody{
		Code:    te.Code,
		Kind:    string(te.Kind),
		Message: te.Message,
	})
}
