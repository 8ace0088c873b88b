package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vokinneberg/llm-query-relay/internal/llm"
	"github.com/vokinneberg/llm-query-relay/internal/types"
)

//go:generate mockgen -source=handlers.go -destination=mock_completer.go -package=http Completer

// Completer answers a single question through the completion service
type Completer interface {
	Complete(ctx context.Context, question string) (string, error)
}

type Handler struct {
	completer      Completer
	upstreamStatus bool
}

// NewHandlers initializes handlers with dependencies.
// With upstreamStatus false every completion failure is answered with 200.
func NewHandlers(completer Completer, upstreamStatus bool) *Handler {
	return &Handler{
		completer:      completer,
		upstreamStatus: upstreamStatus,
	}
}

func (h *Handler) QueryHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req types.QueryRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		errorResponse(w, http.StatusUnprocessableEntity, "Invalid request body", err)
		return
	}
	// the body must hold exactly one JSON value
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		errorResponse(w, http.StatusUnprocessableEntity, "Invalid request body", fmt.Errorf("unexpected data after JSON value"))
		return
	}

	if req.Question == nil {
		errorResponse(w, http.StatusUnprocessableEntity, "Field \"question\" is required", nil)
		return
	}

	answer, err := h.completer.Complete(r.Context(), *req.Question)
	if err != nil {
		kind := llm.KindOf(err)
		slog.Error("Error generating completion", "error", err, "kind", kind.String(), "request_id", GetRequestID(r.Context()))

		status := http.StatusOK
		if h.upstreamStatus {
			status = kind.HTTPStatus()
		}
		writeJSON(w, status, types.ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, types.QueryResponse{Response: answer})
}

// HealthHandler reports liveness without touching the completion service
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.HealthResponse{Status: "ok"})
}

func errorResponse(w http.ResponseWriter, status int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = fmt.Sprintf("%s: %v", message, err)
	}

	writeJSON(w, status, types.ErrorResponse{
		Error:   http.StatusText(status),
		Message: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err, "status", status)
	}
}
