package web

// errors.go provides unified JSON error responses. Errors carry a stable
// machine-readable code next to the human message; technical detail is
// logged server-side with the request id, never leaked to the client.

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/adyajasola/stocksmart/internal/logging"
)

// APIError is the JSON structure for error responses.
type APIError struct {
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Render implements render.Renderer.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

func badRequest(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, ErrorCode: code, Message: message}
}

func notFound(message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, ErrorCode: "NOT_FOUND", Message: message}
}

func internalError(message string) *APIError {
	return &APIError{StatusCode: http.StatusInternalServerError, ErrorCode: "INTERNAL", Message: message}
}

// respondError logs the underlying error and renders the API error.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, apiErr *APIError, cause error) {
	logger := logging.FromContext(r.Context())
	args := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", apiErr.StatusCode,
		"code", apiErr.ErrorCode,
	}
	if cause != nil {
		args = append(args, "error", cause.Error())
	}
	logger.Error("request error", args...)

	render.Render(w, r, apiErr)
}
