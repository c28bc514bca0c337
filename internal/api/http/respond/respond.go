// Package respond writes JSON responses and maps errors to them.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/napowa/napowa-server/internal/apierrors"
	"github.com/napowa/napowa-server/internal/logger"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorBody{Message: msg})
}

// Error converts err to a JSON error response. Errors that are not an
// *apierrors.APIError are logged and reported as internal server errors.
func Error(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		apiErr = apierrors.NewErrInternalServerError(err)
	}

	if apiErr.HTTPCode >= http.StatusInternalServerError {
		log.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err.Error())
	}

	if apiErr.Kind == apierrors.KindTooManyRequests {
		w.Header().Set("Retry-After", "30")
	}

	JSON(w, apiErr.HTTPCode, ErrorBody{Message: apiErr.Message, Errors: apiErr.Fields})
}
