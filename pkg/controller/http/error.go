package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"

	"github.com/m-mizutani/keycodes/pkg/domain/model"
	"github.com/m-mizutani/keycodes/pkg/domain/types"
)

const (
	descInternalError    = "The server encountered an internal error and was unable to complete your request."
	descNotFound         = "The requested URL was not found on the server."
	descMethodNotAllowed = "The method is not allowed for the requested URL."
	descUpstreamFailure  = "Failed to reach the GitHub API."
)

// toEnvelope maps an error onto the wire envelope. It is the only place that
// decides which HTTP status a failure gets.
func toEnvelope(err error) *model.ErrorEnvelope {
	var (
		statusErr    *types.UpstreamStatusError
		shapeErr     *types.UpstreamShapeError
		transportErr *types.TransportError
		decodeErr    *types.DecodeError
		queryErr     *types.InvalidQueryError
		urlErr       *types.InvalidURLError
	)

	code, description := http.StatusInternalServerError, descInternalError
	switch {
	case errors.As(err, &statusErr):
		code, description = statusErr.StatusCode, statusErr.Message
		// Only error statuses are mirrored; anything else cannot carry a body
		if code < 400 || code > 599 {
			code = http.StatusBadGateway
		}
	case errors.As(err, &queryErr):
		code, description = http.StatusBadRequest, queryErr.Error()
	case errors.As(err, &urlErr):
		code, description = http.StatusBadRequest, urlErr.Error()
	case errors.As(err, &shapeErr):
		code, description = http.StatusBadGateway, shapeErr.Error()
	case errors.As(err, &decodeErr):
		code, description = http.StatusBadGateway, decodeErr.Error()
	case errors.As(err, &transportErr):
		code, description = http.StatusBadGateway, descUpstreamFailure
	}

	if description == "" {
		description = http.StatusText(code)
	}

	return &model.ErrorEnvelope{
		Code:        code,
		Name:        http.StatusText(code),
		Description: description,
	}
}

// writeError converts err into an envelope, logs it and writes it.
// Server side failures are also reported to Sentry.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	envelope := toEnvelope(err)
	logger := ctxlog.From(r.Context())

	if envelope.Code >= http.StatusInternalServerError {
		logger.Error("Request failed", "error", err, "code", envelope.Code)

		hub := sentry.GetHubFromContext(r.Context())
		if hub == nil {
			hub = sentry.CurrentHub()
		}
		hub.CaptureException(err)
	} else {
		logger.Warn("Request rejected", "error", err, "code", envelope.Code)
	}

	writeEnvelope(w, r, envelope)
}

func writeEnvelope(w http.ResponseWriter, r *http.Request, envelope *model.ErrorEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(envelope.Code)

	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode error response", "error", err)
	}
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, r, &model.ErrorEnvelope{
		Code:        http.StatusNotFound,
		Name:        http.StatusText(http.StatusNotFound),
		Description: descNotFound,
	})
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, r, &model.ErrorEnvelope{
		Code:        http.StatusMethodNotAllowed,
		Name:        http.StatusText(http.StatusMethodNotAllowed),
		Description: descMethodNotAllowed,
	})
}
