package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/m-mizutani/ctxlog"

	"github.com/m-mizutani/keycodes/pkg/domain/interfaces"
)

const homePage = "<h1>Keycodes API</h1>"

// GatewayHandler serves the GitHub proxy routes
type GatewayHandler struct {
	gatewayUC interfaces.GatewayUseCase
}

// NewGatewayHandler creates a new GatewayHandler
func NewGatewayHandler(gatewayUC interfaces.GatewayUseCase) *GatewayHandler {
	return &GatewayHandler{
		gatewayUC: gatewayUC,
	}
}

// Home returns the static greeting
func (h *GatewayHandler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(homePage)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write home page", "error", err)
	}
}

// DownloadFile returns the decoded content of the file at ?url=
func (h *GatewayHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	data, err := h.gatewayUC.DownloadFile(r.Context(), r.URL.Query().Get("url"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write file content", "error", err)
	}
}

// SearchTree proxies the git tree at ?url=
func (h *GatewayHandler) SearchTree(w http.ResponseWriter, r *http.Request) {
	body, err := h.gatewayUC.SearchTree(r.Context(), r.URL.Query().Get("url"), "")
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, body)
}

// SearchRepositories proxies a repository search for ?q=
func (h *GatewayHandler) SearchRepositories(w http.ResponseWriter, r *http.Request) {
	body, err := h.gatewayUC.SearchRepositories(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, body)
}

// SearchFiles returns the root tree of the latest commit of ?owner=&repo=
func (h *GatewayHandler) SearchFiles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	body, err := h.gatewayUC.SearchFiles(r.Context(), query.Get("owner"), query.Get("repo"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, body)
}

func writeJSON(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write response", "error", err)
	}
}
