// Package httpapi exposes the analysis engine over HTTP: a single POST
// /analyze endpoint accepting a binding.Request body and answering with an
// object whose "results" field holds binding.Run's per-output results (or
// whose "error" field holds a request-level failure). Grounded on github.com/dekarrin/tunaq's server/api
// package (chi routing, panic-to-500 recovery, structured request
// logging), trimmed of the auth/session machinery that package carries,
// since this engine has no notion of a logged-in user: every request
// builds and discards its own Grammar, so there is no shared mutable state
// across goroutines to protect.
package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dhollis/grammatica/internal/binding"
	"github.com/dhollis/grammatica/internal/gramlog"
)

// PathPrefix is the mount point sub-routers should nest this API under.
const PathPrefix = "/api/v1"

// NewRouter builds a chi router exposing POST /analyze, logging every
// request with logger (a request-scoped correlation ID is minted per
// request with uuid.New and passed to the logger).
func NewRouter(logger *gramlog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Post("/analyze", handleAnalyze(logger))
	return r
}

// analyzeResponse wraps binding.Run's per-output results, along with a
// request-level error for failures that occur before any output can be
// attempted (bad content-type, malformed JSON body).
type analyzeResponse struct {
	Results []binding.OutputResult `json:"results,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

func handleAnalyze(logger *gramlog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		reqID := uuid.New()
		defer recoverTo500(w, req, logger, reqID)

		contentType := req.Header.Get("Content-Type")
		if !strings.EqualFold(contentType, "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "request content-type must be application/json")
			return
		}

		var in binding.Request
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("malformed JSON body: %s", err))
			return
		}

		start := time.Now()
		results := binding.Run(in)
		elapsed := time.Since(start)

		status := http.StatusOK
		for _, r := range results {
			if r.Error != "" {
				status = http.StatusUnprocessableEntity
				break
			}
		}

		logger.Info(reqID, "%s %s -> HTTP-%d in %s", req.Method, req.URL.Path, status, elapsed)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(analyzeResponse{Results: results})
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(analyzeResponse{Error: msg})
}

func recoverTo500(w http.ResponseWriter, req *http.Request, logger *gramlog.Logger, reqID uuid.UUID) {
	if panicErr := recover(); panicErr != nil {
		logger.Error(reqID, "panic handling %s %s: %v\n%s", req.Method, req.URL.Path, panicErr, debug.Stack())
		writeJSONError(w, http.StatusInternalServerError, "an internal server error occurred")
	}
}
