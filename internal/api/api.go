// Package api exposes discadelta's solve operation over HTTP, for
// deployments where a CLI invocation per request is too slow or where
// solved trees need to be retrieved by id across requests. It is a thin
// wrapper around [pkg/discadelta], [pkg/store], and [pkg/cache] — the
// same collaborators internal/cli uses, so the two surfaces stay in
// sync.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/Putcho1994/Discadelta/pkg/cache"
	"github.com/Putcho1994/Discadelta/pkg/discadelta"
	dcerrors "github.com/Putcho1994/Discadelta/pkg/errors"
	"github.com/Putcho1994/Discadelta/pkg/observability"
	"github.com/Putcho1994/Discadelta/pkg/store"
)

// Server wires a chi router over a [store.Store] and a [cache.Cache].
type Server struct {
	store store.Store
	cache cache.Cache
	keyer cache.Keyer
	ttl   time.Duration
}

// New creates a Server backed by s and c. ttl is how long a solved
// result stays cached before a POST re-solves it.
func New(s store.Store, c cache.Cache, ttl time.Duration) *Server {
	return &Server{store: s, cache: c, keyer: cache.NewDefaultKeyer(), ttl: ttl}
}

// Handler returns the server's chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(s.logRequests)

	r.Route("/v1/solve", func(r chi.Router) {
		r.Post("/", s.handleSolve)
		r.Get("/{id}", s.handleGetSolve)
	})

	return r
}

// requestID assigns a request id (via [uuid.NewString]) to each request
// that doesn't already carry one, and echoes it back in the response.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.Host, r.URL.Path)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.Host, r.URL.Path, rec.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// solveRequest is the JSON body of a POST /v1/solve request.
type solveRequest struct {
	Name           string               `json:"name,omitempty"`
	Definition     store.TreeDefinition `json:"definition"`
	TargetMain     float64              `json:"target_main"`
	TargetCross    float64              `json:"target_cross"`
	HasTargetCross bool                 `json:"has_target_cross"`
	Round          bool                 `json:"round"`
}

// solveResponse is the JSON body of a successful solve.
type solveResponse struct {
	Name   string              `json:"name"`
	Result discadelta.Snapshot `json:"result"`
	Cached bool                `json:"cached"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": dcerrors.UserMessage(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case dcerrors.Is(err, dcerrors.ErrCodeInvalidConfig),
		dcerrors.Is(err, dcerrors.ErrCodeInvalidDirection),
		dcerrors.Is(err, dcerrors.ErrCodeCycle):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
