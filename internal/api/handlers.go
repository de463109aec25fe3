package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Putcho1994/Discadelta/pkg/cache"
	"github.com/Putcho1994/Discadelta/pkg/discadelta"
	"github.com/Putcho1994/Discadelta/pkg/observability"
	"github.com/Putcho1994/Discadelta/pkg/store"
)

// handleSolve solves a posted tree definition, persists the result under
// a generated or caller-supplied name, and returns it.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	name := req.Name
	if name == "" {
		name = uuid.NewString()
	}

	keyOpts := cache.SolveKeyOpts{
		TargetMain:     req.TargetMain,
		TargetCross:    req.TargetCross,
		HasTargetCross: req.HasTargetCross,
		Round:          req.Round,
	}
	defBytes, err := json.Marshal(req.Definition)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	key := s.keyer.SolveKey(cache.Hash(defBytes), keyOpts)

	ctx := r.Context()
	cached := false
	var snapshot discadelta.Snapshot

	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		if err := json.Unmarshal(data, &snapshot); err == nil {
			cached = true
			observability.Cache().OnCacheHit(ctx, "solve")
		}
	}

	if !cached {
		observability.Cache().OnCacheMiss(ctx, "solve")

		root := req.Definition.Build()
		observability.Solver().OnSolveStart(ctx, root.Name(), countNodes(root))
		start := time.Now()
		discadelta.Solve(root, discadelta.SolveOptions{
			TargetMain:     req.TargetMain,
			TargetCross:    req.TargetCross,
			HasTargetCross: req.HasTargetCross,
			Round:          req.Round,
		})
		observability.Solver().OnSolveComplete(ctx, root.Name(), time.Since(start), nil)

		snapshot = root.Snapshot()
		if data, err := json.Marshal(snapshot); err == nil {
			if err := s.cache.Set(ctx, key, data, s.ttl); err == nil {
				observability.Cache().OnCacheSet(ctx, "solve", len(data))
			}
		}
	}

	doc := store.Document{
		Name:       name,
		Definition: req.Definition,
		Result:     &snapshot,
		UpdatedAt:  time.Now(),
	}
	if err := s.store.Put(ctx, doc); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, solveResponse{Name: name, Result: snapshot, Cached: cached})
}

// handleGetSolve retrieves a previously solved tree by name.
func (s *Server) handleGetSolve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if doc.Result == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("tree %q has not been solved", id))
		return
	}

	writeJSON(w, http.StatusOK, solveResponse{Name: doc.Name, Result: *doc.Result})
}

func countNodes(n *discadelta.Node) int {
	count := 1
	for _, child := range n.Children() {
		count += countNodes(child)
	}
	return count
}
