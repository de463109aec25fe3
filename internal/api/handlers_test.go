package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Putcho1994/Discadelta/pkg/cache"
	"github.com/Putcho1994/Discadelta/pkg/store"
)

func newTestServer() *Server {
	return New(store.NewMemoryStore(), cache.NewNullCache(), 0)
}

func sampleDefinition() store.TreeDefinition {
	return store.TreeDefinition{
		Name: "root",
		Max:  1e9,
		Children: []store.TreeDefinition{
			{Name: "a", Base: 100, Min: 50, Max: 300, FlexCompress: 1, FlexExpand: 1},
			{Name: "b", Base: 200, Min: 150, Max: 400, FlexCompress: 1, FlexExpand: 1},
		},
	}
}

func TestHandleSolveReturnsResolvedDistances(t *testing.T) {
	srv := newTestServer()

	body, _ := json.Marshal(solveRequest{
		Definition:     sampleDefinition(),
		TargetMain:     200,
		HasTargetCross: true,
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/solve", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp solveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Name == "" {
		t.Error("expected a generated name")
	}
	if len(resp.Result.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(resp.Result.Children))
	}
	if resp.Result.Children[0].Distance != 50 {
		t.Errorf("children[0].Distance = %v, want 50", resp.Result.Children[0].Distance)
	}
	if resp.Result.Children[1].Distance != 150 {
		t.Errorf("children[1].Distance = %v, want 150", resp.Result.Children[1].Distance)
	}
}

func TestHandleSolveThenGetByName(t *testing.T) {
	srv := newTestServer()

	body, _ := json.Marshal(solveRequest{
		Name:           "my-tree",
		Definition:     sampleDefinition(),
		TargetMain:     200,
		HasTargetCross: true,
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/solve", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST status = %d, body = %s", rec.Code, rec.Body.String())
	}

	getReq := httptest.NewRequest(http.MethodGet, "/v1/solve/my-tree", nil)
	getRec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(getRec, getReq)
	if getRec.Code != http.StatusOK {
		t.Fatalf("GET status = %d, body = %s", getRec.Code, getRec.Body.String())
	}

	var resp solveResponse
	if err := json.Unmarshal(getRec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Name != "my-tree" {
		t.Errorf("Name = %q, want %q", resp.Name, "my-tree")
	}
}

func TestHandleGetSolveMissingReturnsNotFound(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/v1/solve/missing", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleSolveRejectsInvalidBody(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/v1/solve", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
