package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sklad/ostatki"
	"github.com/sklad/ostatki/domain/model"
	"github.com/sklad/ostatki/internal/logging"
)

// StockResponse is the body of GET /api/stock.
type StockResponse struct {
	Kind   string   `json:"kind"`
	Query  string   `json:"query,omitempty"`
	Chunks []string `json:"chunks"`
}

// ProducersResponse is the body of GET /api/producers.
type ProducersResponse struct {
	Producers []string `json:"producers"`
	Chunks    []string `json:"chunks"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStock answers ?kind=all|name|producer&q=term.
func (s *Server) handleStock(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	kind, ok := model.ParseQueryKind(strings.TrimSpace(params.Get("kind")))
	if !ok {
		respondError(w, r, http.StatusBadRequest, "unknown query kind", "bad_kind")
		return
	}

	q := model.Query{Kind: kind, Term: strings.TrimSpace(params.Get("q"))}
	if kind != model.QueryListAll && q.Term == "" {
		respondError(w, r, http.StatusBadRequest, "query parameter q is required", "missing_term")
		return
	}

	chunks, err := s.inventory.Ask(r.Context(), q)
	if err != nil {
		logging.FromContext(r.Context()).Error("stock query failed", "kind", kind.String(), "error", err)
		respondError(w, r, http.StatusBadGateway, s.inventory.RenderOptions().FetchFailed(), "fetch_failed")
		return
	}

	respondJSON(w, http.StatusOK, StockResponse{
		Kind:   kind.String(),
		Query:  q.Term,
		Chunks: chunks,
	})
}

// handleProducers lists the producers a client can offer for a producer query.
func (s *Server) handleProducers(w http.ResponseWriter, r *http.Request) {
	producers, outcome, err := s.inventory.Producers(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("producer listing failed", "error", err)
		respondError(w, r, http.StatusBadGateway, s.inventory.RenderOptions().FetchFailed(), "fetch_failed")
		return
	}
	if producers == nil {
		producers = []string{}
	}
	respondJSON(w, http.StatusOK, ProducersResponse{
		Producers: producers,
		Chunks:    ostatki.RenderProducers(producers, outcome, s.inventory.RenderOptions()),
	})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body) // Ignore write error, client is gone
}

func respondError(w http.ResponseWriter, r *http.Request, status int, msg, code string) {
	logging.FromContext(r.Context()).Warn("request error",
		"path", r.URL.Path,
		"status", status,
		"code", code,
	)
	respondJSON(w, status, ErrorResponse{Error: msg, Code: code})
}
