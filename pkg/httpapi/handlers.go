package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/questcanvas/pkg/buildinfo"
	"github.com/matzehuels/questcanvas/pkg/errors"
	"github.com/matzehuels/questcanvas/pkg/graph"
	"github.com/matzehuels/questcanvas/pkg/index"
	"github.com/matzehuels/questcanvas/pkg/layout"
	"github.com/matzehuels/questcanvas/pkg/pipeline"
	"github.com/matzehuels/questcanvas/pkg/quest"
)

type parseRequest struct {
	Document string           `json:"document"`
	Options  pipeline.Options `json:"options"`
}

type graphResponse struct {
	Graph    quest.Graph     `json:"graph"`
	Findings []quest.Finding `json:"findings,omitempty"`
}

type graphRequest struct {
	Graph json.RawMessage `json:"graph"`
}

// decodeGraph decodes and validates the embedded graph.
func (g graphRequest) decodeGraph() (quest.Graph, error) {
	if len(g.Graph) == 0 {
		return quest.Graph{}, errors.New(errors.ErrCodeInvalidInput, "graph is required")
	}
	return graph.UnmarshalGraph(g.Graph)
}

type documentResponse struct {
	Document string `json:"document"`
}

type layoutRequest struct {
	graphRequest
	Layout layout.Config `json:"layout"`
}

type layoutResponse struct {
	Graph  quest.Graph  `json:"graph"`
	Layout graph.Layout `json:"layout"`
	Cached bool         `json:"cached"`
}

type applyRequest struct {
	graphRequest
	Ops []opRequest `json:"ops"`
}

type lintResponse struct {
	Findings []quest.Finding `json:"findings"`
}

type duplicatesRequest struct {
	Documents []index.Source `json:"documents"`
	Exclude   string         `json:"exclude,omitempty"`
	ID        string         `json:"id,omitempty"`
}

type duplicatesResponse struct {
	Duplicates map[string][]string `json:"duplicates"`
	DefinedIn  []string            `json:"defined_in,omitempty"`
}

type healthResponse struct {
	Status  string         `json:"status"`
	Version buildinfo.Info `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Get()})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Options.Source == "" {
		req.Options.Source = "request"
	}

	g, err := s.runner.Parse(r.Context(), []byte(req.Document), req.Options)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, graphResponse{Graph: g, Findings: quest.Lint(g)})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req graphRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	g, err := req.decodeGraph()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, documentResponse{Document: string(s.runner.Generate(r.Context(), g))})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	g, err := req.decodeGraph()
	if err != nil {
		writeError(w, r, err)
		return
	}

	positioned, l, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), g, pipeline.Options{Layout: req.Layout})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{Graph: positioned, Layout: l, Cached: hit})
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	g, err := req.decodeGraph()
	if err != nil {
		writeError(w, r, err)
		return
	}
	ops, err := decodeOps(req.Ops)
	if err != nil {
		writeError(w, r, err)
		return
	}

	edited, err := g.Apply(ops...)
	if err != nil {
		writeError(w, r, editError(err))
		return
	}
	writeJSON(w, http.StatusOK, graphResponse{Graph: edited})
}

func (s *Server) handleLint(w http.ResponseWriter, r *http.Request) {
	var req graphRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	g, err := req.decodeGraph()
	if err != nil {
		writeError(w, r, err)
		return
	}
	findings := quest.Lint(g)
	if findings == nil {
		findings = []quest.Finding{}
	}
	writeJSON(w, http.StatusOK, lintResponse{Findings: findings})
}

func (s *Server) handleDuplicates(w http.ResponseWriter, r *http.Request) {
	var req duplicatesRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	dups, err := s.runner.Duplicates(r.Context(), req.Documents, req.Exclude)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := duplicatesResponse{Duplicates: dups}
	if req.ID != "" {
		resp.DefinedIn = index.Build(req.Documents, req.Exclude).CheckDuplicate(req.ID)
	}
	writeJSON(w, http.StatusOK, resp)
}
