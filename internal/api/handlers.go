package api

import (
	"encoding/json"
	"maps"
	"net/http"
	"slices"
	"strconv"

	"github.com/matzehuels/comicweb/pkg/appearance"
	"github.com/matzehuels/comicweb/pkg/buildinfo"
	"github.com/matzehuels/comicweb/pkg/edges"
	"github.com/matzehuels/comicweb/pkg/errors"
	tableio "github.com/matzehuels/comicweb/pkg/io"
	"github.com/matzehuels/comicweb/pkg/pipeline"
)

// =============================================================================
// Request and Response Types
// =============================================================================

// EdgesRequest is the body of POST /v1/edges.
type EdgesRequest struct {
	Table   tableio.TableDocument `json:"table"`
	Options json.RawMessage       `json:"options,omitempty"`
}

// EdgesResponse is the result of POST /v1/edges.
type EdgesResponse struct {
	RunID    string             `json:"run_id"`
	Edges    edges.List         `json:"edges"`
	Isolated []string           `json:"isolated"`
	Stats    pipeline.Stats     `json:"stats"`
	Cache    pipeline.CacheInfo `json:"cache"`
	Report   tableio.Report     `json:"report"`
}

// StatsEntry is one row of the POST /v1/stats response.
type StatsEntry struct {
	appearance.Stats
	Total int `json:"total"`
}

// HealthResponse is the result of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// contentTypes maps render formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatCSV:   "text/csv; charset=utf-8",
	pipeline.FormatJSON:  "application/json",
	pipeline.FormatGraph: "application/json",
	pipeline.FormatDOT:   "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:   "image/svg+xml",
	pipeline.FormatPNG:   "image/png",
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleEdges(w http.ResponseWriter, r *http.Request) {
	var req EdgesRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	opts, err := s.options(req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	tbl, rep, err := tableFromDocument(req.Table)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), tbl, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	isolated := res.Isolated
	if isolated == nil {
		isolated = []string{}
	}
	writeJSON(w, http.StatusOK, EdgesResponse{
		RunID:    res.RunID,
		Edges:    res.Edges,
		Isolated: isolated,
		Stats:    res.Stats,
		Cache:    res.CacheInfo,
		Report:   rep,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}

	opts := s.defaultOptions()
	opts.Formats = []string{format}
	if engine := q.Get("engine"); engine != "" {
		opts.Engine = engine
	}
	if v := q.Get("detailed"); v != "" {
		detailed, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "detailed"))
			return
		}
		opts.Detailed = detailed
	}
	if err := opts.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	var doc tableio.EdgeDocument
	if err := decodeBody(w, r, &doc); err != nil {
		s.writeError(w, err)
		return
	}
	for _, e := range doc.Edges {
		if err := errors.ValidateName("character", e.Source); err != nil {
			s.writeError(w, err)
			return
		}
		if err := errors.ValidateName("character", e.Target); err != nil {
			s.writeError(w, err)
			return
		}
	}

	artifacts, err := s.runner.Render(r.Context(), doc.Edges, nil, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	var doc tableio.TableDocument
	if err := decodeBody(w, r, &doc); err != nil {
		s.writeError(w, err)
		return
	}
	tbl, _, err := tableFromDocument(doc)
	if err != nil {
		s.writeError(w, err)
		return
	}

	stats := appearance.Summarize(tbl)
	out := make([]StatsEntry, len(stats))
	for i, st := range stats {
		out[i] = StatsEntry{Stats: st, Total: st.Total()}
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// Helpers
// =============================================================================

// defaultOptions returns a copy of the server defaults that is safe to
// modify.
func (s *Server) defaultOptions() pipeline.Options {
	opts := s.defaults
	opts.Weights = maps.Clone(s.defaults.Weights)
	opts.Formats = slices.Clone(s.defaults.Formats)
	opts.Logger = s.logger
	return opts
}

// options decodes request options on top of the server defaults. Output
// formats are not accepted here; use /v1/render.
func (s *Server) options(raw json.RawMessage) (pipeline.Options, error) {
	opts := s.defaultOptions()
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &opts); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode options")
		}
	}
	opts.Formats = nil
	opts.Logger = s.logger
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// tableFromDocument validates names and builds the appearance table.
func tableFromDocument(doc tableio.TableDocument) (*appearance.Table, tableio.Report, error) {
	for _, issue := range doc.Issues {
		if err := errors.ValidateName("issue", issue); err != nil {
			return nil, tableio.Report{}, err
		}
	}
	for _, c := range doc.Characters {
		if err := errors.ValidateName("character", c.Name); err != nil {
			return nil, tableio.Report{}, err
		}
	}
	tbl, rep, err := doc.Table()
	if err != nil {
		return nil, rep, errors.Wrap(errors.ErrCodeInvalidTable, err, "build table")
	}
	return tbl, rep, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: errors.UserMessage(err)})
}

