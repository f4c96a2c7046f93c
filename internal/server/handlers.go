package server

import (
	"encoding/json"
	"net/http"

	"github.com/critpathlabs/critpath/pkg/cpm"
	"github.com/critpathlabs/critpath/pkg/errors"
	jsonio "github.com/critpathlabs/critpath/pkg/io"
	"github.com/critpathlabs/critpath/pkg/pipeline"
	"github.com/critpathlabs/critpath/pkg/source"
	"github.com/critpathlabs/critpath/pkg/weights"
)

// analyzeResponse is the JSON shape of a successful analysis.
type analyzeResponse struct {
	CriticalEdges []criticalEdge  `json:"critical_edges"`
	TotalDuration int             `json:"total_duration"`
	Schedule      []scheduleEntry `json:"schedule"`
}

type criticalEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int    `json:"weight"`
}

type scheduleEntry struct {
	Task     string `json:"task"`
	ES       int    `json:"earliest_start"`
	EF       int    `json:"earliest_finish"`
	LS       int    `json:"latest_start"`
	LF       int    `json:"latest_finish"`
	Slack    int    `json:"slack"`
	Critical bool   `json:"critical"`
}

// errorResponse is the JSON shape of a failed request.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleAnalyze runs the full pipeline over a posted JSON document.
//
// Query parameters:
//   - allow_missing=true enables the default-zero weight policy
//   - image=svg|png returns the rendered diagram instead of JSON
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	doc, err := jsonio.ReadJSON(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	g, err := source.FromGraph(doc)
	if err != nil {
		writeError(w, err)
		return
	}

	opts := weights.Options{AllowMissing: r.URL.Query().Get("allow_missing") == "true"}
	wm, err := weights.Resolve(doc.Weights(), g, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Analyze(r.Context(), g, wm)
	if err != nil {
		writeError(w, err)
		return
	}

	if format := r.URL.Query().Get("image"); format != "" {
		data, _, err := s.runner.RenderImage(r.Context(), g, wm, result, format)
		if err != nil {
			writeError(w, err)
			return
		}
		switch format {
		case pipeline.FormatSVG:
			w.Header().Set("Content-Type", "image/svg+xml")
		case pipeline.FormatPNG:
			w.Header().Set("Content-Type", "image/png")
		}
		_, _ = w.Write(data)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(newAnalyzeResponse(result))
}

func newAnalyzeResponse(result *cpm.Result) analyzeResponse {
	resp := analyzeResponse{
		CriticalEdges: make([]criticalEdge, 0, len(result.CriticalEdges)),
		TotalDuration: result.TotalDuration,
		Schedule:      make([]scheduleEntry, 0, len(result.TopoOrder)),
	}
	for _, ew := range result.CriticalEdgeList() {
		resp.CriticalEdges = append(resp.CriticalEdges, criticalEdge{
			From:   ew.Edge.From,
			To:     ew.Edge.To,
			Weight: ew.Weight,
		})
	}
	for _, id := range result.TopoOrder {
		sch := result.Tasks[id]
		resp.Schedule = append(resp.Schedule, scheduleEntry{
			Task:     id,
			ES:       sch.ES,
			EF:       sch.EF,
			LS:       sch.LS,
			LF:       sch.LF,
			Slack:    sch.Slack,
			Critical: sch.Critical,
		})
	}
	return resp
}

// writeError maps structured errors onto HTTP status codes: validation
// failures are the client's fault, everything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeMalformedGraph,
		errors.ErrCodeMissingWeight,
		errors.ErrCodeInvalidWeight,
		errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	})
}
