package web

import (
	"encoding/json"
	"net/http"

	"github.com/kinview/kinview/pkg/graph"
	"github.com/kinview/kinview/pkg/layout"
	"github.com/kinview/kinview/pkg/logging"
	"github.com/kinview/kinview/pkg/model"
	"github.com/kinview/kinview/pkg/paths"
	"github.com/kinview/kinview/pkg/pubsub"
)

// FamilyResponse is the full snapshot handed to the renderer.
type FamilyResponse struct {
	Name   string         `json:"name"`
	People []model.Person `json:"people"`
	Edges  []*graph.Edge  `json:"edges"`
	Issues []model.Issue  `json:"issues"`
}

// TreeLayoutResponse carries the generational layout for one root.
type TreeLayoutResponse struct {
	Root       string                      `json:"root"`
	Placements map[string]layout.Placement `json:"placements"`
	Issues     []model.Issue               `json:"issues"`
}

// PathResponse carries the shortest connection between two people.
type PathResponse struct {
	From   string        `json:"from"`
	To     string        `json:"to"`
	Path   []string      `json:"path"`
	Found  bool          `json:"found"`
	Issues []model.Issue `json:"issues,omitempty"`
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("failed to encode response", "error", err)
	}
}

func (s *Server) handleFamily(w http.ResponseWriter, r *http.Request) {
	g, name := s.snapshot()
	if g == nil {
		writeJSON(w, FamilyResponse{People: []model.Person{}, Edges: []*graph.Edge{}, Issues: []model.Issue{}})
		return
	}

	resp := FamilyResponse{
		Name:   name,
		People: g.People(),
		Edges:  g.Edges(),
		Issues: g.Issues(),
	}
	if resp.Issues == nil {
		resp.Issues = []model.Issue{}
	}
	writeJSON(w, resp)
}

func (s *Server) handleTreeLayout(w http.ResponseWriter, r *http.Request) {
	g, _ := s.snapshot()
	if g == nil {
		http.Error(w, "no family data loaded", http.StatusServiceUnavailable)
		return
	}

	root := r.URL.Query().Get("root")
	if root == "" {
		root = s.cfg.Root
	}
	if root == "" {
		http.Error(w, "missing root parameter", http.StatusBadRequest)
		return
	}

	placements, issues := layout.Generations(g, root, layout.Config{
		RowHeight: s.cfg.Layout.RowHeight,
		Spacing:   s.cfg.Layout.Spacing,
	})
	if issues == nil {
		issues = []model.Issue{}
	}

	writeJSON(w, TreeLayoutResponse{Root: root, Placements: placements, Issues: issues})
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	g, _ := s.snapshot()
	if g == nil {
		http.Error(w, "no family data loaded", http.StatusServiceUnavailable)
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		http.Error(w, "missing from/to parameters", http.StatusBadRequest)
		return
	}

	path := paths.Shortest(g, from, to)
	resp := PathResponse{From: from, To: to, Path: path, Found: path != nil}
	if path == nil {
		resp.Path = []string{}
		resp.Issues = []model.Issue{{
			Kind:    model.IssueDisconnectedPath,
			Message: "no connection found between the selected people",
			From:    from,
			To:      to,
		}}
	}
	writeJSON(w, resp)
}

// handleSubscribe returns an SSE streaming handler for one topic.
func (s *Server) handleSubscribe(topic string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		// Initial comment establishes the stream (Safari compatibility).
		if _, err := w.Write([]byte(": connected\n\n")); err != nil {
			return
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}

		sub, err := s.publisher.Subscribe(r.Context(), topic)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer sub.Close()

		for event := range sub.Events() {
			if err := pubsub.WriteSSE(w, event); err != nil {
				logging.DebugContext(r.Context(), "SSE client gone", "topic", topic)
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}
		}
	}
}
