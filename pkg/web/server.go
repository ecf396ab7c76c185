package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/kinview/kinview/pkg/config"
	"github.com/kinview/kinview/pkg/graph"
	"github.com/kinview/kinview/pkg/logging"
	"github.com/kinview/kinview/pkg/model"
	"github.com/kinview/kinview/pkg/pubsub"
)

//go:embed static/*
var staticFiles embed.FS

// Server serves the assembled family graph, layouts, and path queries to
// the browser renderer. The current graph is held as a single snapshot
// behind a RWMutex: readers always see either the previous or the new
// graph, never a half-rebuilt one.
type Server struct {
	router    *mux.Router
	publisher pubsub.Publisher
	cfg       *config.Config

	mu         sync.RWMutex
	familyName string
	graph      *graph.FamilyGraph
}

// NewServer creates a web server for the given configuration
func NewServer(cfg *config.Config) *Server {
	ssePublisher := pubsub.NewSSEPublisher()

	// New subscribers only need the current state, not history.
	ssePublisher.ConfigureTopic(pubsub.TopicFamilyStatus, pubsub.TopicConfig{
		BufferSize: 10,
		ReplayAll:  false,
	})
	ssePublisher.ConfigureTopic(pubsub.TopicFamilyGraph, pubsub.TopicConfig{
		BufferSize: 5,
		ReplayAll:  false,
	})

	s := &Server{
		router:    mux.NewRouter(),
		publisher: ssePublisher,
		cfg:       cfg,
	}
	s.setupRoutes()
	return s
}

// SetFamily assembles a fresh graph from family data and swaps it in
// atomically, then notifies subscribers.
func (s *Server) SetFamily(family *model.Family) {
	g := graph.Assemble(family.People, family.Assertions)

	s.mu.Lock()
	s.familyName = family.Name
	s.graph = g
	s.mu.Unlock()

	summary := pubsub.GraphSummary{
		People:     g.Len(),
		Edges:      len(g.Edges()),
		Issues:     len(g.Issues()),
		Components: len(g.Components()),
		Complete:   true,
	}
	if err := s.publisher.Publish(pubsub.TopicFamilyGraph, "assembled", summary); err != nil {
		logging.Warn("failed to publish graph summary", "error", err)
	}

	logging.Info("family graph updated",
		"name", family.Name, "people", summary.People, "edges", summary.Edges, "issues", summary.Issues)
}

// PublishStatus publishes a load/assemble progress event
func (s *Server) PublishStatus(state, message string) {
	status := pubsub.FamilyStatus{State: state, Message: message}
	if err := s.publisher.Publish(pubsub.TopicFamilyStatus, state, status); err != nil {
		logging.Warn("failed to publish status", "error", err)
	}
}

// snapshot returns the current graph and family name. A nil graph means no
// data has been loaded yet.
func (s *Server) snapshot() (*graph.FamilyGraph, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph, s.familyName
}

func (s *Server) setupRoutes() {
	s.router.Use(logging.RequestIDMiddleware)

	s.router.HandleFunc("/api/subscribe/family_status", s.handleSubscribe(pubsub.TopicFamilyStatus)).Methods("GET")
	s.router.HandleFunc("/api/subscribe/family_graph", s.handleSubscribe(pubsub.TopicFamilyGraph)).Methods("GET")

	s.router.HandleFunc("/api/family", s.handleFamily).Methods("GET")
	s.router.HandleFunc("/api/layout/tree", s.handleTreeLayout).Methods("GET")
	s.router.HandleFunc("/api/path", s.handlePath).Methods("GET")

	s.router.HandleFunc("/ws/simulation", s.handleSimulation).Methods("GET")

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		logging.Fatal("embedded static files missing", "error", err)
	}
	s.router.PathPrefix("/").Handler(http.FileServer(http.FS(staticFS)))
}

// Start runs the HTTP server on the given port, blocking until it fails
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logging.Info("web server listening", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.router
}
