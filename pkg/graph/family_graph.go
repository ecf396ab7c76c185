package graph

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/kinview/kinview/pkg/model"
	"github.com/kinview/kinview/pkg/relation"
)

// Edge is the canonical, direction-resolved representation of a relationship
// between two people. There is at most one Edge per unordered person pair.
// Edges are read-only once assembled; a data refresh builds a new graph.
type Edge struct {
	Source          string            `json:"source"`          // Person the canonical assertion points from
	Target          string            `json:"target"`          // Person the canonical assertion points at
	Kind            relation.Kind     `json:"kind"`            // Canonical relation kind
	Category        relation.Category `json:"category"`        // Layout category derived from Kind
	DisplayLabel    string            `json:"displayLabel"`    // Label shown along Source -> Target
	ReciprocalLabel string            `json:"reciprocalLabel"` // Label shown along Target -> Source
	Exact           bool              `json:"exact"`           // False when the reciprocal came from the generic fallback
}

// Other returns the endpoint of e that is not personID.
func (e *Edge) Other(personID string) string {
	if e.Source == personID {
		return e.Target
	}
	return e.Source
}

// FamilyGraph is the assembled node/edge set. It wraps a gonum undirected
// graph for structural queries and keeps its own person and edge indexes,
// the same way the id-mapping wrapper around the dependency graph worked.
// A FamilyGraph is immutable after Assemble returns.
type FamilyGraph struct {
	graph     *simple.UndirectedGraph
	people    map[string]model.Person
	ids       map[string]int64 // person ID -> gonum node ID
	byID      map[int64]string // gonum node ID -> person ID
	order     []string         // roster insertion order
	edges     []*Edge          // canonical edges, first-created order
	adjacency map[string][]*Edge
	issues    []model.Issue
}

func newFamilyGraph() *FamilyGraph {
	return &FamilyGraph{
		graph:     simple.NewUndirectedGraph(),
		people:    make(map[string]model.Person),
		ids:       make(map[string]int64),
		byID:      make(map[int64]string),
		adjacency: make(map[string][]*Edge),
	}
}

func (g *FamilyGraph) addPerson(p model.Person) bool {
	if _, exists := g.people[p.ID]; exists {
		return false
	}
	id := int64(len(g.order))
	g.people[p.ID] = p
	g.ids[p.ID] = id
	g.byID[id] = p.ID
	g.order = append(g.order, p.ID)
	g.graph.AddNode(simple.Node(id))
	return true
}

// Has reports whether a person is part of the graph.
func (g *FamilyGraph) Has(personID string) bool {
	_, ok := g.people[personID]
	return ok
}

// Person returns the roster record for a person ID.
func (g *FamilyGraph) Person(personID string) (model.Person, bool) {
	p, ok := g.people[personID]
	return p, ok
}

// People returns all persons in roster order. Orphans are included; the
// force layout needs them even when no edge reaches them.
func (g *FamilyGraph) People() []model.Person {
	people := make([]model.Person, 0, len(g.order))
	for _, id := range g.order {
		people = append(people, g.people[id])
	}
	return people
}

// Edges returns the canonical edge set in first-created order.
func (g *FamilyGraph) Edges() []*Edge {
	return g.edges
}

// Issues returns the data problems recorded during assembly.
func (g *FamilyGraph) Issues() []model.Issue {
	return g.issues
}

// EdgesOf returns the canonical edges touching personID, in the order the
// edges were created. The order is deterministic for identical input, which
// keeps BFS traversals reproducible.
func (g *FamilyGraph) EdgesOf(personID string) []*Edge {
	return g.adjacency[personID]
}

// Neighbors returns the people connected to personID, in edge-creation
// order.
func (g *FamilyGraph) Neighbors(personID string) []string {
	edges := g.adjacency[personID]
	neighbors := make([]string, 0, len(edges))
	for _, e := range edges {
		neighbors = append(neighbors, e.Other(personID))
	}
	return neighbors
}

// Len returns the number of people in the graph.
func (g *FamilyGraph) Len() int {
	return len(g.order)
}

// Components returns the connected components of the graph as person ID
// groups. Singleton components are orphans.
func (g *FamilyGraph) Components() [][]string {
	raw := topo.ConnectedComponents(g.graph)
	components := make([][]string, 0, len(raw))
	for _, comp := range raw {
		ids := make([]string, 0, len(comp))
		for _, n := range comp {
			ids = append(ids, g.byID[n.ID()])
		}
		components = append(components, ids)
	}
	return components
}

// buildAdjacency derives the incidence lists from the final edge set.
// Called once at the end of assembly, after all pair replacements are
// settled.
func (g *FamilyGraph) buildAdjacency() {
	for _, e := range g.edges {
		g.adjacency[e.Source] = append(g.adjacency[e.Source], e)
		g.adjacency[e.Target] = append(g.adjacency[e.Target], e)
	}
}
