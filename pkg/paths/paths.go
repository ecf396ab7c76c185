// Package paths finds shortest connection paths between two people over the
// undirected view of the assembled family graph. "How are we related"
// ignores which way a relationship was asserted.
package paths

import (
	"github.com/kinview/kinview/pkg/graph"
)

// Shortest returns a minimum edge-count path from startID to endID as an
// ordered list of person IDs, both endpoints included. Ties among
// equal-length paths fall to BFS discovery order; callers may only rely on
// the result being some shortest path. startID == endID yields a
// single-element path. An unknown endpoint or a disconnected pair yields
// nil, never an error.
func Shortest(g *graph.FamilyGraph, startID, endID string) []string {
	if !g.Has(startID) || !g.Has(endID) {
		return nil
	}
	if startID == endID {
		return []string{startID}
	}

	// Explicit queue plus predecessor map; the visited guard doubles as the
	// predecessor record so cycles terminate.
	prev := map[string]string{startID: startID}
	queue := []string{startID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, neighbor := range g.Neighbors(current) {
			if _, seen := prev[neighbor]; seen {
				continue
			}
			prev[neighbor] = current
			if neighbor == endID {
				return reconstruct(prev, startID, endID)
			}
			queue = append(queue, neighbor)
		}
	}

	return nil
}

func reconstruct(prev map[string]string, startID, endID string) []string {
	var reversed []string
	for id := endID; ; id = prev[id] {
		reversed = append(reversed, id)
		if id == startID {
			break
		}
	}
	path := make([]string, len(reversed))
	for i, id := range reversed {
		path[len(path)-1-i] = id
	}
	return path
}
